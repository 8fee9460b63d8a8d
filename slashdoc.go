package slashdoc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
)

// Source is one named input held in memory.
type Source struct {
	Name    string
	Content []byte
}

// Slashdoc parses doc comments out of source files and renders them.
type Slashdoc struct {
	token      string
	indent     int
	stylesheet string
	cache      bool
	ctx        context.Context
	readFile   func(string) ([]byte, error)
}

// New creates a new [Slashdoc] with the specified configuration.
func New(opts ...Option) Slashdoc {
	s := Slashdoc{
		token:      DefaultToken,
		indent:     DefaultIndent,
		stylesheet: DefaultStylesheet,
		ctx:        context.Background(),
	}

	s.SetOptions(opts...)

	if s.ctx == nil {
		s.ctx = context.Background()
	}

	s.readFile = os.ReadFile

	return s
}

// context returns the effective context for operations.
func (s *Slashdoc) context() context.Context {
	if s == nil || s.ctx == nil {
		return context.Background()
	}

	return s.ctx
}

// Load reads and parses the given files, in order, into one document.
//
// All files share one namespace of top-level names. The first syntax error
// aborts the whole load; it is returned as a *[SyntaxError].
func (s *Slashdoc) Load(files ...string) (*Document, error) {
	if err := validateSettings(s.token, s.indent); err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, ErrNoInput
	}

	if s.cache {
		return s.getOrLoad(files)
	}

	return s.load(files)
}

func (s *Slashdoc) load(files []string) (*Document, error) {
	if s.readFile == nil {
		s.readFile = os.ReadFile
	}

	sources := make([]Source, 0, len(files))
	for _, name := range files {
		if err := s.context().Err(); err != nil {
			return nil, err
		}

		content, err := s.readFile(name)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}

		sources = append(sources, Source{Name: name, Content: content})
	}

	return s.Parse(sources...)
}

// Parse parses in-memory sources, in order, into one document.
func (s *Slashdoc) Parse(sources ...Source) (*Document, error) {
	if err := validateSettings(s.token, s.indent); err != nil {
		return nil, err
	}

	if len(sources) == 0 {
		return nil, ErrNoInput
	}

	p := NewParser(s.token, s.indent)
	for _, src := range sources {
		if err := s.context().Err(); err != nil {
			return nil, err
		}

		if err := p.ParseFile(src.Name, bytes.NewReader(src.Content)); err != nil {
			return nil, err
		}
	}

	logger.Infof("parsed %d top-level nodes from %d files", p.Registry().Len(), len(sources))

	return s.newDocument(p.Registry().Nodes()), nil
}

// Write loads files and writes the HTML page to w. Nothing is written when
// loading fails.
func (s *Slashdoc) Write(w io.Writer, files ...string) error {
	doc, err := s.Load(files...)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, doc.HTML())

	return err
}

func (s *Slashdoc) newDocument(nodes []*Node) *Document {
	return &Document{
		Nodes:      nodes,
		index:      NewIndex(nodes),
		stylesheet: s.stylesheet,
	}
}
