// Package lsp serves slashdoc diagnostics and document symbols over the
// Language Server Protocol.
package lsp

import (
	"errors"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
	"go.dw1.io/slashdoc"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "slashdoc"

var refRe = regexp.MustCompile(`@([\w\-]+(?:\.[\w\-]+)*)`)

// Server is a language server that re-parses every open document on change.
type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string
	token   string
	indent  int

	mu   sync.Mutex
	docs map[string]string
}

// New creates a server parsing doc comments marked with token.
func New(version, token string, indent int) *Server {
	ls := &Server{
		version: version,
		token:   token,
		indent:  indent,
		docs:    make(map[string]string),
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

// RunStdio serves requests on stdin and stdout until the client exits.
func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}

	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.update(ctx, params.TextDocument.URI, whole.Text)
	}

	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.mu.Lock()
	delete(ls.docs, params.TextDocument.URI)
	ls.mu.Unlock()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})

	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.update(ctx, params.TextDocument.URI, *params.Text)
	}

	return nil
}

func (ls *Server) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	ls.mu.Lock()
	text, ok := ls.docs[params.TextDocument.URI]
	ls.mu.Unlock()

	if !ok {
		return nil, nil
	}

	doc, err := ls.parse(params.TextDocument.URI, text)
	if err != nil {
		return nil, nil
	}

	return Symbols(doc), nil
}

func (ls *Server) update(ctx *glsp.Context, uri, text string) {
	ls.mu.Lock()
	ls.docs[uri] = text
	ls.mu.Unlock()

	doc, err := ls.parse(uri, text)

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: Diagnostics(doc, err, text, ls.token),
	})
}

func (ls *Server) parse(uri, text string) (*slashdoc.Document, error) {
	s := slashdoc.New(slashdoc.WithToken(ls.token), slashdoc.WithIndent(ls.indent))

	return s.Parse(slashdoc.Source{Name: uriToPath(uri), Content: []byte(text)})
}

// Diagnostics converts the outcome of parsing text into diagnostics: the
// syntax error, if any, or one warning per "@Name" reference on a doc line
// that resolves to no node.
func Diagnostics(doc *slashdoc.Document, err error, text, token string) []protocol.Diagnostic {
	diags := []protocol.Diagnostic{}

	if err != nil {
		var serr *slashdoc.SyntaxError
		if !errors.As(err, &serr) {
			return append(diags, diagnostic(0, 0, 0, protocol.DiagnosticSeverityError, err.Error()))
		}

		line := max(serr.Line-1, 0)

		return append(diags, diagnostic(line, 0, lineLength(text, line), protocol.DiagnosticSeverityError, serr.Msg))
	}

	if doc == nil {
		return diags
	}

	for i, line := range strings.Split(text, "\n") {
		if !strings.HasPrefix(strings.TrimSpace(line), token) {
			continue
		}

		for _, m := range refRe.FindAllStringSubmatchIndex(line, -1) {
			name := line[m[2]:m[3]]
			if resolves(doc.Index(), name) {
				continue
			}

			diags = append(diags, diagnostic(i, m[0], m[1], protocol.DiagnosticSeverityWarning,
				"unresolved reference @"+name))
		}
	}

	return diags
}

// resolves reports whether name, or a dotted prefix of it, or its singular
// form, is a known node.
func resolves(x *slashdoc.Index, name string) bool {
	for {
		if _, ok := x.Lookup(name); ok {
			return true
		}

		if _, ok := x.Lookup(strings.TrimSuffix(name, "s")); ok {
			return true
		}

		i := strings.LastIndex(name, ".")
		if i < 0 {
			return false
		}

		name = name[:i]
	}
}

// Symbols returns the display hierarchy of doc as document symbols.
func Symbols(doc *slashdoc.Document) []protocol.DocumentSymbol {
	var symbols []protocol.DocumentSymbol
	for _, e := range doc.Index().Roots() {
		symbols = append(symbols, entrySymbol(e))
	}

	return symbols
}

func entrySymbol(e *slashdoc.Entry) protocol.DocumentSymbol {
	n := e.Node
	detail := string(n.Kind)
	if n.Type != "" {
		detail += " {" + n.Type + "}"
	}

	sym := protocol.DocumentSymbol{
		Name:           n.Name,
		Detail:         &detail,
		Kind:           symbolKind(n.Kind),
		Range:          lineRange(n.Line),
		SelectionRange: lineRange(n.Line),
	}

	for _, p := range n.Params {
		sym.Children = append(sym.Children, paramSymbol(p))
	}

	for _, s := range e.Sections() {
		for _, m := range s.Entries {
			sym.Children = append(sym.Children, entrySymbol(m))
		}
	}

	return sym
}

func paramSymbol(p *slashdoc.Node) protocol.DocumentSymbol {
	detail := p.Type

	sym := protocol.DocumentSymbol{
		Name:           p.Name,
		Detail:         &detail,
		Kind:           protocol.SymbolKindVariable,
		Range:          lineRange(p.Line),
		SelectionRange: lineRange(p.Line),
	}

	for _, c := range p.Params {
		sym.Children = append(sym.Children, paramSymbol(c))
	}

	return sym
}

func symbolKind(k slashdoc.Kind) protocol.SymbolKind {
	switch k {
	case slashdoc.KindClass:
		return protocol.SymbolKindClass
	case slashdoc.KindObject:
		return protocol.SymbolKindObject
	case slashdoc.KindFunction:
		return protocol.SymbolKindFunction
	case slashdoc.KindProperty:
		return protocol.SymbolKindProperty
	case slashdoc.KindEvent:
		return protocol.SymbolKindEvent
	default:
		return protocol.SymbolKindNamespace
	}
}

func diagnostic(line, start, end int, severity protocol.DiagnosticSeverity, msg string) protocol.Diagnostic {
	source := lsName

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(start)},
			End:   protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(end)},
		},
		Severity: &severity,
		Source:   &source,
		Message:  msg,
	}
}

// lineRange spans the start of the 1-based source line number.
func lineRange(number int) protocol.Range {
	pos := protocol.Position{Line: protocol.UInteger(max(number-1, 0))}

	return protocol.Range{Start: pos, End: pos}
}

func lineLength(text string, line int) int {
	lines := strings.Split(text, "\n")
	if line >= len(lines) {
		return 0
	}

	return len(strings.TrimRight(lines[line], "\r"))
}

func uriToPath(uri string) string {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err == nil {
			return filepath.Clean(parsed.Path)
		}
	}

	return uri
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
