package slashdoc

import (
	"encoding/json"
	"strings"
)

// Kind is the declared kind of a top-level documented entity.
type Kind string

const (
	KindClass    Kind = "class"
	KindObject   Kind = "object"
	KindFunction Kind = "function"
	KindProperty Kind = "property"
	KindEvent    Kind = "event"
)

// Kinds lists the recognized top-level kinds in display order.
var Kinds = []Kind{KindClass, KindObject, KindFunction, KindProperty, KindEvent}

// ParseKind reports whether s names one of the recognized top-level kinds.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}

	return "", false
}

// Plural returns the plural form of the kind, e.g. "classes" or "properties".
func (k Kind) Plural() string {
	switch k {
	case KindClass:
		return "classes"
	case KindProperty:
		return "properties"
	default:
		return string(k) + "s"
	}
}

// lineClass is the construct a doc line opens, computed once per line.
type lineClass int

const (
	lineOther lineClass = iota
	lineParamsHeader
	lineParamDecl
	lineReturnsHeader
)

// Line is one marker-stripped source line.
type Line struct {
	Text     string `json:"text"`
	Indent   int    `json:"indent"`
	Number   int    `json:"line"`
	Filename string `json:"filename"`

	class lineClass
}

// Block is one contiguous doc comment, in source order.
type Block []Line

// Segment is one run of description text: either a prose paragraph or a
// verbatim example.
type Segment struct {
	Example bool   `json:"example,omitempty" jsonschema:"whether the segment is a literal example block"`
	Text    string `json:"text" jsonschema:"segment text; examples keep their newlines"`
}

// Description is the ordered list of segments describing a node.
type Description []Segment

// Text returns the description as plain text, separating segments with a
// blank line.
func (d Description) Text() string {
	parts := make([]string, 0, len(d))
	for _, seg := range d {
		parts = append(parts, seg.Text)
	}

	return strings.TrimSpace(strings.Join(parts, "\n\n"))
}

// IsEmpty reports whether the description carries no text at all.
func (d Description) IsEmpty() bool {
	for _, seg := range d {
		if seg.Text != "" {
			return false
		}
	}

	return true
}

// Node is one documented element: a top-level entity or a parameter nested
// under one.
type Node struct {
	Name              string      `json:"name" jsonschema:"node name; dotted for top-level nodes"`
	Kind              Kind        `json:"kind,omitempty" jsonschema:"top-level kind; empty for parameters"`
	Type              string      `json:"type,omitempty" jsonschema:"declared type annotation"`
	Default           *string     `json:"default,omitempty" jsonschema:"default value"`
	Optional          bool        `json:"optional,omitempty" jsonschema:"whether the parameter is optional"`
	Description       Description `json:"description,omitempty" jsonschema:"description segments"`
	Params            []*Node     `json:"params,omitempty" jsonschema:"nested parameters in declaration order"`
	ReturnType        string      `json:"return_type,omitempty" jsonschema:"declared return type"`
	ReturnDescription Description `json:"return_description,omitempty" jsonschema:"return value description"`
	Filename          string      `json:"filename" jsonschema:"defining file"`
	Line              int         `json:"line" jsonschema:"defining line number"`

	parent *Node
}

// Parent returns the enclosing node, or nil for a top-level node.
func (n *Node) Parent() *Node {
	return n.parent
}

// IsTopLevel reports whether n is a top-level entity.
func (n *Node) IsTopLevel() bool {
	return n.parent == nil
}

// ShortName returns the last dotted segment of the node name.
func (n *Node) ShortName() string {
	if i := strings.LastIndex(n.Name, "."); i >= 0 {
		return n.Name[i+1:]
	}

	return n.Name
}

// HasDefault reports whether a parameter declares a default value.
func (n *Node) HasDefault() bool {
	return n.Default != nil
}

// HasReturn reports whether a Returns section was declared.
func (n *Node) HasReturn() bool {
	return n.ReturnType != ""
}

// URL returns the anchor of the node in the rendered document.
//
// The lowercased name with dots replaced by dashes is prefixed with the
// parent's URL for nested nodes and with the kind for top-level ones.
func (n *Node) URL() string {
	url := strings.ToLower(strings.ReplaceAll(n.Name, ".", "-"))
	if n.parent != nil {
		url = n.parent.URL() + "-" + url
	}

	if n.Kind != "" {
		url = string(n.Kind) + "-" + url
	}

	return url
}

// walk calls fn for n and every nested parameter, depth first.
func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, p := range n.Params {
		p.walk(fn)
	}
}

// link restores parent pointers below n, e.g. after decoding.
func (n *Node) link() {
	for _, p := range n.Params {
		p.parent = n
		p.link()
	}
}

// Document is the parsed and resolved documentation of a set of files.
type Document struct {
	Nodes []*Node `json:"nodes" jsonschema:"top-level nodes in source order"`

	index      *Index
	stylesheet string
}

// Index returns the cross-reference index of the document.
func (d *Document) Index() *Index {
	return d.index
}

// Text returns a plain text outline of the document.
func (d *Document) Text() string {
	return renderText(d)
}

// HTML returns the complete HTML page for the document.
func (d *Document) HTML() string {
	return renderHTML(d)
}

// Markdown returns the document as Markdown, e.g. for terminal rendering.
func (d *Document) Markdown() string {
	return renderMarkdown(d)
}

// MarshalJSON implements [json.Marshaler] while omitting internal fields.
func (d *Document) MarshalJSON() ([]byte, error) {
	type alias Document

	return json.Marshal((*alias)(d))
}

// Result is an interface for documentation results, providing access to
// documentation text, HTML, Markdown and JSON serialization.
type Result interface {
	Text() string
	HTML() string
	Markdown() string
	MarshalJSON() ([]byte, error)
}
