package slashdoc

import (
	"io"
	"regexp"
	"strings"
)

// cursor walks a block front to back. Parsing never backtracks.
type cursor struct {
	lines Block
	pos   int
}

func (c *cursor) more() bool {
	return c.pos < len(c.lines)
}

func (c *cursor) peek() Line {
	return c.lines[c.pos]
}

func (c *cursor) next() Line {
	l := c.lines[c.pos]
	c.pos++

	return l
}

// ParseBlock parses one doc comment into a top-level node.
func ParseBlock(b Block) (*Node, error) {
	if len(b) == 0 {
		return nil, ErrEmptyBlock
	}

	c := &cursor{lines: b}

	n, err := parseTopLevel(c)
	if err != nil {
		return nil, err
	}

	if err := parseBody(c, n, Line{}, false); err != nil {
		return nil, err
	}

	return n, nil
}

// parseTopLevel consumes the "<kind> <name>" heading and the free text up to
// the first section header.
func parseTopLevel(c *cursor) (*Node, error) {
	heading := c.next()

	fields := strings.Fields(heading.Text)
	if len(fields) < 2 {
		return nil, syntaxErrorf(heading, "expected \"<kind> <name>\"")
	}

	kind, ok := ParseKind(fields[0])
	if !ok {
		return nil, syntaxErrorf(heading, "type must be one of: %s", kindList())
	}

	n := &Node{
		Name:     fields[1],
		Kind:     kind,
		Filename: heading.Filename,
		Line:     heading.Number,
	}

	if m := headingTypeRe.FindStringSubmatch(heading.Text); m != nil {
		n.Type = strings.TrimSpace(m[headingTypeRe.SubexpIndex("type")])
	} else if kind == KindProperty {
		return nil, syntaxErrorf(heading, "property %s must declare a {type}", n.Name)
	}

	n.Description = segmentDescription(c, heading.Indent-1, heading, "")

	return n, nil
}

// parseBody dispatches section headers and parameter declarations into n.
//
// A nested scope (the body of a parameter) ends at the first line, other than
// its anchor, indented no deeper than the anchor. The top-level scope runs to
// the end of the block.
func parseBody(c *cursor, n *Node, anchor Line, nested bool) error {
	for c.more() {
		l := c.peek()
		if nested && l.Number != anchor.Number && l.Indent <= anchor.Indent {
			return nil
		}

		var err error

		switch l.class {
		case lineParamsHeader:
			err = parseParams(c, n)
		case lineParamDecl:
			var p *Node
			if p, err = parseParam(c, n); err == nil {
				n.Params = append(n.Params, p)
			}
		case lineReturnsHeader:
			err = parseReturn(c, n)
		default:
			err = syntaxErrorf(l, "no matches")
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// parseParams consumes a Params header and every sibling parameter at the
// indent of the first one.
func parseParams(c *cursor, n *Node) error {
	header := c.next()

	if !c.more() || c.peek().Indent <= header.Indent {
		return syntaxErrorf(header, "params section needs at least one param")
	}

	indent := c.peek().Indent
	for c.more() {
		l := c.peek()
		if l.Indent < indent {
			break
		}

		if l.class != lineParamDecl {
			return syntaxErrorf(l, "param malformed")
		}

		p, err := parseParam(c, n)
		if err != nil {
			return err
		}

		n.Params = append(n.Params, p)
	}

	return nil
}

// parseParam consumes one parameter declaration, its description and, when
// the next line is exactly one level deeper, its own Params/Returns sections.
func parseParam(c *cursor, parent *Node) (*Node, error) {
	decl := c.next()

	groups, rest, ok := matchParam(decl.Text)
	if !ok {
		return nil, syntaxErrorf(decl, "param malformed")
	}

	p := &Node{
		Name:     groups["name"],
		Type:     strings.TrimSpace(groups["type"]),
		Optional: strings.HasPrefix(decl.Text, "["),
		Filename: decl.Filename,
		Line:     decl.Number,
		parent:   parent,
	}

	if def, ok := groups["default"]; ok {
		def = strings.ReplaceAll(def, `\)`, ")")
		p.Default = &def
	}

	p.Description = segmentDescription(c, decl.Indent, decl, rest)

	if c.more() && c.peek().Indent == decl.Indent+1 {
		if err := parseBody(c, p, decl, true); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// parseReturn consumes a Returns header and the "{type}: description" line
// following it.
func parseReturn(c *cursor, n *Node) error {
	header := c.next()
	if !c.more() {
		return syntaxErrorf(header, "bad return")
	}

	l := c.next()

	groups, rest, ok := matchLine(l.Text, returnRe)
	if !ok {
		return syntaxErrorf(l, "bad return")
	}

	n.ReturnType = strings.TrimSpace(groups["type"])
	n.ReturnDescription = segmentDescription(c, l.Indent, l, rest)

	return nil
}

// matchParam matches a declaration against the parameter forms, trying the
// bracketed forms for optional parameters.
func matchParam(text string) (map[string]string, string, bool) {
	if strings.HasPrefix(text, "[") {
		return matchLine(text, optionalParamDefaultRe, optionalParamRe)
	}

	return matchLine(text, paramDefaultRe, paramRe)
}

// matchLine returns the named groups of the first matching regexp and the
// trimmed text after the match.
func matchLine(text string, res ...*regexp.Regexp) (map[string]string, string, bool) {
	for _, re := range res {
		m := re.FindStringSubmatchIndex(text)
		if m == nil {
			continue
		}

		groups := make(map[string]string)
		for i, name := range re.SubexpNames() {
			if name == "" || m[2*i] < 0 {
				continue
			}

			groups[name] = text[m[2*i]:m[2*i+1]]
		}

		return groups, strings.TrimSpace(text[m[1]:]), true
	}

	return nil, "", false
}

func kindList() string {
	names := make([]string, 0, len(Kinds))
	for _, k := range Kinds {
		names = append(names, string(k))
	}

	return strings.Join(names, ", ")
}

// Parser parses files into a shared registry of top-level nodes.
type Parser struct {
	token    string
	indent   int
	registry *Registry
}

// NewParser creates a parser for the given comment token and indent unit.
func NewParser(token string, indent int) *Parser {
	return &Parser{
		token:    token,
		indent:   indent,
		registry: NewRegistry(),
	}
}

// Registry returns the registry the parser adds top-level nodes to.
func (p *Parser) Registry() *Registry {
	return p.registry
}

// ParseFile tokenizes r and parses every block into the registry.
func (p *Parser) ParseFile(filename string, r io.Reader) error {
	blocks, err := Tokenize(filename, r, p.token, p.indent)
	if err != nil {
		return err
	}

	logger.Debugf("%s: %d doc blocks", filename, len(blocks))

	for _, b := range blocks {
		n, err := ParseBlock(b)
		if err != nil {
			return err
		}

		if err := p.registry.Add(n); err != nil {
			return err
		}
	}

	return nil
}
