package slashdoc

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Entry is a top-level node placed in the display hierarchy, together with
// the top-level nodes whose names it is the longest dotted prefix of.
type Entry struct {
	Node    *Node
	Members map[Kind][]*Entry
}

// Section is one kind-group of an entry's members.
type Section struct {
	Kind    Kind
	Entries []*Entry
}

func (e *Entry) add(member *Entry) {
	if e.Members == nil {
		e.Members = make(map[Kind][]*Entry)
	}

	e.Members[member.Node.Kind] = append(e.Members[member.Node.Kind], member)
}

// Sections returns the non-empty member groups in kind display order.
func (e *Entry) Sections() []Section {
	var sections []Section
	for _, k := range Kinds {
		if members := e.Members[k]; len(members) > 0 {
			sections = append(sections, Section{Kind: k, Entries: members})
		}
	}

	return sections
}

// Index resolves names across a set of parsed top-level nodes.
type Index struct {
	nodes  []*Node
	byName map[string]*Node
	roots  []*Entry
	refRe  *regexp.Regexp
}

// NewIndex builds the name index and display hierarchy over nodes, which
// must be the complete set of top-level nodes of a run.
func NewIndex(nodes []*Node) *Index {
	x := &Index{
		nodes:  nodes,
		byName: make(map[string]*Node),
	}

	x.buildNames()
	x.buildHierarchy()
	x.refRe = buildRefRegexp(x.byName)

	return x
}

// buildNames maps every node name to its node. Top-level names take
// precedence over parameter names; among parameters sharing a name the first
// declared wins.
func (x *Index) buildNames() {
	for _, n := range x.nodes {
		x.byName[n.Name] = n
	}

	for _, n := range x.nodes {
		for _, p := range n.Params {
			p.walk(func(p *Node) {
				if _, ok := x.byName[p.Name]; !ok {
					x.byName[p.Name] = p
				}
			})
		}
	}
}

// buildHierarchy attaches every top-level node under the top-level node whose
// name is its longest dotted prefix. Nodes without one become roots.
func (x *Index) buildHierarchy() {
	entries := make(map[string]*Entry, len(x.nodes))
	for _, n := range x.nodes {
		entries[n.Name] = &Entry{Node: n}
	}

	for _, n := range x.nodes {
		e := entries[n.Name]
		if owner := containerOf(n.Name, entries); owner != nil {
			owner.add(e)
			continue
		}

		x.roots = append(x.roots, e)
	}
}

// containerOf returns the entry named by the longest proper dotted prefix of
// name. Dotted prefixes of one name all differ in length, so there is never
// more than one candidate of a given length.
func containerOf(name string, entries map[string]*Entry) *Entry {
	for i := strings.LastIndex(name, "."); i > 0; i = strings.LastIndex(name[:i], ".") {
		if e, ok := entries[name[:i]]; ok {
			return e
		}
	}

	return nil
}

// buildRefRegexp compiles one alternation over all names, longest first, so
// that "@Foo.bar" is never taken for "@Foo" followed by ".bar".
func buildRefRegexp(byName map[string]*Node) *regexp.Regexp {
	if len(byName) == 0 {
		return nil
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}

		return names[i] < names[j]
	})

	quoted := make([]string, 0, len(names))
	for _, name := range names {
		quoted = append(quoted, regexp.QuoteMeta(name))
	}

	return regexp.MustCompile(`@(` + strings.Join(quoted, "|") + `)(s?)\b`)
}

// Lookup returns the node registered under name.
func (x *Index) Lookup(name string) (*Node, bool) {
	n, ok := x.byName[name]

	return n, ok
}

// Nodes returns the top-level nodes in source order.
func (x *Index) Nodes() []*Node {
	return x.nodes
}

// Roots returns the entries that are not contained in any other entry.
func (x *Index) Roots() []*Entry {
	return x.roots
}

// ParentURL returns the URL of the node named by the first dotted segment of
// name, or "" when there is none.
func (x *Index) ParentURL(name string) string {
	first, _, _ := strings.Cut(name, ".")
	if n, ok := x.byName[first]; ok {
		return n.URL()
	}

	return ""
}

// Link rewrites "@Name" and "@Names" references to known nodes into HTML
// links. Unknown names are left untouched.
func (x *Index) Link(text string) string {
	return x.replaceRefs(text, func(n *Node, display string) string {
		return fmt.Sprintf(linkHTML, n.URL(), x.ParentURL(n.Name), display)
	})
}

// MarkdownLinks rewrites references like [Index.Link] but emits Markdown
// links.
func (x *Index) MarkdownLinks(text string) string {
	return x.replaceRefs(text, func(n *Node, display string) string {
		return fmt.Sprintf("[%s](#%s)", display, n.URL())
	})
}

func (x *Index) replaceRefs(text string, link func(n *Node, display string) string) string {
	if x == nil || x.refRe == nil || !strings.Contains(text, "@") {
		return text
	}

	var (
		sb   strings.Builder
		last int
	)

	for _, m := range x.refRe.FindAllStringSubmatchIndex(text, -1) {
		name := text[m[2]:m[3]]
		plural := text[m[4]:m[5]]

		sb.WriteString(text[last:m[0]])
		sb.WriteString(link(x.byName[name], name+plural))
		last = m[1]
	}

	sb.WriteString(text[last:])

	return sb.String()
}
