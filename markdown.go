package slashdoc

import (
	"fmt"
	"strings"
)

const anchorMarkdown = `<a id="%s"></a>`

// renderMarkdown renders the display hierarchy as Markdown. References become
// in-document links and examples become fenced code blocks. Every heading and
// parameter carries an anchor named by its node URL, which is what the links
// point at.
func renderMarkdown(d *Document) string {
	var sb strings.Builder

	for _, e := range d.index.Roots() {
		writeEntryMarkdown(&sb, d.index, e, 1)
	}

	return sb.String()
}

func writeEntryMarkdown(sb *strings.Builder, x *Index, e *Entry, level int) {
	n := e.Node

	var title string
	switch {
	case level == 1:
		title = fmt.Sprintf("%s %s", n.Kind, n.Name)
	case n.Kind == KindFunction:
		title = "`" + signature(n) + "`"
	case n.Type != "":
		title = fmt.Sprintf("`%s %s`", n.Type, n.ShortName())
	default:
		title = n.ShortName()
	}

	sb.WriteString(fmt.Sprintf("%s %s%s\n\n", strings.Repeat("#", min(level, 6)), fmt.Sprintf(anchorMarkdown, n.URL()), title))
	writeNodeMarkdown(sb, x, n, "")

	for _, s := range e.Sections() {
		sb.WriteString(fmt.Sprintf("%s %s\n\n", strings.Repeat("#", min(level+1, 6)), strings.TrimSuffix(sectionTitle(s.Kind), ":")))
		for _, m := range s.Entries {
			writeEntryMarkdown(sb, x, m, level+2)
		}
	}
}

// writeNodeMarkdown writes the description, parameters and return value of
// n, every line prefixed with indent.
func writeNodeMarkdown(sb *strings.Builder, x *Index, n *Node, indent string) {
	writeDescriptionMarkdown(sb, x, n.Description, indent)

	if len(n.Params) > 0 {
		sb.WriteString(indent + "**Params:**\n\n")
		for _, p := range n.Params {
			sb.WriteString(indent + "- " + fmt.Sprintf(anchorMarkdown, p.URL()) + paramMarkdown(p) + "\n\n")
			writeNodeMarkdown(sb, x, p, indent+"  ")
		}
	}

	if n.HasReturn() {
		sb.WriteString(fmt.Sprintf("%s**Returns:** `%s`\n\n", indent, n.ReturnType))
		writeDescriptionMarkdown(sb, x, n.ReturnDescription, indent)
	}
}

func paramMarkdown(p *Node) string {
	s := fmt.Sprintf("`%s` *%s*", p.Name, p.Type)
	if p.HasDefault() {
		s += fmt.Sprintf(" (default `%s`)", *p.Default)
	}

	if p.Optional {
		s += " _optional_"
	}

	return s
}

func writeDescriptionMarkdown(sb *strings.Builder, x *Index, d Description, indent string) {
	for _, seg := range d {
		if seg.Example {
			sb.WriteString(indent + "```\n")
			for _, line := range strings.Split(seg.Text, "\n") {
				sb.WriteString(indent + line + "\n")
			}
			sb.WriteString(indent + "```\n\n")

			continue
		}

		if seg.Text == "" {
			continue
		}

		text := codeSpanRe.ReplaceAllString(seg.Text, "`$1`")
		sb.WriteString(indent + x.MarkdownLinks(text) + "\n\n")
	}
}

// renderText renders a plain text outline of the document.
func renderText(d *Document) string {
	var sb strings.Builder

	for _, e := range d.index.Roots() {
		writeEntryText(&sb, e, "")
	}

	return sb.String()
}

func writeEntryText(sb *strings.Builder, e *Entry, indent string) {
	n := e.Node
	if n.Kind == KindFunction {
		sb.WriteString(fmt.Sprintf("%s%s %s\n", indent, n.Kind, signatureWithOwner(n)))
	} else {
		sb.WriteString(fmt.Sprintf("%s%s %s\n", indent, n.Kind, n.Name))
	}

	writeNodeText(sb, n, indent+"    ")

	for _, s := range e.Sections() {
		for _, m := range s.Entries {
			writeEntryText(sb, m, indent+"  ")
		}
	}
}

func writeNodeText(sb *strings.Builder, n *Node, indent string) {
	if text := n.Description.Text(); text != "" {
		for _, line := range strings.Split(text, "\n") {
			sb.WriteString(strings.TrimRight(indent+line, " ") + "\n")
		}
	}

	for _, p := range n.Params {
		sb.WriteString(fmt.Sprintf("%s%s %s\n", indent, p.Type, p.Name))
		writeNodeText(sb, p, indent+"    ")
	}

	if n.HasReturn() {
		sb.WriteString(fmt.Sprintf("%sreturns %s\n", indent, n.ReturnType))
		writeNodeText(sb, &Node{Description: n.ReturnDescription}, indent+"    ")
	}
}

// signatureWithOwner is like signature but keeps the full dotted name.
func signatureWithOwner(n *Node) string {
	sig := fmt.Sprintf("%s(%s)", n.Name, formatParamList(n.Params))
	if n.HasReturn() {
		return n.ReturnType + " " + sig
	}

	return sig
}
