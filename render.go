package slashdoc

import (
	"fmt"
	"html"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	pageHTML = `<!doctype html>
<html>
<head>
  <link rel="stylesheet" type="text/css" href="%s">
</head>
<body>
<!-- START TOC -->
%s
<!-- END TOC -->
<!-- START DOCS -->
%s
<!-- END DOCS -->
</body>
</html>
`

	linkHTML                = `<a href="#%s" data-parent="%s">%s</a>`
	itemHTML                = "<div>\n%s\n</div>"
	firstLevelHTML          = `<a href="#" class="docs-toggle" data-toggle="%[1]s"><h2 id="%[1]s">%[2]s %[3]s</h2></a>`
	firstLevelContainerHTML = "<div class=\"inner\" id=\"inner-%s\">\n%s\n</div>"
	secondLevelHTML         = `<h3 class="api-item" id="%[1]s">%[2]s<a class="anchor-link" href="#%[1]s"><span class="anchor"></span></a></h3>`
	secondLevelTypeHTML     = `<h3 class="api-item" id="%[1]s">%[2]s %[3]s<a class="anchor-link" href="#%[1]s"><span class="anchor"></span></a></h3>`
	optionalHTML            = `<span class="optional">optional</span> `
	thirdLevelHTML          = `<h4 id="%[1]s">%[2]s%[3]s %[4]s<a class="anchor-link" href="#%[1]s"><span class="anchor"></span></a></h4>`
	thirdLevelDefaultHTML   = `<h4 id="%[1]s">%[2]s%[3]s %[4]s: %[5]s<a class="anchor-link" href="#%[1]s"><span class="anchor"></span></a></h4>`
	descriptionHTML         = "<p>%s</p>"
	memberListHTML          = "<span class=\"prop-heading\">%s</span>\n<ul>\n%s\n</ul>"
	paramListHTML           = "<div><span class=\"param-heading\">%s</span>\n<ul>\n%s\n</ul></div>"
	returnHTML              = `<span class="return-heading">Returns: %s</span>`
	listItemHTML            = "<li>\n%s\n</li>"
	exampleHTML             = `<code class="example">%s</code>`
	exampleLeadingSpace     = "&nbsp;"
	exampleEnd              = "<br/>"
	codeHTML                = "<code>%s</code>"

	tocHTML        = "<div id=\"toc\"><ul>\n%s\n</ul></div>"
	tocTopLinkHTML = `<a data-toggle="%[1]s" class="toc-top" href="#%[1]s">%[2]s</a>`
	tocLinkHTML    = `<a href="#%s" data-parent="%s">%s</a>`
	tocItemHTML    = "<li>%s</li>"
	tocListHTML    = "<ul>\n%s\n</ul>"
	sectionHTML    = "<b>%s</b>"
)

// renderHTML renders the whole page: the table of contents, the docs and
// finally the "@Name" links over both.
func renderHTML(d *Document) string {
	stylesheet := d.stylesheet
	if stylesheet == "" {
		stylesheet = DefaultStylesheet
	}

	roots := d.index.Roots()

	items := make([]string, 0, len(roots))
	for _, e := range roots {
		items = append(items, fmt.Sprintf(itemHTML, indentBlock(rootHTML(e))))
	}

	page := fmt.Sprintf(pageHTML,
		html.EscapeString(stylesheet),
		tocBlockHTML(d.index),
		strings.Join(items, "\n"))

	return d.index.Link(page)
}

func rootHTML(e *Entry) string {
	n := e.Node
	heading := fmt.Sprintf(firstLevelHTML, n.URL(), n.Kind, html.EscapeString(n.Name))

	content := append(nodeHTML(n), sectionsHTML(e)...)

	return heading + "\n" + fmt.Sprintf(firstLevelContainerHTML, n.URL(), indentBlock(strings.Join(content, "\n")))
}

func memberHTML(e *Entry) string {
	n := e.Node

	var heading string
	switch {
	case n.Kind == KindFunction:
		heading = fmt.Sprintf(secondLevelHTML, n.URL(), html.EscapeString(signature(n)))
	case n.Type != "":
		heading = fmt.Sprintf(secondLevelTypeHTML, n.URL(), html.EscapeString(n.Type), html.EscapeString(n.ShortName()))
	default:
		heading = fmt.Sprintf(secondLevelHTML, n.URL(), html.EscapeString(n.ShortName()))
	}

	lines := append([]string{heading}, nodeHTML(n)...)
	lines = append(lines, sectionsHTML(e)...)

	return strings.Join(lines, "\n")
}

func sectionsHTML(e *Entry) []string {
	var out []string
	for _, s := range e.Sections() {
		items := make([]string, 0, len(s.Entries))
		for _, m := range s.Entries {
			items = append(items, fmt.Sprintf(listItemHTML, indentBlock(memberHTML(m))))
		}

		out = append(out, fmt.Sprintf(memberListHTML, sectionTitle(s.Kind), indentBlock(strings.Join(items, "\n"))))
	}

	return out
}

// nodeHTML renders the description, parameters and return value of n.
func nodeHTML(n *Node) []string {
	out := descriptionBlocksHTML(n.Description)

	if len(n.Params) > 0 {
		items := make([]string, 0, len(n.Params))
		for _, p := range n.Params {
			items = append(items, fmt.Sprintf(listItemHTML, indentBlock(paramHTML(p))))
		}

		out = append(out, fmt.Sprintf(paramListHTML, "Params:", indentBlock(strings.Join(items, "\n"))))
	}

	if n.HasReturn() {
		out = append(out, fmt.Sprintf(returnHTML, html.EscapeString(n.ReturnType)))
		out = append(out, descriptionBlocksHTML(n.ReturnDescription)...)
	}

	return out
}

func paramHTML(p *Node) string {
	optional := ""
	if p.Optional {
		optional = optionalHTML
	}

	var heading string
	if p.HasDefault() {
		heading = fmt.Sprintf(thirdLevelDefaultHTML, p.URL(), optional,
			html.EscapeString(p.Type), html.EscapeString(p.Name), html.EscapeString(*p.Default))
	} else {
		heading = fmt.Sprintf(thirdLevelHTML, p.URL(), optional,
			html.EscapeString(p.Type), html.EscapeString(p.Name))
	}

	return strings.Join(append([]string{heading}, nodeHTML(p)...), "\n")
}

func descriptionBlocksHTML(d Description) []string {
	out := make([]string, 0, len(d))
	for _, seg := range d {
		if seg.Example {
			out = append(out, exampleBlockHTML(seg.Text))
			continue
		}

		out = append(out, fmt.Sprintf(descriptionHTML, proseHTML(seg.Text)))
	}

	return out
}

// proseHTML escapes text and turns "|code|" spans into code elements.
func proseHTML(text string) string {
	return codeSpanRe.ReplaceAllString(html.EscapeString(text), fmt.Sprintf(codeHTML, "$1"))
}

// exampleBlockHTML keeps leading spaces and line breaks of an example.
func exampleBlockHTML(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		lead := strings.Repeat(exampleLeadingSpace, len(line)-len(trimmed))
		lines[i] = lead + html.EscapeString(trimmed)
	}

	return fmt.Sprintf(exampleHTML, strings.Join(lines, exampleEnd))
}

func tocBlockHTML(x *Index) string {
	roots := x.Roots()

	items := make([]string, 0, len(roots))
	for _, e := range roots {
		link := fmt.Sprintf(tocTopLinkHTML, e.Node.URL(), html.EscapeString(e.Node.Name))
		items = append(items, fmt.Sprintf(tocItemHTML, link+tocMembersHTML(x, e)))
	}

	return fmt.Sprintf(tocHTML, indentBlock(strings.Join(items, "\n")))
}

func tocMembersHTML(x *Index, e *Entry) string {
	sections := e.Sections()
	if len(sections) == 0 {
		return ""
	}

	var items []string
	for _, s := range sections {
		items = append(items, fmt.Sprintf(tocItemHTML, fmt.Sprintf(sectionHTML, sectionTitle(s.Kind))))
		for _, m := range s.Entries {
			n := m.Node
			link := fmt.Sprintf(tocLinkHTML, n.URL(), x.ParentURL(n.Name), html.EscapeString(n.ShortName()))
			items = append(items, fmt.Sprintf(tocItemHTML, link+tocMembersHTML(x, m)))
		}
	}

	return "\n" + fmt.Sprintf(tocListHTML, indentBlock(strings.Join(items, "\n")))
}

// sectionTitle returns the heading of a member group, e.g. "Properties:".
func sectionTitle(k Kind) string {
	return cases.Title(language.English).String(k.Plural()) + ":"
}

func indentBlock(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}

	return strings.Join(lines, "\n")
}
