package slashdoc

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const renderFixture = `/// class Foo
/// A foo. Use |Foo.bar| or @Foo.bar.
var Foo = function() {};

/// function Foo.bar
/// params:
///   x {int}: how many
///   [cb] (null) {function}: called <later>
/// returns:
///   {string}: the result
Foo.prototype.bar = function(x, cb) {};

/// property Foo.size {number}
/// The size.
///     if (a < b)
///       grow();
`

func renderDoc(t *testing.T) *Document {
	t.Helper()

	s := New(WithStylesheet("docs.css"))

	doc, err := s.Parse(Source{Name: "foo.js", Content: []byte(renderFixture)})
	require.NoError(t, err)

	return doc
}

func TestRenderHTML(t *testing.T) {
	out := renderDoc(t).HTML()

	for _, want := range []string{
		"<!doctype html>",
		`<link rel="stylesheet" type="text/css" href="docs.css">`,
		"<!-- START TOC -->",
		"<!-- END DOCS -->",
		`<a href="#" class="docs-toggle" data-toggle="class-foo"><h2 id="class-foo">class Foo</h2></a>`,
		`<div class="inner" id="inner-class-foo">`,
		`<p>A foo. Use <code>Foo.bar</code> or <a href="#function-foo-bar" data-parent="class-foo">Foo.bar</a>.</p>`,
		`<span class="prop-heading">Functions:</span>`,
		`<span class="prop-heading">Properties:</span>`,
		`<h3 class="api-item" id="function-foo-bar">string bar(int x, [function cb])<a class="anchor-link" href="#function-foo-bar"><span class="anchor"></span></a></h3>`,
		`<span class="param-heading">Params:</span>`,
		`<h4 id="function-foo-bar-x">int x<a class="anchor-link" href="#function-foo-bar-x"><span class="anchor"></span></a></h4>`,
		`<h4 id="function-foo-bar-cb"><span class="optional">optional</span> function cb: null<a class="anchor-link" href="#function-foo-bar-cb"><span class="anchor"></span></a></h4>`,
		"<p>called &lt;later&gt;</p>",
		`<span class="return-heading">Returns: string</span>`,
		`<h3 class="api-item" id="property-foo-size">number size<a class="anchor-link" href="#property-foo-size"><span class="anchor"></span></a></h3>`,
		`<code class="example">if (a &lt; b)<br/>&nbsp;&nbsp;grow();</code>`,
		`<a data-toggle="class-foo" class="toc-top" href="#class-foo">Foo</a>`,
		"<li><b>Functions:</b></li>",
		`<li><a href="#function-foo-bar" data-parent="class-foo">bar</a></li>`,
	} {
		assert.Contains(t, out, want)
	}

	assert.Less(t, strings.Index(out, "Functions:</span>"), strings.Index(out, "Properties:</span>"),
		"member groups follow kind order")
}

func TestRenderHTMLDefaultStylesheet(t *testing.T) {
	sd := New(WithStylesheet(""))
	doc, err := sd.Parse(Source{Name: "a.js", Content: []byte("/// class A\n")})
	require.NoError(t, err)

	assert.Contains(t, doc.HTML(), `href="css/style.css"`)
}

func TestRenderMarkdown(t *testing.T) {
	out := renderDoc(t).Markdown()

	for _, want := range []string{
		"# <a id=\"class-foo\"></a>class Foo\n",
		"A foo. Use `Foo.bar` or [Foo.bar](#function-foo-bar).",
		"## Functions\n",
		"### <a id=\"function-foo-bar\"></a>`string bar(int x, [function cb])`\n",
		"**Params:**",
		"- <a id=\"function-foo-bar-x\"></a>`x` *int*\n",
		"- <a id=\"function-foo-bar-cb\"></a>`cb` *function* (default `null`) _optional_\n",
		"**Returns:** `string`",
		"## Properties\n",
		"### <a id=\"property-foo-size\"></a>`number size`\n",
		"```\nif (a < b)\n  grow();\n```\n",
	} {
		assert.Contains(t, out, want)
	}
}

func TestRenderMarkdownLinkTargets(t *testing.T) {
	out := renderDoc(t).Markdown()

	targets := regexp.MustCompile(`\]\(#([\w\-]+)\)`).FindAllStringSubmatch(out, -1)
	require.NotEmpty(t, targets)

	for _, m := range targets {
		assert.Contains(t, out, `<a id="`+m[1]+`"></a>`, "link to #%s has no anchor", m[1])
	}
}

func TestRenderText(t *testing.T) {
	out := renderDoc(t).Text()

	assert.True(t, strings.HasPrefix(out, "class Foo\n    A foo. Use |Foo.bar| or @Foo.bar.\n"), out)
	assert.Contains(t, out, "  function string Foo.bar(int x, [function cb])\n")
	assert.Contains(t, out, "      int x\n")
	assert.Contains(t, out, "      returns string\n")
	assert.Contains(t, out, "  property Foo.size\n")
}

func TestSignature(t *testing.T) {
	n := &Node{Name: "Foo.doit", Kind: KindFunction}
	assert.Equal(t, "doit()", signature(n))

	n.Params = []*Node{
		{Name: "food", Type: "int"},
		{Name: "cheese", Type: "function", Optional: true},
	}
	n.ReturnType = "int"

	assert.Equal(t, "int doit(int food, [function cheese])", signature(n))
	assert.Equal(t, "int Foo.doit(int food, [function cheese])", signatureWithOwner(n))
}

func TestSectionTitle(t *testing.T) {
	tests := map[Kind]string{
		KindClass:    "Classes:",
		KindObject:   "Objects:",
		KindFunction: "Functions:",
		KindProperty: "Properties:",
		KindEvent:    "Events:",
	}

	for k, want := range tests {
		assert.Equal(t, want, sectionTitle(k))
	}
}

func TestExampleBlockHTML(t *testing.T) {
	got := exampleBlockHTML("a & b\n    c")
	assert.Equal(t, `<code class="example">a &amp; b<br/>&nbsp;&nbsp;&nbsp;&nbsp;c</code>`, got)
}
