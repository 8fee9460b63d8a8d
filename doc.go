// Package slashdoc extracts structured documentation from "///" doc comments
// embedded in source files of any language, and renders it as a single HTML
// page with a table of contents and cross-reference links.
//
// # Comment Format
//
// A doc comment is a run of consecutive lines starting with the comment
// token; any other line ends it. Its first line names the documented entity:
//
//	/// class Foo
//	/// Does foo things. See @Foo.bar.
//	function Foo() {}
//
//	/// function Foo.bar
//	/// params:
//	///   x {int}: how many
//	/// returns:
//	///   {string}: the result
//
// The recognized kinds are class, object, function, property and event. A
// property must declare its {type} on the heading line.
//
// # API
//
// The primary entry point is the [Slashdoc.Load] method, which reads and
// parses files into a [Document]. Lower-level building blocks are
// [Tokenize], [ParseBlock], [Registry] and [Index].
//
// # Output Formats
//
// A [Document] implements the [Result] interface:
//
//	html := doc.HTML()
//	md := doc.Markdown()
//	text := doc.Text()
//	data, err := doc.MarshalJSON()
//
// # Errors
//
// Malformed comments abort parsing with a *[SyntaxError] naming the file and
// line. No partial output is produced.
package slashdoc
