package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.dw1.io/slashdoc"
)

const fooJS = `/// class Foo
/// A foo. See @Foo.bar.
function Foo() {}

/// function Foo.bar
/// Does bar.
/// Returns:
///   {Boolean}: Whether it worked.
Foo.prototype.bar = function () {};
`

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func TestRootWritesHTML(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "foo.js", fooJS)

	out, err := execute(t, in)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
	assert.Contains(t, out, `<h2 id="class-foo">class Foo</h2>`)
	assert.Contains(t, out, `<a href="#function-foo-bar" data-parent="class-foo">Foo.bar</a>`)
	assert.Contains(t, out, `<span class="return-heading">Returns: Boolean</span>`)
	assert.Regexp(t, `(?m)^\s*<p>Does bar\.</p>$`, out)
}

func TestRootFormats(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "foo.js", fooJS)

	out, err := execute(t, "--format", "text", in)
	require.NoError(t, err)
	assert.Contains(t, out, "class Foo\n")
	assert.Contains(t, out, "function Boolean Foo.bar()")

	out, err = execute(t, "-f", "markdown", in)
	require.NoError(t, err)
	assert.Contains(t, out, `# <a id="class-foo"></a>class Foo`)

	out, err = execute(t, "-f", "json", in)
	require.NoError(t, err)
	assert.Contains(t, out, `"Foo.bar"`)

	_, err = execute(t, "-f", "pdf", in)
	require.EqualError(t, err, "unknown format: pdf")
}

func TestRootSyntaxError(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "bad.js", "/// widget Foo\n")

	_, err := execute(t, in)

	var syntaxErr *slashdoc.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, 1, syntaxErr.Line)
}

func TestRootNoInput(t *testing.T) {
	_, err := execute(t)
	require.ErrorIs(t, err, slashdoc.ErrNoInput)
}

func TestRootOutputFile(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "foo.js", fooJS)
	dst := filepath.Join(dir, "docs.html")

	out, err := execute(t, "-o", dst, in)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(data), "class Foo")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "foo.py", "#: class Foo\n#: A foo.\n")
	cfg := writeInput(t, dir, "slashdoc.yaml", "token: \"#:\"\nindent: 2\n")

	out, err := execute(t, "--config", cfg, "-f", "text", in)
	require.NoError(t, err)
	assert.Contains(t, out, "class Foo\n")

	// flags override the file
	out, err = execute(t, "--config", cfg, "-t", "///", "-f", "text", in)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestConfigFileMissing(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "foo.js", fooJS)

	_, err := execute(t, "--config", filepath.Join(dir, "missing.yaml"), in)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestInvalidFlags(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "foo.js", fooJS)

	_, err := execute(t, "-i", "0", in)
	require.ErrorIs(t, err, slashdoc.ErrInvalidIndent)
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "foo.js", fooJS)
	dst := filepath.Join(dir, "docs.html")

	_, err := execute(t, "check", "-o", dst, in)

	var stale *staleError
	require.ErrorAs(t, err, &stale)

	_, err = execute(t, "-o", dst, in)
	require.NoError(t, err)

	out, err := execute(t, "check", "-o", dst, in)
	require.NoError(t, err)
	assert.Empty(t, out)

	writeInput(t, dir, "foo.js", strings.Replace(fooJS, "Does bar.", "Does baz.", 1))

	out, err = execute(t, "check", "-o", dst, in)
	require.ErrorAs(t, err, &stale)
	assert.Equal(t, dst+" is out of date", err.Error())
	assert.Contains(t, out, "--- "+dst)
	assert.Contains(t, out, "+++ generated")
	assert.Regexp(t, `(?m)^-\s*<p>Does bar\.</p>$`, out)
	assert.Regexp(t, `(?m)^\+\s*<p>Does baz\.</p>$`, out)
}

func TestCheckNeedsOutput(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "foo.js", fooJS)

	_, err := execute(t, "check", in)
	require.EqualError(t, err, "check needs an output file (-o or output in the config)")
}

func TestCheckOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\nc\n"), 0o644))

	var buf bytes.Buffer
	require.NoError(t, checkOutput(&buf, path, "a\nb\nc\n"))
	assert.Empty(t, buf.String())

	err := checkOutput(&buf, path, "a\nx\nc\n")

	var stale *staleError
	require.ErrorAs(t, err, &stale)
	assert.Contains(t, buf.String(), "-b\n")
	assert.Contains(t, buf.String(), "+x\n")
}

func TestEntityHeadings(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "foo.js", fooJS)

	sd := slashdoc.New()
	doc, err := sd.Load(in)
	require.NoError(t, err)

	assert.Equal(t, []string{"class Foo"}, entityHeadings(doc))
}
