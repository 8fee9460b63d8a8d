package slashdoc

import "fmt"

var (
	ErrNoInput       = fmt.Errorf("no input files")
	ErrEmptyToken    = fmt.Errorf("comment token cannot be empty")
	ErrInvalidIndent = fmt.Errorf("invalid indent unit")
	ErrEmptyBlock    = fmt.Errorf("empty block")
)

// SyntaxError reports a malformed doc comment. Parsing stops at the first
// one; there is no partial result.
type SyntaxError struct {
	Msg      string
	Filename string
	Line     int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s line %d", e.Msg, e.Filename, e.Line)
}

func syntaxErrorf(l Line, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Msg:      fmt.Sprintf(format, args...),
		Filename: l.Filename,
		Line:     l.Number,
	}
}
