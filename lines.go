package slashdoc

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// newLine wraps the marker-stripped text of one source line, computing its
// indent level in units of indent spaces.
func newLine(text string, indent int, filename string, number int) (Line, error) {
	trimmed := strings.TrimLeftFunc(text, unicode.IsSpace)
	spaces := len(text) - len(trimmed)

	l := Line{
		Text:     strings.TrimSpace(trimmed),
		Filename: filename,
		Number:   number,
	}

	if spaces%indent != 0 {
		return l, syntaxErrorf(l, "bad indent")
	}

	l.Indent = spaces / indent
	l.class = classify(l.Text)

	return l, nil
}

// classify tags a line with the construct it opens. A Params header wins over
// a parameter declaration, which wins over a Returns header.
func classify(text string) lineClass {
	lower := strings.ToLower(text)

	switch {
	case paramsSectionRe.MatchString(lower):
		return lineParamsHeader
	case isParamDecl(text):
		return lineParamDecl
	case returnsSectionRe.MatchString(lower):
		return lineReturnsHeader
	default:
		return lineOther
	}
}

func isParamDecl(text string) bool {
	return paramRe.MatchString(text) ||
		paramDefaultRe.MatchString(text) ||
		optionalParamRe.MatchString(text) ||
		optionalParamDefaultRe.MatchString(text)
}

// isSectionHeader reports whether l opens a Params or Returns section.
func (l Line) isSectionHeader() bool {
	return l.class == lineParamsHeader || l.class == lineReturnsHeader
}

// stripToken returns the text following token and one space on a marked
// line. ok is false when the line does not carry the marker.
func stripToken(raw, token string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, token) {
		return "", false
	}

	rest := strings.TrimPrefix(trimmed, token)

	return strings.TrimPrefix(rest, " "), true
}

// Tokenize splits the marked lines of r into blocks.
//
// Unmarked lines end the current block. Marked lines that are blank after
// stripping are skipped without ending it, so paragraph breaks inside a doc
// comment survive as line-number gaps.
func Tokenize(filename string, r io.Reader, token string, indent int) ([]Block, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrEmptyToken
	}

	if indent <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidIndent, indent)
	}

	var (
		blocks  []Block
		current Block
	)

	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, current)
			current = nil
		}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	number := 0
	for scanner.Scan() {
		number++

		text, ok := stripToken(scanner.Text(), token)
		if !ok {
			flush()
			continue
		}

		if strings.TrimSpace(text) == "" {
			continue
		}

		l, err := newLine(text, indent, filename, number)
		if err != nil {
			return nil, err
		}

		current = append(current, l)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}

	flush()

	return blocks, nil
}
