package slashdoc

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// validateSettings checks the comment token and indent unit.
func validateSettings(token string, indent int) error {
	if strings.TrimSpace(token) == "" {
		return ErrEmptyToken
	}

	if indent <= 0 {
		return fmt.Errorf("%w: must be positive, got %d", ErrInvalidIndent, indent)
	}

	return nil
}

// isTextFile reports whether the start of the file at path looks like text,
// using the same NUL byte heuristic as git.
func isTextFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, 8000)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return false
	}

	return !bytes.Contains(buf[:n], []byte{0})
}

// uniqStrings drops empty and repeated values, keeping first occurrences.
func uniqStrings(values ...string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))

	for _, v := range values {
		if v == "" {
			continue
		}

		if _, ok := seen[v]; ok {
			continue
		}

		seen[v] = struct{}{}
		out = append(out, v)
	}

	return out
}
