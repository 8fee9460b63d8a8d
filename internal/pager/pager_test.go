package pager

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestTruncateMiddle(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"abcdefghij", 5, "ab…ij"},
		{"abcdefghij", 0, ""},
		{"abcdefghij", 1, "a"},
		{"abcdefghij", 2, "a"},
	}

	for _, tt := range tests {
		if got := truncateMiddle(tt.in, tt.max); got != tt.want {
			t.Errorf("truncateMiddle(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestFindMarks(t *testing.T) {
	content := strings.Join([]string{
		"",
		"  \x1b[1m class Foo \x1b[0m",
		"  A foo.",
		"  ## Functions",
		"  ### bar()",
		"",
		"  # class Zed",
	}, "\n")

	marks := findMarks(content, []string{"class Foo", "class Missing", "class Zed"})

	if len(marks) != 2 {
		t.Fatalf("expected 2 marks, got %v", marks)
	}

	if marks[0].line != 1 || marks[1].line != 6 || marks[1].name != "class Zed" {
		t.Fatalf("unexpected marks %v", marks)
	}
}

func TestNextMark(t *testing.T) {
	marks := []mark{{line: 2, name: "a"}, {line: 10, name: "b"}, {line: 20, name: "c"}}

	if m, ok := nextMark(marks, 0, false); !ok || m.name != "a" {
		t.Fatalf("expected a, got %v %v", m, ok)
	}

	if m, ok := nextMark(marks, 10, false); !ok || m.name != "c" {
		t.Fatalf("expected c, got %v %v", m, ok)
	}

	if _, ok := nextMark(marks, 20, false); ok {
		t.Fatalf("expected no mark after the last one")
	}

	if m, ok := nextMark(marks, 10, true); !ok || m.name != "a" {
		t.Fatalf("expected a, got %v %v", m, ok)
	}

	if _, ok := nextMark(marks, 2, true); ok {
		t.Fatalf("expected no mark before the first one")
	}

	if m, ok := currentMark(marks, 15); !ok || m.name != "b" {
		t.Fatalf("expected b, got %v %v", m, ok)
	}

	if _, ok := currentMark(marks, 1); ok {
		t.Fatalf("expected no current mark above the first one")
	}
}

func TestModelEntityNavigation(t *testing.T) {
	lines := make([]string, 100)
	lines[40] = "class Foo"
	lines[80] = "class Bar"

	m := newModel(Document{
		Content:  strings.Join(lines, "\n"),
		Label:    "2 entities",
		Entities: []string{"class Foo", "class Bar"},
	})

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 11})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})

	if m.viewport.YOffset != 40 {
		t.Fatalf("expected offset 40 after n, got %d", m.viewport.YOffset)
	}

	if bar := m.statusBar(); !strings.Contains(bar, "class Foo") {
		t.Fatalf("expected current entity in status bar, got %q", bar)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	if m.viewport.YOffset != 80 {
		t.Fatalf("expected offset 80 after second n, got %d", m.viewport.YOffset)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'N'}})
	if m.viewport.YOffset != 40 {
		t.Fatalf("expected offset 40 after N, got %d", m.viewport.YOffset)
	}
}

func TestModelHelpAndQuit(t *testing.T) {
	m := newModel(Document{Content: "line"})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})

	full := m.viewport.Height

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	if !m.showHelp || m.viewport.Height >= full {
		t.Fatalf("expected help to shrink the viewport, got height %d", m.viewport.Height)
	}

	if !strings.Contains(m.View(), "next entity") {
		t.Fatalf("expected help listing in view")
	}

	// esc closes the help box before quitting
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.showHelp || cmd != nil {
		t.Fatalf("expected esc to close help only")
	}

	if m.viewport.Height != full {
		t.Fatalf("expected height %d after closing help, got %d", full, m.viewport.Height)
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}

	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg")
	}
}

func TestStatusLabel(t *testing.T) {
	m := newModel(Document{Content: "x"})
	if got := m.statusLabel(); got != defaultLabel {
		t.Fatalf("expected %q, got %q", defaultLabel, got)
	}

	m.doc.Label = "3 entities"
	if got := m.statusLabel(); got != "3 entities" {
		t.Fatalf("expected label, got %q", got)
	}

	m.flash = "Copied source"
	if got := m.statusLabel(); got != "Copied source" {
		t.Fatalf("expected flash message, got %q", got)
	}
}
