package pager

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
)

// keyMap holds the pager bindings. Scrolling bindings are handed to the
// viewport; the rest are matched in Update.
type keyMap struct {
	Up           key.Binding
	Down         key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
	Top          key.Binding
	Bottom       key.Binding
	NextEntity   key.Binding
	PrevEntity   key.Binding
	Copy         key.Binding
	Help         key.Binding
	Quit         key.Binding
}

var keys = keyMap{
	Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
	Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
	PageUp:       key.NewBinding(key.WithKeys("pgup", "b", "ctrl+b"), key.WithHelp("PgUp/b", "page up")),
	PageDown:     key.NewBinding(key.WithKeys("pgdown", "f", "ctrl+f", " "), key.WithHelp("PgDn/f/space", "page down")),
	HalfPageUp:   key.NewBinding(key.WithKeys("u", "ctrl+u"), key.WithHelp("u/Ctrl+U", "half page up")),
	HalfPageDown: key.NewBinding(key.WithKeys("d", "ctrl+d"), key.WithHelp("d/Ctrl+D", "half page down")),
	Top:          key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g/Home", "go to top")),
	Bottom:       key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G/End", "go to bottom")),
	NextEntity:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next entity")),
	PrevEntity:   key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "previous entity")),
	Copy:         key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy source to clipboard")),
	Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
	Quit:         key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q/Esc", "quit")),
}

func (k keyMap) viewport() viewport.KeyMap {
	return viewport.KeyMap{
		Up:           k.Up,
		Down:         k.Down,
		PageUp:       k.PageUp,
		PageDown:     k.PageDown,
		HalfPageUp:   k.HalfPageUp,
		HalfPageDown: k.HalfPageDown,
	}
}

// bindings lists every binding in help order.
func (k keyMap) bindings() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.PageUp, k.PageDown, k.HalfPageUp, k.HalfPageDown,
		k.Top, k.Bottom, k.NextEntity, k.PrevEntity, k.Copy, k.Help, k.Quit,
	}
}
