// Package pager is the interactive viewer of slashdoc view.
package pager

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

const (
	statusBarHeight = 1
	statusMsgDur    = 3 * time.Second
	logoText        = " slashdoc "
	defaultLabel    = "slashdoc view"
)

type styles struct {
	logo, status, help, helpTitle lipgloss.Style
}

var (
	normalStyles = styles{
		logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#5a4fcf")).
			Bold(true),
		status: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#2f2f2f", Dark: "#e6e6e6"}).
			Background(lipgloss.AdaptiveColor{Light: "#e6e6e6", Dark: "#303030"}),
	}

	// flashStyles replace the normal ones while a status message is shown.
	flashStyles = styles{
		logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f4f1ff")).
			Background(lipgloss.Color("#3d348b")).
			Bold(true),
		status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f4f1ff")).
			Background(lipgloss.Color("#7a6fe0")),
	}

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#2f2f2f", Dark: "#d9d9d9"}).
			Background(lipgloss.AdaptiveColor{Light: "#f5f5f5", Dark: "#1e1e1e"}).
			Padding(1, 2)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#5a4fcf", Dark: "#b3aaff"}).
			Bold(true)
)

// Document is the rendered documentation shown in the pager.
//
// Entities lists the headings of the documented entities in display order;
// the pager jumps between the content lines starting with them. Raw is what
// gets copied to the clipboard.
type Document struct {
	Content  string
	Raw      string
	Label    string
	Entities []string
}

// Run shows doc full screen until the user quits.
func Run(doc Document) error {
	_, err := tea.NewProgram(newModel(doc), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()

	return err
}

type clearFlashMsg struct{}

// mark is the content line at which an entity heading starts.
type mark struct {
	line int
	name string
}

type model struct {
	viewport viewport.Model
	doc      Document
	marks    []mark

	ready    bool
	width    int
	height   int
	showHelp bool
	flash    string
}

func newModel(doc Document) *model {
	vp := viewport.New(0, 0)
	vp.KeyMap = keys.viewport()
	vp.MouseWheelEnabled = true
	vp.SetContent(doc.Content)

	return &model{
		viewport: vp,
		doc:      doc,
		marks:    findMarks(doc.Content, doc.Entities),
	}
}

// findMarks locates, for each entity in turn, the first content line after
// the previous mark that starts with its heading, ignoring styling and
// heading markers.
func findMarks(content string, entities []string) []mark {
	lines := strings.Split(content, "\n")

	var (
		marks []mark
		from  int
	)

	for _, name := range entities {
		for i := from; i < len(lines); i++ {
			if strings.HasPrefix(strings.TrimLeft(ansi.Strip(lines[i]), "# "), name) {
				marks = append(marks, mark{line: i, name: name})
				from = i + 1

				break
			}
		}
	}

	return marks
}

// nextMark returns the first mark below offset, or the first mark above it
// when backward is set.
func nextMark(marks []mark, offset int, backward bool) (mark, bool) {
	if backward {
		i := sort.Search(len(marks), func(i int) bool { return marks[i].line >= offset })
		if i == 0 {
			return mark{}, false
		}

		return marks[i-1], true
	}

	i := sort.Search(len(marks), func(i int) bool { return marks[i].line > offset })
	if i == len(marks) {
		return mark{}, false
	}

	return marks[i], true
}

// currentMark returns the entity whose section contains offset.
func currentMark(marks []mark, offset int) (mark, bool) {
	i := sort.Search(len(marks), func(i int) bool { return marks[i].line > offset })
	if i == 0 {
		return mark{}, false
	}

	return marks[i-1], true
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width, m.height = msg.Width, msg.Height
		m.resize()

		return m, nil

	case clearFlashMsg:
		m.flash = ""

		return m, nil

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)

	return m, cmd
}

// handleKey runs the pager's own bindings. Scrolling keys are left to the
// viewport.
func (m *model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Quit):
		if m.showHelp && msg.String() == "esc" {
			m.showHelp = false
			m.resize()

			return nil, true
		}

		return tea.Quit, true
	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		m.resize()
	case key.Matches(msg, keys.Copy):
		return m.copySource(), true
	case key.Matches(msg, keys.NextEntity):
		m.jump(false)
	case key.Matches(msg, keys.PrevEntity):
		m.jump(true)
	case key.Matches(msg, keys.Top):
		m.viewport.GotoTop()
	case key.Matches(msg, keys.Bottom):
		m.viewport.GotoBottom()
	default:
		return nil, false
	}

	return nil, true
}

func (m *model) jump(backward bool) {
	if mk, ok := nextMark(m.marks, m.viewport.YOffset, backward); ok {
		m.viewport.SetYOffset(mk.line)
	}
}

func (m *model) copySource() tea.Cmd {
	if m.doc.Raw == "" {
		return nil
	}

	termenv.Copy(m.doc.Raw)
	if err := clipboard.WriteAll(m.doc.Raw); err != nil {
		return m.setFlash(fmt.Sprintf("copy failed: %v", err))
	}

	return m.setFlash("Copied source")
}

func (m *model) View() string {
	if !m.ready {
		return "Loading pager…"
	}

	parts := []string{m.viewport.View(), m.statusBar()}
	if m.showHelp {
		parts = append(parts, m.helpView())
	}

	return strings.Join(parts, "\n")
}

// statusLabel is the flash message, else the entity at the top of the
// viewport, else the document label.
func (m *model) statusLabel() string {
	if m.flash != "" {
		return m.flash
	}

	if mk, ok := currentMark(m.marks, m.viewport.YOffset); ok {
		return mk.name
	}

	if label := strings.TrimSpace(m.doc.Label); label != "" {
		return label
	}

	return defaultLabel
}

func (m *model) statusBar() string {
	st := normalStyles
	if m.flash != "" {
		st = flashStyles
	}

	width := m.viewport.Width
	if width <= 0 {
		width = lipgloss.Width(m.viewport.View())
	}

	logo := st.logo.Render(logoText)

	percent := math.Max(0, math.Min(1, m.viewport.ScrollPercent()))
	right := fmt.Sprintf(" %3d%% ", int(math.Round(percent*100)))
	if m.showHelp {
		right += " Close help "
	} else {
		right += " ? Help "
	}

	room := max(width-lipgloss.Width(logo)-lipgloss.Width(right), 0)
	label := " " + truncateMiddle(m.statusLabel(), max(room-2, 0)) + " "
	gap := strings.Repeat(" ", max(room-lipgloss.Width(label), 0))

	return logo + st.status.Render(label+gap+right)
}

func (m *model) helpView() string {
	bindings := keys.bindings()

	rows := make([]string, 0, len(bindings)+2)
	rows = append(rows, helpKeyStyle.Render("Controls"), "")

	for _, b := range bindings {
		h := b.Help()
		rows = append(rows, fmt.Sprintf("%s %s", helpKeyStyle.Render(fmt.Sprintf("%-12s", h.Key)), h.Desc))
	}

	content := strings.Join(rows, "\n")

	return helpStyle.Width(max(m.viewport.Width, lipgloss.Width(content))).Render(content)
}

// resize fits the viewport between the top of the screen and the status bar,
// and the help box when it is open.
func (m *model) resize() {
	m.viewport.Width = m.width

	height := m.height - statusBarHeight
	if m.showHelp {
		height -= lipgloss.Height(m.helpView())
	}

	m.viewport.Height = max(height, 1)
}

func (m *model) setFlash(msg string) tea.Cmd {
	m.flash = msg

	return tea.Tick(statusMsgDur, func(time.Time) tea.Msg {
		return clearFlashMsg{}
	})
}

// truncateMiddle shortens s to at most limit runes by replacing its middle
// with an ellipsis.
func truncateMiddle(s string, limit int) string {
	if limit <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	keep := limit - utf8.RuneCountInString("…")
	if keep <= 1 {
		return string(runes[:1])
	}

	front := keep / 2

	return string(runes[:front]) + "…" + string(runes[len(runes)-(keep-front):])
}
