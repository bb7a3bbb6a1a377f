// Package model contains the root Bubble Tea model for the interactive
// viewer.
package model

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/espenotterstad/tail-chaser/internal/tailer"
	"github.com/espenotterstad/tail-chaser/internal/ui"
)

// DefaultMaxLines bounds the number of lines kept in memory.
const DefaultMaxLines = 10000

// pageSize is how far pgup/pgdown move when the height is unknown.
const pageSize = 20

// ChunkMsg carries text emitted by the follower in one cycle.
type ChunkMsg string

// StateMsg carries a snapshot of the follower after a cycle.
type StateMsg tailer.State

// TailerErrMsg is sent when the follower stops on a fatal error.
type TailerErrMsg struct{ Err error }

// Model is the root Bubble Tea model.
type Model struct {
	// Complete lines, oldest first.
	lines []string

	// Text after the last newline, not yet a line.
	partial string

	maxLines int

	// Rows scrolled up from the bottom; 0 while following.
	scroll int
	follow bool

	filter      string
	filtering   bool
	filterInput textinput.Model

	showStats bool

	state tailer.State

	// Terminal dimensions.
	width, height int

	// Any fatal error to display.
	err error
}

// New creates the initial model for path.  maxLines <= 0 selects
// DefaultMaxLines.
func New(path string, maxLines int) Model {
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}

	ti := textinput.New()
	ti.Placeholder = "substring…"
	ti.CharLimit = 128
	ti.Width = 30

	return Model{
		maxLines:    maxLines,
		follow:      true,
		filterInput: ti,
		state:       tailer.State{Path: path},
	}
}

// Err returns the fatal follower error, if one was received.
func (m Model) Err() error {
	return m.err
}

// Init starts the Bubble Tea program; text arrives externally via Send.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles all incoming messages and key events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TailerErrMsg:
		m.err = msg.Err
		return m, nil

	case ChunkMsg:
		m.addText(string(msg))
		return m, nil

	case StateMsg:
		m.state = tailer.State(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Propagate to the filter input when active.
	if m.filtering {
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.setFilter(m.filterInput.Value())
		return m, cmd
	}

	return m, nil
}

// handleKey dispatches keyboard events.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global: quit.
	if msg.String() == "ctrl+c" || (msg.String() == "q" && !m.filtering) {
		return m, tea.Quit
	}

	if m.err != nil {
		return m, nil
	}

	// Filter input open: Enter keeps the filter, Esc clears it.
	if m.filtering {
		switch msg.String() {
		case "esc", "enter":
			if msg.String() == "esc" {
				m.filterInput.SetValue("")
			}
			m.filtering = false
			m.filterInput.Blur()
			m.setFilter(m.filterInput.Value())
			return m, nil
		}
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.setFilter(m.filterInput.Value())
		return m, cmd
	}

	switch msg.String() {
	case "up", "k":
		m.scrollBy(1)
	case "down", "j":
		m.scrollBy(-1)
	case "pgup":
		m.scrollBy(m.page())
	case "pgdown":
		m.scrollBy(-m.page())
	case "home", "g":
		m.scrollBy(len(m.visible()))
	case "end", "G":
		m.scroll = 0
		m.follow = true
	case "f":
		m.follow = !m.follow
		if m.follow {
			m.scroll = 0
		}
	case "s":
		m.showStats = !m.showStats
	case "c":
		m.lines = nil
		m.partial = ""
		m.scroll = 0
	case "/":
		m.filtering = true
		m.filterInput.Focus()
		return m, textinput.Blink
	case "esc":
		m.filterInput.SetValue("")
		m.setFilter("")
	}

	return m, nil
}

// addText splits text into lines, keeping an unterminated tail in partial.
func (m *Model) addText(text string) {
	// The open partial line is already a visible row, so count rows
	// rather than completed lines.
	before := len(m.visible())

	text = m.partial + text
	parts := strings.Split(text, "\n")
	m.partial = parts[len(parts)-1]

	for _, p := range parts[:len(parts)-1] {
		m.lines = append(m.lines, ui.Clean(p))
	}
	added := len(m.visible()) - before

	if over := len(m.lines) - m.maxLines; over > 0 {
		m.lines = append(m.lines[:0:0], m.lines[over:]...)
	}

	// Keep the same rows on screen while paused.
	if !m.follow {
		m.scroll += added
	}
}

func (m *Model) setFilter(f string) {
	if f == m.filter {
		return
	}
	m.filter = f
	m.scroll = 0
}

// scrollBy moves the view up by n rows (down for negative n).  Scrolling up
// stops following; reaching the bottom resumes it.
func (m *Model) scrollBy(n int) {
	total := len(m.visible())
	rows := m.bodyHeight()
	maxScroll := total - rows
	if maxScroll < 0 {
		maxScroll = 0
	}

	m.scroll += n
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}
	if m.scroll <= 0 {
		m.scroll = 0
		m.follow = true
		return
	}
	m.follow = false
}

func (m Model) page() int {
	if rows := m.bodyHeight(); rows > 1 {
		return rows - 1
	}
	return pageSize
}

// bodyHeight is the number of rows left after top bar(2), divider(1),
// status(1) and help(1).
func (m Model) bodyHeight() int {
	if m.height == 0 {
		return pageSize
	}
	h := m.height - 5
	if h < 1 {
		h = 1
	}
	return h
}

// visible returns the lines that pass the current filter, with the open
// partial line appended.
func (m Model) visible() []string {
	all := m.lines
	if m.partial != "" {
		all = append(all[:len(all):len(all)], ui.Clean(m.partial))
	}
	if m.filter == "" {
		return all
	}
	out := make([]string, 0, len(all))
	for _, l := range all {
		if ui.Matches(l, m.filter) {
			out = append(out, l)
		}
	}
	return out
}

// View renders the entire TUI.
func (m Model) View() string {
	if m.err != nil {
		return ui.StyleError.Render(fmt.Sprintf("Fatal error: %v", m.err)) + "\n\nPress q to quit.\n"
	}

	var sb strings.Builder

	// ── Top bar ─────────────────────────────────────────────────────────────
	sb.WriteString(ui.RenderTopBar(m.state.Path, m.width))

	// ── Body ─────────────────────────────────────────────────────────────────
	rows := m.bodyHeight()
	if m.showStats {
		stats := strings.Split(ui.RenderStats(m.state, len(m.lines)), "\n")
		if len(stats) > rows {
			stats = stats[:rows]
		}
		sb.WriteString(strings.Join(stats, "\n") + "\n")
		for written := len(stats); written < rows; written++ {
			sb.WriteByte('\n')
		}
	} else {
		lines := m.visible()
		start, end := ui.Window(len(lines), m.scroll, rows)
		sb.WriteString(ui.RenderLines(lines, start, end, m.filter, m.width, rows))
	}

	// ── Status and help footer ──────────────────────────────────────────────
	sb.WriteString(ui.StyleDivider.Render(strings.Repeat("─", max(m.width, 0))) + "\n")
	sb.WriteString(ui.RenderStatusBar(m.state, m.follow, len(m.visible()), len(m.lines)) + "\n")
	if m.filtering {
		sb.WriteString("  Filter: " + m.filterInput.View() + "  " + ui.StyleHelp.Render("[Enter] apply  [Esc] clear"))
	} else {
		sb.WriteString(ui.RenderHelp())
	}

	return sb.String()
}
