package model

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/espenotterstad/tail-chaser/internal/tailer"
	"github.com/espenotterstad/tail-chaser/internal/ui"
)

func update(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func numbered(n int) ChunkMsg {
	var sb strings.Builder
	for i := 1; i <= n; i++ {
		sb.WriteString("line " + strconv.Itoa(i) + "\n")
	}
	return ChunkMsg(sb.String())
}

func TestChunksSplitIntoLines(t *testing.T) {
	m := New("/tmp/app.log", 0)
	m = update(t, m, ChunkMsg("one\ntw"), ChunkMsg("o\nthr"))

	assert.Equal(t, []string{"one", "two"}, m.lines)
	assert.Equal(t, "thr", m.partial)
	assert.Equal(t, []string{"one", "two", "thr"}, m.visible())
}

func TestMaxLines(t *testing.T) {
	m := New("/tmp/app.log", 3)
	m = update(t, m, numbered(5))

	assert.Equal(t, []string{"line 3", "line 4", "line 5"}, m.lines)
}

func TestScrollingStopsFollow(t *testing.T) {
	m := New("/tmp/app.log", 0)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 15}, numbered(50))
	require.True(t, m.follow)

	m = update(t, m, key("up"), key("up"))
	assert.False(t, m.follow)
	assert.Equal(t, 2, m.scroll)

	// New text keeps the same rows on screen while paused.
	m = update(t, m, ChunkMsg("more\n"))
	assert.Equal(t, 3, m.scroll)

	m = update(t, m, key("G"))
	assert.True(t, m.follow)
	assert.Equal(t, 0, m.scroll)
}

func TestPausedViewStableWhenPartialCompletes(t *testing.T) {
	m := New("/tmp/app.log", 0)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 15}, numbered(50), ChunkMsg("thr"))
	m = update(t, m, key("up"), key("up"))
	require.False(t, m.follow)

	top := func(m Model) string {
		lines := m.visible()
		start, _ := ui.Window(len(lines), m.scroll, m.bodyHeight())
		return lines[start]
	}
	before := top(m)

	// The partial row was already on screen; finishing it adds no row.
	m = update(t, m, ChunkMsg("ee\n"))
	assert.Equal(t, 2, m.scroll)
	assert.Equal(t, before, top(m))

	// A genuinely new row still shifts the scroll.
	m = update(t, m, ChunkMsg("four\n"))
	assert.Equal(t, 3, m.scroll)
	assert.Equal(t, before, top(m))
}

func TestStatsPanelClippedToBody(t *testing.T) {
	m := New("/tmp/app.log", 0)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 10}, key("s"))
	require.True(t, m.showStats)

	view := m.View()
	assert.Equal(t, 9, strings.Count(view, "\n"))
	assert.Contains(t, ansi.Strip(view), "[q]quit")
}

func TestScrollDownToBottomResumesFollow(t *testing.T) {
	m := New("/tmp/app.log", 0)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 15}, numbered(50), key("up"))
	require.False(t, m.follow)

	m = update(t, m, key("down"))
	assert.True(t, m.follow)
}

func TestFollowedViewShowsNewestLine(t *testing.T) {
	m := New("/tmp/app.log", 0)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 15}, numbered(50))

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "line 50")
	assert.NotContains(t, view, "line 1\n")
	assert.Contains(t, view, "FOLLOW")
}

func TestFilter(t *testing.T) {
	m := New("/tmp/app.log", 0)
	m = update(t, m, ChunkMsg("INFO ready\nERROR disk full\nINFO done\n"))

	m = update(t, m, key("/"))
	require.True(t, m.filtering)
	m = update(t, m, key("e"), key("r"), key("r"), key("enter"))

	assert.False(t, m.filtering)
	assert.Equal(t, "err", m.filter)
	assert.Equal(t, []string{"ERROR disk full"}, m.visible())

	m = update(t, m, key("esc"))
	assert.Empty(t, m.filter)
	assert.Len(t, m.visible(), 3)
}

func TestEscInFilterInputClears(t *testing.T) {
	m := New("/tmp/app.log", 0)
	m = update(t, m, ChunkMsg("INFO ready\nERROR disk full\n"))
	m = update(t, m, key("/"), key("e"), key("r"), key("r"))
	require.Equal(t, "err", m.filter)

	m = update(t, m, key("esc"))
	assert.False(t, m.filtering)
	assert.Empty(t, m.filter)
	assert.Empty(t, m.filterInput.Value())
	assert.Len(t, m.visible(), 2)
}

func TestQuitWhileFilteringTypesQ(t *testing.T) {
	m := New("/tmp/app.log", 0)
	m = update(t, m, key("/"), key("q"))
	assert.Equal(t, "q", m.filter)

	_, cmd := m.Update(key("ctrl+c"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestClear(t *testing.T) {
	m := New("/tmp/app.log", 0)
	m = update(t, m, ChunkMsg("a\nb\npartial"), key("c"))
	assert.Empty(t, m.lines)
	assert.Empty(t, m.visible())
}

func TestStateAndStats(t *testing.T) {
	m := New("/tmp/app.log", 0)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30}, StateMsg(tailer.State{
		Path:      "/tmp/app.log",
		Offset:    12,
		Size:      12,
		Last:      tailer.Rotated,
		Rotations: 1,
	}))

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "offset 12/12")
	assert.Contains(t, view, "rotated")

	m = update(t, m, key("s"))
	view = ansi.Strip(m.View())
	assert.Contains(t, view, "Rotations")
	assert.Contains(t, view, "Truncations")
}

func TestTailerError(t *testing.T) {
	m := New("/tmp/app.log", 0)
	m = update(t, m, TailerErrMsg{Err: errors.New("invalid UTF-8 at offset 3")})

	require.Error(t, m.Err())
	assert.Contains(t, ansi.Strip(m.View()), "Fatal error: invalid UTF-8 at offset 3")

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
