package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/espenotterstad/tail-chaser/internal/tailer"
)

// Title is shown in the top-right corner.
const Title = "tail-chaser"

// RenderTopBar renders the path on the left and the title on the right,
// followed by a divider.
func RenderTopBar(path string, width int) string {
	left := StylePath.Render(path)
	title := StyleTitle.Render(Title)
	spacer := width - lipgloss.Width(left) - lipgloss.Width(title) - 1
	if spacer < 1 {
		spacer = 1
	}
	return left + strings.Repeat(" ", spacer) + title + "\n" +
		StyleDivider.Render(strings.Repeat("─", max(width, 0))) + "\n"
}

// RenderStatusBar renders offset, size, last status, rotations and the
// follow indicator on a single row.
func RenderStatusBar(st tailer.State, follow bool, shown, total int) string {
	status := st.Last.String()
	parts := []string{
		fmt.Sprintf("offset %d/%d", st.Offset, st.Size),
		StatusStyle(status).Render(status),
		fmt.Sprintf("rotations %d", st.Rotations),
		fmt.Sprintf("lines %d/%d", shown, total),
	}
	if follow {
		parts = append(parts, StyleFollow.Render("FOLLOW"))
	} else {
		parts = append(parts, StyleMuted.Render("PAUSED"))
	}
	return "  " + strings.Join(parts, StyleMuted.Render("  │  "))
}

// RenderHelp renders the key help footer.
func RenderHelp() string {
	return StyleHelp.Render(
		"[↑↓/jk]scroll  [PgUp/PgDn]page  [f]follow  [/]filter  [s]stats  [c]clear  [q]quit",
	)
}
