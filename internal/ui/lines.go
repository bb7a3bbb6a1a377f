package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// tabWidth is how many spaces a tab expands to.
const tabWidth = 4

// RenderLines renders the visible window of lines, one terminal row each.
// Lines are stripped of escape sequences, cut at width and, when filter is
// set, have every match highlighted.  The output always has exactly height
// rows so the previous frame never bleeds through.
func RenderLines(lines []string, start, end int, filter string, width, height int) string {
	var sb strings.Builder

	written := 0
	for i := start; i < end && written < height; i++ {
		sb.WriteString(renderLine(lines[i], filter, width))
		sb.WriteByte('\n')
		written++
	}

	// Pad remaining rows so height stays constant.
	for ; written < height; written++ {
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Clean turns a raw followed line into something safe to draw on one row.
func Clean(line string) string {
	line = ansi.Strip(line)
	line = strings.ReplaceAll(line, "\t", strings.Repeat(" ", tabWidth))
	return strings.TrimRight(line, "\r")
}

func renderLine(line, filter string, width int) string {
	if width > 0 {
		line = ansi.Truncate(line, width, "…")
	}
	if filter == "" {
		return line
	}
	return highlight(line, filter)
}

// highlight wraps every case-insensitive occurrence of sub in StyleMatch.
func highlight(line, sub string) string {
	lower := strings.ToLower(line)
	needle := strings.ToLower(sub)
	if len(lower) != len(line) || needle == "" {
		// Lower-casing moved byte offsets; show the line as is.
		return line
	}

	var sb strings.Builder
	for {
		i := strings.Index(lower, needle)
		if i < 0 {
			sb.WriteString(line)
			return sb.String()
		}
		sb.WriteString(line[:i])
		sb.WriteString(StyleMatch.Render(line[i : i+len(needle)]))
		line = line[i+len(needle):]
		lower = lower[i+len(needle):]
	}
}

// Matches reports whether line contains filter, ignoring case.
func Matches(line, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(line), strings.ToLower(filter))
}

// Window returns the [start, end) range of rows to show when the view is
// scrolled up by scroll rows from the bottom.  scroll is clamped so the
// window never runs past either end.
func Window(total, scroll, rows int) (start, end int) {
	if rows < 1 {
		rows = 1
	}
	if total <= rows {
		return 0, total
	}
	maxScroll := total - rows
	if scroll > maxScroll {
		scroll = maxScroll
	}
	if scroll < 0 {
		scroll = 0
	}
	end = total - scroll
	return end - rows, end
}
