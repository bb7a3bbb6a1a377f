package ui

import (
	"fmt"
	"strings"

	"github.com/espenotterstad/tail-chaser/internal/tailer"
)

// RenderStats renders the stats panel for the followed file.
func RenderStats(st tailer.State, lines int) string {
	var sb strings.Builder

	section := func(title string) {
		sb.WriteString("\n" + StyleLabel.Render(title) + "\n")
		sb.WriteString(StyleDivider.Render(strings.Repeat("─", 40)) + "\n")
	}

	kv := func(k, v string) {
		sb.WriteString(fmt.Sprintf("  %s  %s\n",
			StyleStatLabel.Render(fmt.Sprintf("%-16s", k)),
			StyleStatValue.Render(v),
		))
	}

	section("File")
	kv("Path", st.Path)
	kv("Identity", st.ID.String())
	kv("Size", fmt.Sprintf("%d", st.Size))
	kv("Offset", fmt.Sprintf("%d", st.Offset))
	kv("Last status", st.Last.String())

	section("Totals")
	kv("Bytes emitted", fmt.Sprintf("%d", st.Emitted))
	kv("Lines buffered", fmt.Sprintf("%d", lines))
	kv("Rotations", fmt.Sprintf("%d", st.Rotations))
	kv("Truncations", fmt.Sprintf("%d", st.Truncations))

	return StyleOverlayBorder.Render(strings.TrimPrefix(sb.String(), "\n"))
}
