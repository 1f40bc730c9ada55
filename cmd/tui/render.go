package tui

import (
	"strings"

	"github.com/kcaldas/axterm/pkg/terminal"
)

const (
	cursorGlyph = "_"
	dimStart    = "\x1b[90m"
	colorReset  = "\x1b[0m"
)

// contentLines lays out every session: its prompt line followed by its
// output lines. The row of each line matches SessionView.Top before scrolling.
func contentLines(s terminal.Snapshot) []string {
	var lines []string
	for _, view := range s.Sessions {
		lines = append(lines, promptLine(view))
		lines = append(lines, terminal.OutputLines(view.Output)...)
	}
	return lines
}

// renderLines returns exactly height display rows with the scroll offset
// applied. Rows outside the content are blank.
func renderLines(s terminal.Snapshot, height int) []string {
	content := contentLines(s)
	rows := make([]string, 0, max(height, 0))
	for row := 0; row < height; row++ {
		idx := row - s.Scroll
		if idx >= 0 && idx < len(content) {
			rows = append(rows, content[idx])
		} else {
			rows = append(rows, "")
		}
	}
	return rows
}

func promptLine(view terminal.SessionView) string {
	var b strings.Builder
	b.WriteString(view.Label)
	b.WriteString("> ")
	b.WriteString(view.Text)
	if view.Released {
		return b.String()
	}

	if view.CursorVisible {
		b.WriteString(cursorGlyph)
	} else {
		b.WriteString(" ")
	}
	if rest, ok := strings.CutPrefix(view.Suggestion, view.Text); ok && rest != "" {
		b.WriteString(dimStart)
		b.WriteString(rest)
		b.WriteString(colorReset)
	}
	return b.String()
}

func titleFor(cwd string) string {
	return " axterm: " + cwd + " "
}
