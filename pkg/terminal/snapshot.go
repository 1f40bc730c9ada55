package terminal

import (
	"path"
	"strings"
)

// SessionView is the render state of one prompt session. Top is its first
// display row after scrolling; Height counts the prompt line plus output lines.
// Label is the prompt's directory label, frozen once the session is released.
type SessionView struct {
	ID            string
	Label         string
	Text          string
	Suggestion    string
	Output        string
	HasOutput     bool
	Released      bool
	Focused       bool
	CursorVisible bool
	Top           int
	Height        int
}

// Snapshot is everything a presentation layer needs to draw one frame.
type Snapshot struct {
	Sessions []SessionView
	Cwd      string
	CwdLabel string
	Scroll   int
	State    State
	Width    int
	Height   int
}

// Snapshot builds the current view model.
func (c *Controller) Snapshot() Snapshot {
	views := make([]SessionView, 0, len(c.sessions))
	row := c.scroll
	for _, s := range c.sessions {
		output, hasOutput := s.Output()
		label := CwdLabel(c.cwd)
		if s.Released() {
			label = CwdLabel(s.Dir())
		}
		view := SessionView{
			ID:            s.ID(),
			Label:         label,
			Text:          s.Text(),
			Suggestion:    s.Suggestion(),
			Output:        output,
			HasOutput:     hasOutput,
			Released:      s.Released(),
			Focused:       s.Focused(),
			CursorVisible: s.CursorVisible(),
			Top:           row,
			Height:        1 + len(OutputLines(output)),
		}
		views = append(views, view)
		row += view.Height
	}

	return Snapshot{
		Sessions: views,
		Cwd:      c.cwd,
		CwdLabel: CwdLabel(c.cwd),
		Scroll:   c.scroll,
		State:    c.state,
		Width:    c.width,
		Height:   c.height,
	}
}

// OutputLines splits output for display, dropping the trailing newline.
// Empty output has no lines.
func OutputLines(output string) []string {
	output = strings.TrimRight(output, "\n")
	if output == "" {
		return nil
	}
	return strings.Split(output, "\n")
}

// CwdLabel is the last element of a normalized directory, shown in the prompt.
func CwdLabel(dir string) string {
	if dir == "" {
		return ""
	}
	return path.Base(dir)
}
