package tui

import (
	"strings"

	"github.com/awesome-gocui/gocui"
	"github.com/gdamore/tcell/v2"

	"github.com/kcaldas/axterm/pkg/input"
)

// promptEditor turns keys typed into the terminal view into input events.
type promptEditor struct {
	app *App
}

func (e *promptEditor) Edit(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) {
	// Rune keybindings never fire on an editable view, so Alt+C lands here.
	if ch == 'c' && mod&gocui.Modifier(tcell.ModAlt) != 0 {
		_ = e.app.copyLastOutput()
		return
	}
	if key == gocui.KeyCtrlV {
		e.app.paste()
		return
	}
	if events := translateKey(key, ch, mod); len(events) > 0 {
		e.app.enqueue(events...)
	}
}

// pasteEvents turns clipboard text into a single line of typed text.
func pasteEvents(text string) []input.Event {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimRight(text, "\n")
	text = strings.ReplaceAll(text, "\n", " ")
	if text == "" {
		return nil
	}
	return []input.Event{input.TextEvent(text)}
}

// translateKey maps a terminal key press to engine events. Terminals report
// presses only, so Enter and Backspace are sent as a press and release pair.
func translateKey(key gocui.Key, ch rune, mod gocui.Modifier) []input.Event {
	if mod&gocui.Modifier(tcell.ModCtrl) != 0 {
		switch key {
		case gocui.KeyArrowUp:
			return []input.Event{input.Scroll(1)}
		case gocui.KeyArrowDown:
			return []input.Event{input.Scroll(-1)}
		}
	}

	switch key {
	case gocui.KeyEnter:
		return input.Tap(input.KeyEnter)
	case gocui.KeyBackspace, gocui.KeyBackspace2:
		return input.Tap(input.KeyBackspace)
	case gocui.KeyTab:
		return []input.Event{input.Press(input.KeyTab)}
	case gocui.KeyArrowRight:
		return []input.Event{input.Press(input.KeyRight)}
	case gocui.KeyArrowUp:
		return []input.Event{input.Press(input.KeyUp)}
	case gocui.KeyArrowDown:
		return []input.Event{input.Press(input.KeyDown)}
	case gocui.KeyCtrlX:
		return []input.Event{input.Press(input.KeyClearLine)}
	case gocui.KeyCtrlG:
		return []input.Event{input.Press(input.KeyScrollReset)}
	case gocui.KeySpace:
		return []input.Event{input.TextEvent(" ")}
	}

	if ch != 0 && mod&gocui.Modifier(tcell.ModAlt) == 0 {
		return []input.Event{input.TextEvent(string(ch))}
	}
	return nil
}
