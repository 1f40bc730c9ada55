package tui

import (
	"testing"

	"github.com/awesome-gocui/gocui"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/kcaldas/axterm/pkg/input"
)

func TestPasteEvents(t *testing.T) {
	assert.Equal(t, []input.Event{input.TextEvent("ls -la")}, pasteEvents("ls -la"))
	assert.Equal(t, []input.Event{input.TextEvent("echo a echo b")}, pasteEvents("echo a\r\necho b\n"))
	assert.Nil(t, pasteEvents(""))
	assert.Nil(t, pasteEvents("\n"))
}

func TestTranslateKey(t *testing.T) {
	ctrl := gocui.Modifier(tcell.ModCtrl)
	alt := gocui.Modifier(tcell.ModAlt)

	tests := []struct {
		name string
		key  gocui.Key
		ch   rune
		mod  gocui.Modifier
		want []input.Event
	}{
		{"enter taps", gocui.KeyEnter, 0, gocui.ModNone, input.Tap(input.KeyEnter)},
		{"backspace taps", gocui.KeyBackspace, 0, gocui.ModNone, input.Tap(input.KeyBackspace)},
		{"backspace2 taps", gocui.KeyBackspace2, 0, gocui.ModNone, input.Tap(input.KeyBackspace)},
		{"tab", gocui.KeyTab, 0, gocui.ModNone, []input.Event{input.Press(input.KeyTab)}},
		{"right", gocui.KeyArrowRight, 0, gocui.ModNone, []input.Event{input.Press(input.KeyRight)}},
		{"up", gocui.KeyArrowUp, 0, gocui.ModNone, []input.Event{input.Press(input.KeyUp)}},
		{"down", gocui.KeyArrowDown, 0, gocui.ModNone, []input.Event{input.Press(input.KeyDown)}},
		{"ctrl+x clears the line", gocui.KeyCtrlX, 0, gocui.ModNone, []input.Event{input.Press(input.KeyClearLine)}},
		{"ctrl+g resets scroll", gocui.KeyCtrlG, 0, gocui.ModNone, []input.Event{input.Press(input.KeyScrollReset)}},
		{"space", gocui.KeySpace, ' ', gocui.ModNone, []input.Event{input.TextEvent(" ")}},
		{"rune", 0, 'a', gocui.ModNone, []input.Event{input.TextEvent("a")}},
		{"unicode rune", 0, 'é', gocui.ModNone, []input.Event{input.TextEvent("é")}},
		{"ctrl+up scrolls", gocui.KeyArrowUp, 0, ctrl, []input.Event{input.Scroll(1)}},
		{"ctrl+down scrolls", gocui.KeyArrowDown, 0, ctrl, []input.Event{input.Scroll(-1)}},
		{"alt rune ignored", 0, 'x', alt, nil},
		{"left is not mapped", gocui.KeyArrowLeft, 0, gocui.ModNone, nil},
		{"unmapped key ignored", gocui.KeyF5, 0, gocui.ModNone, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, translateKey(tt.key, tt.ch, tt.mod))
		})
	}
}
