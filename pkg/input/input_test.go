package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLine(t *testing.T) {
	assert.Equal(t, []Event{
		{Kind: Text, Text: "ls"},
		{Kind: KeyPress, Key: KeyEnter},
		{Kind: KeyRelease, Key: KeyEnter},
	}, Line("ls"))

	assert.Equal(t, Tap(KeyEnter), Line(""))
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, Event{Kind: Click, Row: 3, Col: 7}, ClickAt(3, 7))
	assert.Equal(t, Event{Kind: Wheel, Delta: -1}, Scroll(-1))
	assert.Equal(t, Event{Kind: Resize, Width: 80, Height: 24}, ResizeTo(80, 24))
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "enter", KeyEnter.String())
	assert.Equal(t, "scroll-reset", KeyScrollReset.String())
	assert.Equal(t, "unknown", Key(99).String())
}

func TestPressAndRelease_ArrowKeys(t *testing.T) {
	assert.Equal(t, Event{Kind: KeyPress, Key: KeyUp}, Press(KeyUp))
	assert.Equal(t, Event{Kind: KeyRelease, Key: KeyDown}, Release(KeyDown))
	assert.Equal(t, "up", KeyUp.String())
}
