// Package input defines the events a presentation layer feeds into the
// terminal engine once per tick.
package input

import "time"

// Key identifies a non-character key.
type Key int

const (
	KeyNone Key = iota
	KeyEnter
	KeyBackspace
	KeyTab
	KeyRight
	KeyUp
	KeyDown
	// KeyClearLine empties the input buffer (Ctrl+X).
	KeyClearLine
	// KeyScrollReset returns the scroll offset to zero (Ctrl+G).
	KeyScrollReset
)

var keyNames = map[Key]string{
	KeyNone:        "none",
	KeyEnter:       "enter",
	KeyBackspace:   "backspace",
	KeyTab:         "tab",
	KeyRight:       "right",
	KeyUp:          "up",
	KeyDown:        "down",
	KeyClearLine:   "clear-line",
	KeyScrollReset: "scroll-reset",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// Kind is the type of an Event.
type Kind int

const (
	// Text carries typed characters.
	Text Kind = iota
	KeyPress
	KeyRelease
	// Click is a mouse button press at a display row.
	Click
	// Wheel is a mouse wheel movement; positive Delta scrolls up.
	Wheel
	Resize
)

// Event is one input occurrence. Only the fields relevant to Kind are set.
type Event struct {
	Kind  Kind
	Text  string
	Key   Key
	Row   int
	Col   int
	Delta int
	Width int
	// Height is the new window height for Resize.
	Height int
}

// Frame is everything that happened during one tick.
type Frame struct {
	Events  []Event
	Elapsed time.Duration
}

// TextEvent returns a Text event.
func TextEvent(text string) Event {
	return Event{Kind: Text, Text: text}
}

// Press returns a KeyPress event.
func Press(key Key) Event {
	return Event{Kind: KeyPress, Key: key}
}

// Release returns a KeyRelease event.
func Release(key Key) Event {
	return Event{Kind: KeyRelease, Key: key}
}

// Tap returns a KeyPress immediately followed by a KeyRelease, for frontends that
// only report key presses.
func Tap(key Key) []Event {
	return []Event{Press(key), Release(key)}
}

// ClickAt returns a Click event at the given display position.
func ClickAt(row, col int) Event {
	return Event{Kind: Click, Row: row, Col: col}
}

// Scroll returns a Wheel event.
func Scroll(delta int) Event {
	return Event{Kind: Wheel, Delta: delta}
}

// ResizeTo returns a Resize event.
func ResizeTo(width, height int) Event {
	return Event{Kind: Resize, Width: width, Height: height}
}

// Line returns the events for typing text and pressing Enter.
func Line(text string) []Event {
	events := make([]Event, 0, 3)
	if text != "" {
		events = append(events, TextEvent(text))
	}
	return append(events, Tap(KeyEnter)...)
}
