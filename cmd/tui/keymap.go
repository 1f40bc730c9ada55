package tui

import (
	"github.com/awesome-gocui/gocui"
)

// KeymapEntry represents a single keybinding in the keymap
type KeymapEntry struct {
	View        string         // View the binding applies to, "" for global
	Key         interface{}    // gocui.Key or rune
	Mod         gocui.Modifier // Key modifier (Ctrl, Alt, etc.)
	Action      func() error   // What to do
	Description string         // Human-readable description
}

// Keymap manages the application's keybindings
type Keymap struct {
	entries []KeymapEntry
}

// NewKeymap creates a new empty keymap
func NewKeymap() *Keymap {
	return &Keymap{
		entries: make([]KeymapEntry, 0),
	}
}

// AddEntry adds a new keybinding entry to the keymap
func (k *Keymap) AddEntry(entry KeymapEntry) {
	k.entries = append(k.entries, entry)
}

// GetEntries returns all keymap entries
func (k *Keymap) GetEntries() []KeymapEntry {
	return k.entries
}

// Bind registers every entry with g.
func (k *Keymap) Bind(g *gocui.Gui) error {
	for _, entry := range k.entries {
		action := entry.Action
		handler := func(*gocui.Gui, *gocui.View) error {
			return action()
		}
		if err := g.SetKeybinding(entry.View, entry.Key, entry.Mod, handler); err != nil {
			return err
		}
	}
	return nil
}
