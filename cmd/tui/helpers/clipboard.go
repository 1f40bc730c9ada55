package helpers

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnsupported is returned when no clipboard utility is available.
var ErrClipboardUnsupported = errors.New("clipboard not supported on this system")

// Clipboard copies command output to the system clipboard.
type Clipboard struct{}

func NewClipboard() *Clipboard {
	return &Clipboard{}
}

// WriteAll replaces the clipboard contents with text.
func (h *Clipboard) WriteAll(text string) error {
	if !h.IsAvailable() {
		return ErrClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}

func (h *Clipboard) Paste() (string, error) {
	if !h.IsAvailable() {
		return "", ErrClipboardUnsupported
	}
	return clipboard.ReadAll()
}

// IsAvailable reports whether a clipboard utility was found at startup.
func (h *Clipboard) IsAvailable() bool {
	return !clipboard.Unsupported
}
