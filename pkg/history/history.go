package history

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// DefaultLimit is the number of commands kept in history.
const DefaultLimit = 50

// Store is an ordered, capped log of submitted commands with a cyclic
// navigation cursor.
type Store interface {
	Add(command string)
	Entries() []string
	Len() int
	Prev() (string, bool)
	Next() (string, bool)
	Cursor() int
	ResetCursor()
	Load() error
	Save() error
}

// FileStore implements Store on top of a newline-delimited file, oldest first.
// It is not safe for concurrent use.
type FileStore struct {
	filePath string
	entries  []string
	limit    int
	cursor   int
}

// NewFileStore creates a history store backed by filePath. A non-positive limit
// selects DefaultLimit.
func NewFileStore(filePath string, limit int) *FileStore {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &FileStore{
		filePath: filePath,
		entries:  make([]string, 0, limit),
		limit:    limit,
	}
}

// Path returns the backing file path.
func (h *FileStore) Path() string {
	return h.filePath
}

// Limit returns the maximum number of entries kept.
func (h *FileStore) Limit() int {
	return h.limit
}

// Add appends a command, dropping the oldest entries past the limit, and moves
// the cursor one past the newest entry. Blank commands are ignored.
func (h *FileStore) Add(command string) {
	if strings.TrimSpace(command) == "" {
		return
	}
	// One command per line in the backing file.
	command = strings.ReplaceAll(command, "\n", " ")

	h.entries = append(h.entries, command)
	h.trim()
	h.ResetCursor()
}

// Entries returns a copy of the history, oldest first.
func (h *FileStore) Entries() []string {
	result := make([]string, len(h.entries))
	copy(result, h.entries)
	return result
}

// Len returns the number of entries.
func (h *FileStore) Len() int {
	return len(h.entries)
}

// Cursor returns the current navigation index. It equals Len() right after Add.
func (h *FileStore) Cursor() int {
	return h.cursor
}

// ResetCursor moves the cursor one past the newest entry so that Prev yields it.
func (h *FileStore) ResetCursor() {
	h.cursor = len(h.entries)
}

// Prev moves the cursor towards older entries, wrapping from the oldest to the
// newest, and returns the entry under it.
func (h *FileStore) Prev() (string, bool) {
	return h.move(-1)
}

// Next moves the cursor towards newer entries, wrapping from the newest to the
// oldest, and returns the entry under it.
func (h *FileStore) Next() (string, bool) {
	return h.move(1)
}

func (h *FileStore) move(step int) (string, bool) {
	n := len(h.entries)
	if n == 0 {
		return "", false
	}

	next := h.cursor + step
	if next >= n {
		next = 0
	}
	if next < 0 {
		next = n - 1
	}
	h.cursor = next
	return h.entries[h.cursor], true
}

// Load replaces the in-memory history with the file contents. A missing file
// yields an empty history and no error. On a read failure the history is left
// empty and the error is returned so the caller can report it. After loading,
// the cursor rests on the newest entry.
func (h *FileStore) Load() error {
	h.entries = h.entries[:0]
	h.cursor = 0

	file, err := os.Open(h.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer file.Close()

	var loaded []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || !utf8.ValidString(line) || strings.ContainsRune(line, 0) {
			continue
		}
		loaded = append(loaded, line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read history file: %w", err)
	}

	h.entries = append(h.entries, loaded...)
	h.trim()
	if len(h.entries) > 0 {
		h.cursor = len(h.entries) - 1
	}
	return nil
}

// Save writes the history to its file, replacing the previous contents atomically.
func (h *FileStore) Save() error {
	h.trim()

	dir := filepath.Dir(h.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".history-*")
	if err != nil {
		return fmt.Errorf("failed to create history file: %w", err)
	}
	defer os.Remove(tmp.Name())

	writer := bufio.NewWriter(tmp)
	for _, command := range h.entries {
		if _, err := fmt.Fprintln(writer, command); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write command to history file: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write history file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close history file: %w", err)
	}
	if err := os.Rename(tmp.Name(), h.filePath); err != nil {
		return fmt.Errorf("failed to replace history file: %w", err)
	}
	return nil
}

func (h *FileStore) trim() {
	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = append(h.entries[:0], h.entries[over:]...)
	}
}
