package prompt

import (
	"context"
	"errors"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/kcaldas/axterm/pkg/executor"
)

const (
	DefaultRepeatInterval = 100 * time.Millisecond
	DefaultBlinkInterval  = 500 * time.Millisecond
)

// ErrReleased is returned when submitting a session that was already submitted.
var ErrReleased = errors.New("prompt already released")

// Runner runs a command in dir and returns its output. Implementations report
// failures through the returned text.
type Runner interface {
	Run(ctx context.Context, command, dir string) string
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, command, dir string) string

func (f RunnerFunc) Run(ctx context.Context, command, dir string) string {
	return f(ctx, command, dir)
}

// Matcher suggests a completion for the current input.
type Matcher interface {
	Suggest(input string) string
}

// Options configures a Session.
type Options struct {
	RepeatInterval time.Duration
	BlinkInterval  time.Duration
	Matcher        Matcher
}

// Session is one input/output unit: an editable buffer that becomes an
// immutable command with captured output once released.
type Session struct {
	id       string
	buffer   []rune
	released bool
	command  string
	output   string
	dir      string

	focused       bool
	cursorVisible bool
	deleting      bool

	repeat  *Timer
	blink   *Timer
	matcher Matcher
}

// New creates a focused, unreleased session.
func New(opts Options) *Session {
	if opts.RepeatInterval <= 0 {
		opts.RepeatInterval = DefaultRepeatInterval
	}
	if opts.BlinkInterval <= 0 {
		opts.BlinkInterval = DefaultBlinkInterval
	}
	return &Session{
		id:            uuid.NewString(),
		focused:       true,
		cursorVisible: true,
		repeat:        NewTimer(opts.RepeatInterval),
		blink:         NewTimer(opts.BlinkInterval),
		matcher:       opts.Matcher,
	}
}

func (s *Session) ID() string { return s.id }

// Text returns the current buffer contents.
func (s *Session) Text() string { return string(s.buffer) }

func (s *Session) Released() bool { return s.released }

// Command returns the text frozen at release, or "" before release.
func (s *Session) Command() string { return s.command }

// Dir returns the directory the command ran in, or "" before release.
func (s *Session) Dir() string { return s.dir }

// Output returns the sanitized captured output; ok is false before release.
func (s *Session) Output() (output string, ok bool) {
	return s.output, s.released
}

func (s *Session) Focused() bool       { return s.focused }
func (s *Session) CursorVisible() bool { return s.cursorVisible }

// Deleting reports whether backspace is being held.
func (s *Session) Deleting() bool { return s.deleting }

// AppendText appends typed characters, skipping control characters. Typing
// focuses the session and shows the cursor.
func (s *Session) AppendText(text string) {
	if s.released {
		return
	}
	for _, r := range text {
		if unicode.IsControl(r) {
			continue
		}
		s.buffer = append(s.buffer, r)
	}
	s.focused = true
	s.cursorVisible = true
}

// Backspace removes the last character. It reports whether one was removed.
func (s *Session) Backspace() bool {
	if s.released || len(s.buffer) == 0 {
		return false
	}
	s.buffer = s.buffer[:len(s.buffer)-1]
	return true
}

// PressBackspace deletes once and starts key repeat.
func (s *Session) PressBackspace() {
	if s.released {
		return
	}
	s.Backspace()
	s.deleting = true
	s.repeat.Reset()
}

// ReleaseBackspace stops key repeat.
func (s *Session) ReleaseBackspace() {
	s.deleting = false
}

// ClearLine empties the buffer.
func (s *Session) ClearLine() {
	if s.released {
		return
	}
	s.buffer = s.buffer[:0]
}

// SetBuffer replaces the buffer contents.
func (s *Session) SetBuffer(text string) {
	if s.released {
		return
	}
	s.buffer = []rune(text)
}

// Suggestion returns the matcher's completion for the current buffer, or ""
// when the buffer is empty, the session is released or nothing matches.
func (s *Session) Suggestion() string {
	if s.released || len(s.buffer) == 0 || s.matcher == nil {
		return ""
	}
	return s.matcher.Suggest(s.Text())
}

// AcceptSuggestion replaces the buffer with the current suggestion, if any.
func (s *Session) AcceptSuggestion() bool {
	suggestion := s.Suggestion()
	if suggestion == "" {
		return false
	}
	s.SetBuffer(suggestion)
	return true
}

// SetFocus updates input focus. Released sessions never regain focus.
func (s *Session) SetFocus(focused bool) {
	if s.released {
		return
	}
	s.focused = focused
	if !focused {
		s.cursorVisible = false
	}
}

// Tick advances the key-repeat and cursor-blink timers by elapsed frame time.
func (s *Session) Tick(elapsed time.Duration) {
	if s.released {
		return
	}

	if s.deleting {
		s.cursorVisible = true
		for n := s.repeat.Advance(elapsed); n > 0; n-- {
			s.Backspace()
		}
	}

	if !s.focused {
		s.cursorVisible = false
		return
	}
	if s.blink.Advance(elapsed)%2 == 1 {
		s.cursorVisible = !s.cursorVisible
	}
}

// Submit freezes the buffer as the command, runs it through runner in dir and
// stores the sanitized result as output. It blocks until runner returns.
func (s *Session) Submit(ctx context.Context, runner Runner, dir string) error {
	if s.released {
		return ErrReleased
	}

	s.command = s.Text()
	s.dir = dir
	s.output = executor.Sanitize(runner.Run(ctx, s.command, dir))
	s.released = true
	s.focused = false
	s.cursorVisible = false
	s.deleting = false
	return nil
}
