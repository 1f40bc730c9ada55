package prompt

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticMatcher map[string]string

func (m staticMatcher) Suggest(input string) string {
	return m[input]
}

func echoRunner(calls *[]string) Runner {
	return RunnerFunc(func(ctx context.Context, command, dir string) string {
		*calls = append(*calls, dir+"|"+command)
		return strings.TrimPrefix(command, "echo ") + "\n"
	})
}

func TestTimer_Advance(t *testing.T) {
	timer := NewTimer(100 * time.Millisecond)

	assert.Equal(t, 0, timer.Advance(60*time.Millisecond))
	assert.Equal(t, 1, timer.Advance(60*time.Millisecond))
	assert.Equal(t, 2, timer.Advance(180*time.Millisecond))

	timer.Reset()
	assert.Equal(t, 0, timer.Advance(99*time.Millisecond))
	assert.Equal(t, 0, NewTimer(0).Advance(time.Second))
}

func TestSession_New(t *testing.T) {
	s := New(Options{})

	assert.NotEmpty(t, s.ID())
	assert.NotEqual(t, s.ID(), New(Options{}).ID())
	assert.True(t, s.Focused())
	assert.True(t, s.CursorVisible())
	assert.False(t, s.Released())
	_, ok := s.Output()
	assert.False(t, ok)
}

func TestSession_Editing(t *testing.T) {
	s := New(Options{})

	s.AppendText("ls -la")
	assert.Equal(t, "ls -la", s.Text())

	assert.True(t, s.Backspace())
	assert.Equal(t, "ls -l", s.Text())

	s.ClearLine()
	assert.Empty(t, s.Text())
	assert.False(t, s.Backspace())

	s.SetBuffer("héllo")
	assert.True(t, s.Backspace())
	assert.Equal(t, "héll", s.Text())
}

func TestSession_AppendTextSkipsControlCharacters(t *testing.T) {
	s := New(Options{})

	s.AppendText("a\tb\r\nc\x1b")
	assert.Equal(t, "abc", s.Text())
}

func TestSession_Submit(t *testing.T) {
	var calls []string
	s := New(Options{})
	s.AppendText("echo hi")

	require.NoError(t, s.Submit(context.Background(), echoRunner(&calls), "/work"))

	assert.True(t, s.Released())
	assert.Equal(t, "echo hi", s.Command())
	assert.Equal(t, "/work", s.Dir())
	output, ok := s.Output()
	assert.True(t, ok)
	assert.Equal(t, "hi\n", output)
	assert.Equal(t, []string{"/work|echo hi"}, calls)
	assert.False(t, s.Focused())
}

func TestSession_SubmitSanitizesOutput(t *testing.T) {
	s := New(Options{})
	s.AppendText("color")

	runner := RunnerFunc(func(ctx context.Context, command, dir string) string {
		return "\x1b[31mred\x1b[0m\x1b[K"
	})
	require.NoError(t, s.Submit(context.Background(), runner, "/"))

	output, _ := s.Output()
	assert.Equal(t, "red", output)
}

func TestSession_ReleasedIsImmutable(t *testing.T) {
	var calls []string
	s := New(Options{})
	s.AppendText("echo a")
	require.NoError(t, s.Submit(context.Background(), echoRunner(&calls), "/"))

	s.AppendText("more")
	s.SetBuffer("other")
	s.ClearLine()
	s.PressBackspace()
	s.SetFocus(true)

	assert.Equal(t, "echo a", s.Text())
	assert.Equal(t, "echo a", s.Command())
	assert.False(t, s.Focused())
	assert.False(t, s.Deleting())

	err := s.Submit(context.Background(), echoRunner(&calls), "/")
	assert.ErrorIs(t, err, ErrReleased)
	assert.Len(t, calls, 1)
}

func TestSession_BackspaceRepeat(t *testing.T) {
	s := New(Options{})
	s.AppendText("abcdef")

	s.PressBackspace()
	assert.Equal(t, "abcde", s.Text())
	assert.True(t, s.Deleting())

	s.Tick(50 * time.Millisecond)
	assert.Equal(t, "abcde", s.Text())

	s.Tick(50 * time.Millisecond)
	assert.Equal(t, "abcd", s.Text())

	s.Tick(200 * time.Millisecond)
	assert.Equal(t, "ab", s.Text())

	s.ReleaseBackspace()
	s.Tick(time.Second)
	assert.Equal(t, "ab", s.Text())
	assert.False(t, s.Deleting())
}

func TestSession_PressBackspaceRestartsRepeat(t *testing.T) {
	s := New(Options{RepeatInterval: 100 * time.Millisecond})
	s.AppendText("abcd")

	s.PressBackspace()
	s.Tick(90 * time.Millisecond)
	s.ReleaseBackspace()

	s.PressBackspace()
	s.Tick(90 * time.Millisecond)
	assert.Equal(t, "ab", s.Text())
}

func TestSession_CursorBlink(t *testing.T) {
	s := New(Options{BlinkInterval: 500 * time.Millisecond})
	require.True(t, s.CursorVisible())

	s.Tick(400 * time.Millisecond)
	assert.True(t, s.CursorVisible())

	s.Tick(100 * time.Millisecond)
	assert.False(t, s.CursorVisible())

	s.Tick(500 * time.Millisecond)
	assert.True(t, s.CursorVisible())

	s.Tick(time.Second)
	assert.True(t, s.CursorVisible(), "two periods toggle twice")
}

func TestSession_Focus(t *testing.T) {
	s := New(Options{})

	s.SetFocus(false)
	assert.False(t, s.Focused())
	assert.False(t, s.CursorVisible())

	s.Tick(time.Second)
	assert.False(t, s.CursorVisible())

	s.AppendText("x")
	assert.True(t, s.Focused())
	assert.True(t, s.CursorVisible())
}

func TestSession_Suggestion(t *testing.T) {
	matcher := staticMatcher{"ls": "ls -la"}

	t.Run("empty buffer", func(t *testing.T) {
		s := New(Options{Matcher: matcher})
		assert.Empty(t, s.Suggestion())
		assert.False(t, s.AcceptSuggestion())
	})

	t.Run("match", func(t *testing.T) {
		s := New(Options{Matcher: matcher})
		s.AppendText("ls")
		assert.Equal(t, "ls -la", s.Suggestion())

		assert.True(t, s.AcceptSuggestion())
		assert.Equal(t, "ls -la", s.Text())
	})

	t.Run("no match", func(t *testing.T) {
		s := New(Options{Matcher: matcher})
		s.AppendText("cat")
		assert.Empty(t, s.Suggestion())
		assert.False(t, s.AcceptSuggestion())
		assert.Equal(t, "cat", s.Text())
	})

	t.Run("no matcher", func(t *testing.T) {
		s := New(Options{})
		s.AppendText("ls")
		assert.Empty(t, s.Suggestion())
	})
}
