//go:build !windows

package executor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kcaldas/axterm/pkg/logging"
)

func newShellExecutor(t *testing.T, mode Mode) *Executor {
	t.Helper()
	return New(Config{Shell: "/bin/sh", Args: []string{"-c"}, Mode: mode}, logging.NewDisabledLogger())
}

func TestNew_Defaults(t *testing.T) {
	e := New(Config{Shell: "/bin/sh"}, logging.NewDisabledLogger())

	cfg := e.Config()
	assert.Equal(t, []string{"-c"}, cfg.Args)
	assert.Equal(t, DefaultDirQuery, cfg.DirQuery)
	assert.Equal(t, ModePipe, cfg.Mode)
	assert.Zero(t, cfg.Timeout)
}

func TestDefaultArgs(t *testing.T) {
	assert.Equal(t, []string{"-c"}, DefaultArgs("/bin/zsh"))
	assert.Equal(t, []string{"-NoProfile", "-Command"}, DefaultArgs("/usr/bin/pwsh"))
	assert.Equal(t, []string{"/C"}, DefaultArgs("cmd.exe"))
}

func TestUserShell_FallsBackWhenUnset(t *testing.T) {
	t.Setenv("SHELL", "")
	assert.Equal(t, fallbackShell, UserShell())
}

func TestUserShell_RejectsUntrusted(t *testing.T) {
	t.Setenv("SHELL", "/tmp/definitely-not-a-shell")
	assert.Equal(t, fallbackShell, UserShell())
}

func TestExecutor_Run(t *testing.T) {
	for _, mode := range []Mode{ModePipe, ModePTY} {
		t.Run(string(mode), func(t *testing.T) {
			e := newShellExecutor(t, mode)

			output := e.Run(context.Background(), "echo hi", t.TempDir())
			assert.Equal(t, "hi\n", output)
		})
	}
}

func TestExecutor_RunCapturesStderr(t *testing.T) {
	e := newShellExecutor(t, ModePipe)

	output := e.Run(context.Background(), "echo oops 1>&2", t.TempDir())
	assert.Equal(t, "oops\n", output)
}

func TestExecutor_RunUsesWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marker.txt"), []byte("x"), 0644))
	e := newShellExecutor(t, ModePipe)

	output := e.Run(context.Background(), "ls", dir)
	assert.Contains(t, output, "marker.txt")
}

func TestExecutor_RunPassesEnv(t *testing.T) {
	e := New(Config{
		Shell: "/bin/sh",
		Args:  []string{"-c"},
		Env:   map[string]string{"AXTERM_TEST_VALUE": "from-config"},
	}, logging.NewDisabledLogger())

	output := e.Run(context.Background(), "echo $AXTERM_TEST_VALUE", t.TempDir())
	assert.Equal(t, "from-config\n", output)
}

func TestExecutor_RunSubstitutesFailures(t *testing.T) {
	tests := []struct {
		name    string
		shell   string
		command string
		dir     func(t *testing.T) string
	}{
		{"non-zero exit", "/bin/sh", "exit 3", func(t *testing.T) string { return t.TempDir() }},
		{"unknown command", "/bin/sh", "definitely-not-a-command-xyz", func(t *testing.T) string { return t.TempDir() }},
		{"missing interpreter", "/nonexistent/shell", "echo hi", func(t *testing.T) string { return t.TempDir() }},
		{"missing directory", "/bin/sh", "echo hi", func(t *testing.T) string { return filepath.Join(t.TempDir(), "gone") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(Config{Shell: tt.shell, Args: []string{"-c"}}, logging.NewDisabledLogger())

			output := e.Run(context.Background(), tt.command, tt.dir(t))
			assert.Equal(t, "Command '"+tt.command+"' returned non-zero exit status 1", output)
		})
	}
}

func TestExecutor_Timeout(t *testing.T) {
	e := New(Config{Shell: "/bin/sh", Args: []string{"-c"}, Timeout: 50 * time.Millisecond}, logging.NewDisabledLogger())

	start := time.Now()
	_, err := e.Execute(context.Background(), "sleep 5", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestExecutor_Cancelled(t *testing.T) {
	e := newShellExecutor(t, ModePipe)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	output := e.Run(ctx, "echo never", t.TempDir())
	assert.Equal(t, FailureMessage("echo never"), output)
}

func TestExecutor_QueryDirectory(t *testing.T) {
	base, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	child := filepath.Join(base, "child")
	require.NoError(t, os.Mkdir(child, 0755))
	e := newShellExecutor(t, ModePipe)

	t.Run("follows cd", func(t *testing.T) {
		dir, rest, err := e.QueryDirectory(context.Background(), "cd child", base)
		require.NoError(t, err)
		assert.Equal(t, filepath.ToSlash(child), dir)
		assert.Empty(t, rest)
	})

	t.Run("keeps command output", func(t *testing.T) {
		dir, rest, err := e.QueryDirectory(context.Background(), "echo abcd", base)
		require.NoError(t, err)
		assert.Equal(t, filepath.ToSlash(base), dir)
		assert.Equal(t, "abcd", rest)
	})

	t.Run("keeps dashed output lines", func(t *testing.T) {
		dir, rest, err := e.QueryDirectory(context.Background(), "printf 'Summary\\n-------\\n'; cd child", base)
		require.NoError(t, err)
		assert.Equal(t, filepath.ToSlash(child), dir)
		assert.Equal(t, "Summary\n-------", rest)
	})

	t.Run("failed cd still reports directory", func(t *testing.T) {
		// POSIX sh continues after a failed cd in a ';' list.
		dir, _, err := e.QueryDirectory(context.Background(), "cd missing 2>/dev/null", base)
		require.NoError(t, err)
		assert.Equal(t, filepath.ToSlash(base), dir)
	})
}

func TestExecutor_QueryDirectoryWithoutPath(t *testing.T) {
	e := New(Config{Shell: "/bin/sh", Args: []string{"-c"}, DirQuery: ";echo not-a-path"}, logging.NewDisabledLogger())

	dir, rest, err := e.QueryDirectory(context.Background(), "cd .", t.TempDir())
	assert.ErrorIs(t, err, ErrNoDirectory)
	assert.Empty(t, dir)
	assert.Equal(t, "not-a-path", rest)
}

func TestExecutor_QueryDirectoryFailure(t *testing.T) {
	e := New(Config{Shell: "/bin/sh", Args: []string{"-c"}, DirQuery: ";exit 2"}, logging.NewDisabledLogger())

	_, _, err := e.QueryDirectory(context.Background(), "cd /", t.TempDir())
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoDirectory))
}
