package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kcaldas/axterm/pkg/config"
)

func resetFlags() {
	workingDir, shellPath, historyFile, configPath = "", "", "", ""
	usePTY, plainMode, verbose, quiet = false, false, false, false
}

func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)
	cmd := &cobra.Command{Use: "test"}
	registerFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	return home
}

func TestLoadSettings_Defaults(t *testing.T) {
	home := isolateHome(t)
	cmd := newTestCommand(t, "--cwd", t.TempDir())

	s, err := loadSettings(cmd)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".axterm", "command-history.txt"), s.HistoryFile)
	assert.False(t, s.PTY)
	assert.Equal(t, 50, s.HistoryLimit)
}

func TestLoadSettings_FlagsOverrideFileAndEnv(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("shell: /bin/zsh\nshell_args: [\"-l\", \"-c\"]\nhistory_limit: 5\n"), 0644))
	t.Setenv(config.EnvHistoryFile, filepath.Join(dir, "env-history"))

	cmd := newTestCommand(t,
		"--config", configFile,
		"--cwd", dir,
		"--shell", "/bin/sh",
		"--history-file", filepath.Join(dir, "flag-history"),
		"--pty",
	)

	s, err := loadSettings(cmd)
	require.NoError(t, err)

	assert.Equal(t, "/bin/sh", s.Shell)
	assert.Nil(t, s.ShellArgs, "a new shell gets its own default arguments")
	assert.Equal(t, filepath.Join(dir, "flag-history"), s.HistoryFile)
	assert.Equal(t, dir, s.StartDir)
	assert.True(t, s.PTY)
	assert.Equal(t, 5, s.HistoryLimit)
}

func TestLoadSettings_EnvWithoutFlags(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	t.Setenv(config.EnvHistoryFile, filepath.Join(dir, "env-history"))

	cmd := newTestCommand(t, "--cwd", dir)
	s, err := loadSettings(cmd)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "env-history"), s.HistoryFile)
}

func TestLoadSettings_MissingConfigFile(t *testing.T) {
	isolateHome(t)
	cmd := newTestCommand(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := loadSettings(cmd)
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	resetFlags()
	defer resetFlags()

	assert.NotNil(t, newLogger())
	quiet = true
	assert.NotNil(t, newLogger())
	quiet, verbose = false, true
	assert.NotNil(t, newLogger())
}
