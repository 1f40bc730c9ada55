//go:build !windows

package executor

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

const fallbackShell = "bash"

// UserShell returns the user's shell from $SHELL, validated against
// /etc/shells. Falls back to "bash" if $SHELL is unset or untrusted.
func UserShell() string {
	shell := os.Getenv("SHELL")
	if shell == "" {
		return fallbackShell
	}
	if !isTrustedShell(shell) {
		return fallbackShell
	}
	return shell
}

// DefaultArgs returns the flag that makes shell run a single command string.
func DefaultArgs(shell string) []string {
	switch strings.TrimSuffix(filepath.Base(shell), ".exe") {
	case "pwsh", "powershell":
		return []string{"-NoProfile", "-Command"}
	case "cmd":
		return []string{"/C"}
	default:
		return []string{"-c"}
	}
}

// isTrustedShell checks whether the given path appears in /etc/shells.
func isTrustedShell(shell string) bool {
	f, err := os.Open("/etc/shells")
	if err != nil {
		return false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == shell {
			return true
		}
	}
	return false
}
