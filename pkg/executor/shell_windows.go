//go:build windows

package executor

import (
	"path/filepath"
	"strings"
)

// UserShell returns "pwsh" on Windows.
func UserShell() string {
	return "pwsh"
}

// DefaultArgs returns the flag that makes shell run a single command string.
func DefaultArgs(shell string) []string {
	switch strings.ToLower(strings.TrimSuffix(filepath.Base(shell), ".exe")) {
	case "pwsh", "powershell":
		return []string{"-NoProfile", "-Command"}
	case "cmd":
		return []string{"/C"}
	default:
		return []string{"-c"}
	}
}
