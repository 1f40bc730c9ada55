//go:build windows

package executor

import (
	"errors"
	"os/exec"
)

// runPTY is unavailable on Windows; callers fall back to pipes.
func runPTY(cmd *exec.Cmd) (output []byte, started bool, err error) {
	return nil, false, errors.New("pty capture is not supported on windows")
}
