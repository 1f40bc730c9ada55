//go:build !windows

package executor

import (
	"bytes"
	"io"
	"os/exec"

	"github.com/creack/pty"
)

// runPTY runs cmd on a new pseudo-terminal and returns everything it printed.
// started is false when the PTY or the process could not be started; the
// caller should then fall back to pipes with a fresh command.
func runPTY(cmd *exec.Cmd) (output []byte, started bool, err error) {
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: 24, Cols: 200})
	if err != nil {
		return nil, false, err
	}
	defer ptmx.Close()

	var buf bytes.Buffer
	// Reading the master returns EIO once the child side closes.
	_, _ = io.Copy(&buf, ptmx)
	err = cmd.Wait()

	return bytes.ReplaceAll(buf.Bytes(), []byte("\r\n"), []byte("\n")), true, err
}
