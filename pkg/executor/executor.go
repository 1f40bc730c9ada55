package executor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"time"

	"github.com/kcaldas/axterm/pkg/logging"
)

// Mode selects how command output is captured.
type Mode string

const (
	// ModePipe captures combined stdout and stderr through pipes.
	ModePipe Mode = "pipe"
	// ModePTY runs the command on a pseudo-terminal and captures what it prints.
	ModePTY Mode = "pty"
)

// DefaultDirQuery is appended to a directory-changing command to print the resulting directory.
const DefaultDirQuery = ";pwd"

const waitDelay = time.Second

// ErrNoDirectory is returned by QueryDirectory when the interpreter output has no usable path.
var ErrNoDirectory = errors.New("no directory in interpreter output")

// Config describes the external interpreter.
type Config struct {
	// Shell is the interpreter executable. Defaults to UserShell().
	Shell string
	// Args precede the command text, e.g. ["-c"] or ["-Command"]. Defaults to DefaultArgs(Shell).
	Args []string
	// DirQuery is appended to directory-changing commands. Defaults to DefaultDirQuery.
	DirQuery string
	// Mode defaults to ModePipe.
	Mode Mode
	// Timeout bounds each invocation. Zero means no limit.
	Timeout time.Duration
	// Env is added to the inherited process environment.
	Env map[string]string
}

// Executor invokes the configured interpreter once per command.
type Executor struct {
	config Config
	logger logging.Logger
}

// New creates an executor, filling unset config fields with defaults.
func New(config Config, logger logging.Logger) *Executor {
	if config.Shell == "" {
		config.Shell = UserShell()
	}
	if config.Args == nil {
		config.Args = DefaultArgs(config.Shell)
	}
	if config.DirQuery == "" {
		config.DirQuery = DefaultDirQuery
	}
	if config.Mode == "" {
		config.Mode = ModePipe
	}
	if logger == nil {
		logger = logging.NewComponentLogger("executor")
	}
	return &Executor{config: config, logger: logger}
}

// Config returns the effective configuration.
func (e *Executor) Config() Config {
	return e.config
}

// FailureMessage is the output substituted for a command that could not be run
// or exited unsuccessfully.
func FailureMessage(command string) string {
	return fmt.Sprintf("Command '%s' returned non-zero exit status 1", command)
}

// Run executes command in dir and returns its captured output. It never fails:
// any invocation error is logged and replaced by FailureMessage(command).
// Run blocks until the interpreter exits or ctx is done.
func (e *Executor) Run(ctx context.Context, command, dir string) string {
	output, err := e.Execute(ctx, command, dir)
	if err != nil {
		e.logger.Debug("command failed", "command", command, "dir", dir, "error", err)
		return FailureMessage(command)
	}
	return output
}

// Execute runs command in dir and returns the raw captured output along with
// any spawn, exit or cancellation error.
func (e *Executor) Execute(ctx context.Context, command, dir string) (string, error) {
	if e.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.Timeout)
		defer cancel()
	}

	start := time.Now()
	var (
		output []byte
		err    error
	)
	if e.config.Mode == ModePTY {
		var started bool
		output, started, err = runPTY(e.command(ctx, command, dir))
		if !started {
			e.logger.Warn("PTY allocation failed, falling back to pipes", "error", err)
			output, err = e.command(ctx, command, dir).CombinedOutput()
		}
	} else {
		output, err = e.command(ctx, command, dir).CombinedOutput()
	}
	e.logger.Debug("command finished", "command", command, "dir", dir, "mode", e.config.Mode, "duration", time.Since(start))

	if ctxErr := ctx.Err(); ctxErr != nil {
		return string(output), fmt.Errorf("command %q interrupted: %w", command, ctxErr)
	}
	if err != nil {
		return string(output), fmt.Errorf("command %q: %w", command, err)
	}
	return string(output), nil
}

// QueryDirectory runs command followed by the directory query and returns the
// directory the interpreter ended up in, plus the command's own sanitized
// output with the directory line removed.
func (e *Executor) QueryDirectory(ctx context.Context, command, dir string) (string, string, error) {
	raw, err := e.Execute(ctx, command+e.config.DirQuery, dir)
	if err != nil {
		return "", "", err
	}

	newDir, rest, ok := SplitDirectory(Sanitize(raw))
	if !ok {
		return "", rest, ErrNoDirectory
	}
	return newDir, rest, nil
}

func (e *Executor) command(ctx context.Context, command, dir string) *exec.Cmd {
	args := append(append([]string{}, e.config.Args...), command)
	cmd := exec.CommandContext(ctx, e.config.Shell, args...)
	cmd.Dir = dir
	cmd.Env = os.Environ()
	// Grandchildren can hold the output pipes open after a cancelled shell is killed.
	cmd.WaitDelay = waitDelay

	keys := make([]string, 0, len(e.config.Env))
	for key := range e.config.Env {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		cmd.Env = append(cmd.Env, key+"="+e.config.Env[key])
	}
	return cmd
}
