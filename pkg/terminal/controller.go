package terminal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kcaldas/axterm/pkg/events"
	"github.com/kcaldas/axterm/pkg/executor"
	"github.com/kcaldas/axterm/pkg/history"
	"github.com/kcaldas/axterm/pkg/input"
	"github.com/kcaldas/axterm/pkg/logging"
	"github.com/kcaldas/axterm/pkg/prompt"
)

// DefaultScrollScale is the number of rows scrolled per wheel step.
const DefaultScrollScale = 3

var (
	// ErrExit is returned by Update once the exit built-in has run.
	ErrExit = errors.New("exit requested")
	// ErrNoClipboard is returned by CopyOutput when no clipboard is configured.
	ErrNoClipboard = errors.New("no clipboard available")
)

// State is the controller's position in the submit cycle.
type State int

const (
	StateActive State = iota
	StateExecuting
	StateReleased
	// StateExited is final; set once exit has persisted history.
	StateExited
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "ACTIVE"
	case StateExecuting:
		return "EXECUTING"
	case StateReleased:
		return "RELEASED"
	case StateExited:
		return "EXITED"
	default:
		return "UNKNOWN"
	}
}

// Executor runs commands for the controller.
type Executor interface {
	Run(ctx context.Context, command, dir string) string
	QueryDirectory(ctx context.Context, command, dir string) (newDir, output string, err error)
}

// Clipboard receives copied output.
type Clipboard interface {
	WriteAll(text string) error
}

// Deps are the collaborators a Controller drives. Clipboard, Publisher and
// Logger are optional.
type Deps struct {
	History   history.Store
	Completer prompt.Matcher
	Executor  Executor
	Clipboard Clipboard
	Publisher events.Publisher
	Logger    logging.Logger
}

// Options tunes controller behavior.
type Options struct {
	StartDir       string
	ScrollScale    int
	RepeatInterval time.Duration
	BlinkInterval  time.Duration
}

// Controller owns the sequence of prompt sessions, the working directory and
// the scroll offset. Only the last session is ever unreleased. A Controller
// is not safe for concurrent use.
type Controller struct {
	history   history.Store
	completer prompt.Matcher
	executor  Executor
	clipboard Clipboard
	publisher events.Publisher
	logger    logging.Logger
	options   Options

	sessions []*prompt.Session
	cwd      string
	scroll   int
	state    State
	width    int
	height   int
	exited   bool
}

// New creates a controller with one fresh session.
func New(deps Deps, opts Options) *Controller {
	if opts.ScrollScale <= 0 {
		opts.ScrollScale = DefaultScrollScale
	}
	if opts.StartDir == "" {
		if wd, err := os.Getwd(); err == nil {
			opts.StartDir = wd
		} else {
			opts.StartDir = "/"
		}
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.NewComponentLogger("terminal")
	}

	c := &Controller{
		history:   deps.History,
		completer: deps.Completer,
		executor:  deps.Executor,
		clipboard: deps.Clipboard,
		publisher: deps.Publisher,
		logger:    logger,
		options:   opts,
		cwd:       executor.NormalizePath(opts.StartDir),
		state:     StateActive,
	}
	c.sessions = []*prompt.Session{c.newSession()}
	return c
}

// LoadHistory reads the history file. A failure is logged and startup
// continues with an empty history.
func (c *Controller) LoadHistory() {
	if err := c.history.Load(); err != nil {
		c.logger.Warn("could not load command history, starting empty", "error", err)
		return
	}
	c.logger.Debug("command history loaded", "entries", c.history.Len())
}

func (c *Controller) newSession() *prompt.Session {
	return prompt.New(prompt.Options{
		RepeatInterval: c.options.RepeatInterval,
		BlinkInterval:  c.options.BlinkInterval,
		Matcher:        c.completer,
	})
}

// Active returns the unreleased session at the end of the sequence.
func (c *Controller) Active() *prompt.Session {
	return c.sessions[len(c.sessions)-1]
}

// Sessions returns the session sequence, oldest first.
func (c *Controller) Sessions() []*prompt.Session {
	return append([]*prompt.Session(nil), c.sessions...)
}

func (c *Controller) Cwd() string       { return c.cwd }
func (c *Controller) ScrollOffset() int { return c.scroll }
func (c *Controller) State() State      { return c.state }
func (c *Controller) Exited() bool      { return c.exited }

// Update applies one frame of input in order, then advances the active
// session's timers by the frame's elapsed time. It returns ErrExit after the
// exit built-in; the caller should terminate.
func (c *Controller) Update(ctx context.Context, frame input.Frame) error {
	if c.exited {
		return ErrExit
	}
	for _, event := range frame.Events {
		if err := c.handle(ctx, event); err != nil {
			return err
		}
	}
	c.Active().Tick(frame.Elapsed)
	return nil
}

func (c *Controller) handle(ctx context.Context, event input.Event) error {
	active := c.Active()

	switch event.Kind {
	case input.Text:
		active.AppendText(event.Text)
	case input.KeyPress:
		return c.keyDown(ctx, event.Key)
	case input.KeyRelease:
		if event.Key == input.KeyBackspace {
			active.ReleaseBackspace()
		}
	case input.Click:
		c.focusAt(event.Row)
	case input.Wheel:
		c.Scroll(event.Delta)
	case input.Resize:
		c.width, c.height = event.Width, event.Height
	}
	return nil
}

func (c *Controller) keyDown(ctx context.Context, key input.Key) error {
	active := c.Active()

	switch key {
	case input.KeyBackspace:
		active.PressBackspace()
	case input.KeyClearLine:
		active.ClearLine()
	case input.KeyTab, input.KeyRight:
		active.AcceptSuggestion()
	case input.KeyUp:
		if entry, ok := c.history.Prev(); ok {
			active.SetBuffer(entry)
		}
	case input.KeyDown:
		if entry, ok := c.history.Next(); ok {
			active.SetBuffer(entry)
		}
	case input.KeyEnter:
		return c.Submit(ctx)
	case input.KeyScrollReset:
		c.ResetScroll()
	}
	return nil
}

// Scroll moves the view by delta wheel steps.
func (c *Controller) Scroll(delta int) {
	c.scroll += delta * c.options.ScrollScale
}

// ResetScroll returns the view to the top.
func (c *Controller) ResetScroll() {
	c.scroll = 0
}

// focusAt gives the active session focus when row falls inside its region
// and takes it away otherwise.
func (c *Controller) focusAt(row int) {
	views := c.Snapshot().Sessions
	last := views[len(views)-1]
	c.Active().SetFocus(row >= last.Top && row < last.Top+last.Height)
}

// Submit releases the active session. Built-ins are handled here; anything
// else runs on the executor in the current directory and blocks until it
// returns.
func (c *Controller) Submit(ctx context.Context) error {
	if c.exited {
		return ErrExit
	}

	active := c.Active()
	command := strings.TrimSpace(active.Text())
	c.state = StateExecuting

	switch {
	case command == "exit":
		return c.exit()
	case command == "clear" || command == "cls":
		c.clear()
		return nil
	case command == "":
		// Nothing to run; the empty prompt is still released.
		if err := active.Submit(ctx, prompt.RunnerFunc(noop), c.cwd); err != nil {
			return err
		}
	case strings.Contains(command, "cd"):
		if err := active.Submit(ctx, prompt.RunnerFunc(c.changeDirectory), c.cwd); err != nil {
			return err
		}
	default:
		c.logger.Debug("running command", "command", command, "dir", c.cwd)
		if err := active.Submit(ctx, c.executor, c.cwd); err != nil {
			return err
		}
	}

	c.release(active)
	return nil
}

func noop(context.Context, string, string) string { return "" }

func (c *Controller) release(s *prompt.Session) {
	c.state = StateReleased

	command := s.Command()
	c.history.Add(command)
	c.history.ResetCursor()

	output, _ := s.Output()
	events.PublishEvent(c.publisher, events.CommandReleasedEvent{
		SessionID: s.ID(),
		Command:   command,
		Output:    output,
		Dir:       c.cwd,
	})

	c.sessions = append(c.sessions, c.newSession())
	c.state = StateActive
}

// changeDirectory runs a directory-changing command followed by the directory
// query and adopts the reported directory. The returned text is the command's
// own output.
func (c *Controller) changeDirectory(ctx context.Context, command, dir string) string {
	newDir, output, err := c.executor.QueryDirectory(ctx, command, dir)
	if err != nil {
		if errors.Is(err, executor.ErrNoDirectory) {
			c.logger.Debug("directory query returned no path, keeping cwd", "command", command, "cwd", dir)
			return output
		}
		c.logger.Debug("directory query failed", "command", command, "error", err)
		return executor.FailureMessage(command)
	}

	if newDir != c.cwd {
		from := c.cwd
		c.cwd = newDir
		c.logger.Debug("working directory changed", "from", from, "to", newDir)
		events.PublishEvent(c.publisher, events.DirectoryChangedEvent{From: from, To: newDir})
	}
	return output
}

// clear is not recorded in history.
func (c *Controller) clear() {
	c.history.ResetCursor()

	discarded := len(c.sessions)
	c.sessions = []*prompt.Session{c.newSession()}
	c.scroll = 0
	c.state = StateActive
	events.PublishEvent(c.publisher, events.SessionsClearedEvent{Discarded: discarded})
}

// exit persists history once. A failed write is logged; the controller exits
// regardless.
func (c *Controller) exit() error {
	err := c.history.Save()
	if err != nil {
		logging.LogError(c.logger, "failed to save command history", err)
	}

	path := ""
	if p, ok := c.history.(interface{ Path() string }); ok {
		path = p.Path()
	}
	events.PublishEvent(c.publisher, events.HistoryPersistedEvent{
		Path:    path,
		Entries: c.history.Len(),
		Err:     err,
	})

	c.exited = true
	c.state = StateExited
	return ErrExit
}

// CopyOutput copies the trimmed output of the released session at index to
// the clipboard.
func (c *Controller) CopyOutput(index int) error {
	if index < 0 || index >= len(c.sessions) {
		return fmt.Errorf("session %d out of range", index)
	}
	output, ok := c.sessions[index].Output()
	if !ok {
		return fmt.Errorf("session %d has no output", index)
	}
	if c.clipboard == nil {
		return ErrNoClipboard
	}
	if err := c.clipboard.WriteAll(strings.TrimSpace(output)); err != nil {
		return fmt.Errorf("copying output: %w", err)
	}
	return nil
}
