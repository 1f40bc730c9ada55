package tui

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"github.com/awesome-gocui/gocui"

	"github.com/kcaldas/axterm/cmd/tui/helpers"
	"github.com/kcaldas/axterm/internal/di"
	"github.com/kcaldas/axterm/pkg/config"
	"github.com/kcaldas/axterm/pkg/events"
	"github.com/kcaldas/axterm/pkg/input"
	"github.com/kcaldas/axterm/pkg/logging"
	"github.com/kcaldas/axterm/pkg/terminal"
)

const (
	viewTerminal = "terminal"

	frameInterval = 50 * time.Millisecond
	pageRows      = 5
)

// App drives a terminal.Controller from a full-screen gocui view. All
// controller access happens on the gocui main loop.
type App struct {
	gui        *gocui.Gui
	controller *terminal.Controller
	clipboard  *helpers.Clipboard
	logger     logging.Logger
	ctx        context.Context

	pending   []input.Event
	lastFrame time.Time
	width     int
	height    int
	title     string

	keybindingsSetup bool
	done             chan struct{}
}

// NewApp creates the application on a real terminal.
func NewApp(ctx context.Context, settings config.Settings) (*App, error) {
	return NewAppWithOutputMode(ctx, settings, gocui.OutputTrue)
}

func NewAppWithOutputMode(ctx context.Context, settings config.Settings, outputMode gocui.OutputMode) (*App, error) {
	// Anything written to stderr would corrupt the screen
	log.SetOutput(io.Discard)
	logger := logging.NewFileLoggerFromEnv("axterm-tui.log")
	logging.SetGlobalLogger(logger)

	g, err := gocui.NewGui(outputMode, true)
	if err != nil {
		return nil, err
	}
	g.Mouse = true
	g.Cursor = false

	clipboard := helpers.NewClipboard()
	controller := di.InitializeController(settings, clipboard, logger)
	controller.LoadHistory()

	app := &App{
		gui:        g,
		controller: controller,
		clipboard:  clipboard,
		logger:     logger,
		ctx:        ctx,
		lastFrame:  time.Now(),
		title:      titleFor(controller.Cwd()),
		done:       make(chan struct{}),
	}
	app.setupEventSubscriptions()

	g.SetManagerFunc(func(gui *gocui.Gui) error {
		if err := app.layout(gui); err != nil {
			return err
		}
		if !app.keybindingsSetup {
			if err := app.setupKeybindings(); err != nil {
				return err
			}
			app.keybindingsSetup = true
		}
		return nil
	})

	return app, nil
}

func (app *App) setupEventSubscriptions() {
	di.ProvideSubscriber().Subscribe(events.DirectoryChangedEvent{}.Topic(), func(event interface{}) {
		e, ok := event.(events.DirectoryChangedEvent)
		if !ok {
			return
		}
		app.gui.Update(func(g *gocui.Gui) error {
			app.title = titleFor(e.To)
			return nil
		})
	})
}

func (app *App) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	v, err := g.SetView(viewTerminal, 0, 0, maxX-1, maxY-1, 0)
	if err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Editable = true
		v.Editor = &promptEditor{app: app}
		v.Wrap = false
		v.Frame = true
		if _, err := g.SetCurrentView(viewTerminal); err != nil {
			return err
		}
	}

	width, height := v.Size()
	if width != app.width || height != app.height {
		app.width, app.height = width, height
		app.pending = append(app.pending, input.ResizeTo(width, height))
	}

	v.Title = app.title
	v.Subtitle = " " + strings.ToLower(app.controller.State().String()) + " "
	v.Clear()
	lines := renderLines(app.controller.Snapshot(), height)
	_, err = io.WriteString(v, strings.Join(lines, "\n"))
	return err
}

func (app *App) setupKeybindings() error {
	keymap := NewKeymap()
	keymap.AddEntry(KeymapEntry{
		Key:         gocui.KeyCtrlC,
		Mod:         gocui.ModNone,
		Action:      app.quit,
		Description: "Quit without saving history",
	})
	keymap.AddEntry(KeymapEntry{
		Key:         gocui.MouseWheelUp,
		Mod:         gocui.ModNone,
		Action:      app.scrollBy(1),
		Description: "Scroll up",
	})
	keymap.AddEntry(KeymapEntry{
		Key:         gocui.MouseWheelDown,
		Mod:         gocui.ModNone,
		Action:      app.scrollBy(-1),
		Description: "Scroll down",
	})
	keymap.AddEntry(KeymapEntry{
		Key:         gocui.KeyPgup,
		Mod:         gocui.ModNone,
		Action:      app.scrollBy(pageRows),
		Description: "Page up",
	})
	keymap.AddEntry(KeymapEntry{
		Key:         gocui.KeyPgdn,
		Mod:         gocui.ModNone,
		Action:      app.scrollBy(-pageRows),
		Description: "Page down",
	})
	keymap.AddEntry(KeymapEntry{
		View:        viewTerminal,
		Key:         gocui.MouseLeft,
		Mod:         gocui.ModNone,
		Action:      app.click,
		Description: "Focus the prompt",
	})
	return keymap.Bind(app.gui)
}

func (app *App) enqueue(evs ...input.Event) {
	app.pending = append(app.pending, evs...)
	app.gui.Update(app.flush)
}

// flush hands queued events to the controller as one frame. It must run on
// the gocui main loop.
func (app *App) flush(*gocui.Gui) error {
	now := time.Now()
	frame := input.Frame{Events: app.pending, Elapsed: now.Sub(app.lastFrame)}
	app.pending = nil
	app.lastFrame = now

	if err := app.controller.Update(app.ctx, frame); err != nil {
		if errors.Is(err, terminal.ErrExit) {
			return gocui.ErrQuit
		}
		return err
	}
	return nil
}

func (app *App) startTicker() {
	go func() {
		ticker := time.NewTicker(frameInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				app.gui.Update(app.flush)
			case <-app.ctx.Done():
				app.gui.Update(func(*gocui.Gui) error { return gocui.ErrQuit })
				return
			case <-app.done:
				return
			}
		}
	}()
}

func (app *App) scrollBy(delta int) func() error {
	return func() error {
		app.pending = append(app.pending, input.Scroll(delta))
		return app.flush(app.gui)
	}
}

func (app *App) click() error {
	v, err := app.gui.View(viewTerminal)
	if err != nil {
		return err
	}
	cx, cy := v.Cursor()
	app.pending = append(app.pending, input.ClickAt(cy, cx))
	return app.flush(app.gui)
}

// copyLastOutput copies the most recent released output. The last session is
// always the unreleased prompt.
func (app *App) copyLastOutput() error {
	sessions := app.controller.Sessions()
	if len(sessions) < 2 {
		return nil
	}
	if err := app.controller.CopyOutput(len(sessions) - 2); err != nil {
		app.logger.Warn("copy failed", "error", err)
	}
	return nil
}

// paste types the clipboard contents into the active prompt.
func (app *App) paste() {
	text, err := app.clipboard.Paste()
	if err != nil {
		app.logger.Warn("paste failed", "error", err)
		return
	}
	if evs := pasteEvents(text); len(evs) > 0 {
		app.enqueue(evs...)
	}
}

func (app *App) quit() error {
	return gocui.ErrQuit
}

// Run blocks until the user exits.
func (app *App) Run() error {
	app.startTicker()
	err := app.gui.MainLoop()
	if errors.Is(err, gocui.ErrQuit) {
		return nil
	}
	return err
}

func (app *App) Close() {
	select {
	case <-app.done:
	default:
		close(app.done)
	}
	if app.gui != nil {
		app.gui.Close()
	}
}
