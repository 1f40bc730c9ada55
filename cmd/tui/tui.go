// Package tui is the full-screen front end: one gocui view showing every
// prompt session and its output.
package tui

import (
	"context"

	"github.com/kcaldas/axterm/pkg/config"
)

// Run starts the TUI and blocks until the exit command, Ctrl+C or ctx ends it.
func Run(ctx context.Context, settings config.Settings) error {
	app, err := NewApp(ctx, settings)
	if err != nil {
		return err
	}
	defer app.Close()

	return app.Run()
}
