//go:build wireinject

package di

import (
	"github.com/google/wire"
	"github.com/kcaldas/axterm/pkg/config"
	"github.com/kcaldas/axterm/pkg/logging"
	"github.com/kcaldas/axterm/pkg/terminal"
)

// InitializeController builds a terminal controller from settings. Clipboard may be nil.
func InitializeController(settings config.Settings, clipboard terminal.Clipboard, logger logging.Logger) *terminal.Controller {
	wire.Build(
		ProvidePublisher,
		ProvideHistoryStore,
		ProvideCompleter,
		ProvideExecutorConfig,
		ProvideExecutor,
		ProvideTerminalOptions,
		ProvideTerminalDeps,
		terminal.New,
	)
	return nil
}
