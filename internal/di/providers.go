package di

import (
	"github.com/kcaldas/axterm/pkg/completion"
	"github.com/kcaldas/axterm/pkg/config"
	"github.com/kcaldas/axterm/pkg/events"
	"github.com/kcaldas/axterm/pkg/executor"
	"github.com/kcaldas/axterm/pkg/history"
	"github.com/kcaldas/axterm/pkg/logging"
	"github.com/kcaldas/axterm/pkg/terminal"
)

// Shared event bus instance
var eventBus = events.NewEventBus()

// Wire providers for event bus system

func ProvideEventBus() events.EventBus {
	return eventBus
}

func ProvidePublisher() events.Publisher {
	return eventBus
}

func ProvideSubscriber() events.Subscriber {
	return eventBus
}

// ProvideConfigManager provides a configuration manager
func ProvideConfigManager() config.Manager {
	return config.NewConfigManager()
}

// ProvideHistoryStore provides the file-backed command history
func ProvideHistoryStore(settings config.Settings) *history.FileStore {
	return history.NewFileStore(settings.HistoryFile, settings.HistoryLimit)
}

// ProvideCompleter provides a completer that suggests from history
func ProvideCompleter(store *history.FileStore) *completion.Completer {
	return completion.NewCompleter(completion.NewHistorySuggester(store))
}

func ProvideExecutorConfig(settings config.Settings) executor.Config {
	mode := executor.ModePipe
	if settings.PTY {
		mode = executor.ModePTY
	}
	return executor.Config{
		Shell:    settings.Shell,
		Args:     settings.ShellArgs,
		DirQuery: settings.DirQuery,
		Mode:     mode,
		Timeout:  settings.CommandTimeout,
		Env:      settings.Env,
	}
}

func ProvideExecutor(cfg executor.Config, logger logging.Logger) *executor.Executor {
	return executor.New(cfg, logger.With("component", "executor"))
}

func ProvideTerminalOptions(settings config.Settings) terminal.Options {
	return terminal.Options{
		StartDir:       settings.StartDir,
		ScrollScale:    settings.ScrollScale,
		RepeatInterval: settings.RepeatInterval,
		BlinkInterval:  settings.BlinkInterval,
	}
}

func ProvideTerminalDeps(
	store *history.FileStore,
	completer *completion.Completer,
	exec *executor.Executor,
	clipboard terminal.Clipboard,
	publisher events.Publisher,
	logger logging.Logger,
) terminal.Deps {
	return terminal.Deps{
		History:   store,
		Completer: completer,
		Executor:  exec,
		Clipboard: clipboard,
		Publisher: publisher,
		Logger:    logger.With("component", "terminal"),
	}
}
