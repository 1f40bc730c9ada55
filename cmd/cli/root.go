package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kcaldas/axterm/cmd/tui"
	"github.com/kcaldas/axterm/cmd/tui/helpers"
	"github.com/kcaldas/axterm/internal/di"
	"github.com/kcaldas/axterm/pkg/config"
	"github.com/kcaldas/axterm/pkg/logging"
)

var (
	// Global flags
	workingDir  string
	shellPath   string
	historyFile string
	usePTY      bool
	plainMode   bool
	configPath  string
	verbose     bool
	quiet       bool

	// Settings resolved once for all commands
	settings config.Settings
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "axterm",
	Short: "A scrollable, multi-prompt shell window",
	Long: `axterm runs shell commands one prompt at a time, keeps every prompt and its
output on screen, follows cd across invocations and remembers your history.

When stdin is not a terminal, or with --plain, commands are read one per line
and their output is printed.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.SetGlobalLogger(newLogger())

		var err error
		settings, err = loadSettings(cmd)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if !verbose && !quiet {
			logging.GetGlobalLogger().SetLevel(logging.ParseLevel(settings.LogLevel, slog.LevelInfo))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		defer di.ProvideEventBus().Shutdown()

		if plainMode || hasStdinInput() {
			controller := di.InitializeController(settings, helpers.NewClipboard(), logging.GetGlobalLogger())
			controller.LoadHistory()
			return runPlain(ctx, controller, cmd.InOrStdin(), cmd.OutOrStdout())
		}
		return tui.Run(ctx, settings)
	},
}

func init() {
	registerFlags(RootCmd)
}

func registerFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&workingDir, "cwd", "", "starting working directory (default: home directory)")
	flags.StringVar(&shellPath, "shell", "", "command interpreter to run commands with (default: $SHELL)")
	flags.StringVar(&historyFile, "history-file", "", "command history file (default: "+config.DefaultHistoryFile+")")
	flags.BoolVar(&usePTY, "pty", false, "capture command output through a pseudo-terminal")
	flags.BoolVar(&plainMode, "plain", false, "line mode: read commands from stdin and print their output")
	flags.StringVar(&configPath, "config", "", "configuration file (default: "+config.DefaultConfigFile+")")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug level)")
	flags.BoolVarP(&quiet, "quiet", "q", false, "quiet output (errors only)")
}

func newLogger() logging.Logger {
	switch {
	case quiet:
		return logging.NewQuietLogger()
	case verbose:
		return logging.NewVerboseLogger()
	default:
		return logging.NewDefaultLogger()
	}
}

// loadSettings reads the configuration file, the .env file in the starting
// directory and the environment, then applies explicitly set flags.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	envDir := workingDir
	if envDir == "" {
		envDir = "."
	}

	s, err := config.Load(config.LoadOptions{
		Path:    configPath,
		EnvFile: filepath.Join(envDir, config.DefaultEnvFile),
		Manager: di.ProvideConfigManager(),
	})
	if err != nil {
		return s, err
	}

	applyFlags(cmd, &s)
	if err := s.Normalize(); err != nil {
		return s, err
	}
	return s, nil
}

func applyFlags(cmd *cobra.Command, s *config.Settings) {
	flags := cmd.Flags()
	if flags.Changed("cwd") {
		s.StartDir = workingDir
	}
	if flags.Changed("shell") {
		s.Shell = shellPath
		s.ShellArgs = nil
	}
	if flags.Changed("history-file") {
		s.HistoryFile = historyFile
	}
	if flags.Changed("pty") {
		s.PTY = usePTY
	}
}
