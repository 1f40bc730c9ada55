package config

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding file settings.
const (
	EnvShell          = "AXTERM_SHELL"
	EnvShellArgs      = "AXTERM_SHELL_ARGS"
	EnvDirQuery       = "AXTERM_DIR_QUERY"
	EnvPTY            = "AXTERM_PTY"
	EnvCommandTimeout = "AXTERM_COMMAND_TIMEOUT"
	EnvHistoryFile    = "AXTERM_HISTORY_FILE"
	EnvHistoryLimit   = "AXTERM_HISTORY_LIMIT"
	EnvStartDir       = "AXTERM_START_DIR"
	EnvScrollScale    = "AXTERM_SCROLL_SCALE"
	EnvRepeatInterval = "AXTERM_REPEAT_INTERVAL"
	EnvBlinkInterval  = "AXTERM_BLINK_INTERVAL"
	EnvLogLevel       = "AXTERM_LOG_LEVEL"
)

const (
	DefaultConfigFile  = "~/.axterm/config.yaml"
	DefaultHistoryFile = "~/.axterm/command-history.txt"
	DefaultEnvFile     = ".env"
)

// Settings is the complete runtime configuration.
type Settings struct {
	Shell          string            `yaml:"shell"`
	ShellArgs      []string          `yaml:"shell_args"`
	DirQuery       string            `yaml:"dir_query"`
	PTY            bool              `yaml:"pty"`
	CommandTimeout time.Duration     `yaml:"command_timeout"`
	Env            map[string]string `yaml:"env"`

	HistoryFile  string `yaml:"history_file"`
	HistoryLimit int    `yaml:"history_limit"`

	StartDir       string        `yaml:"start_dir"`
	ScrollScale    int           `yaml:"scroll_scale"`
	RepeatInterval time.Duration `yaml:"repeat_interval"`
	BlinkInterval  time.Duration `yaml:"blink_interval"`

	LogLevel string `yaml:"log_level"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		DirQuery:       ";pwd",
		HistoryFile:    DefaultHistoryFile,
		HistoryLimit:   50,
		ScrollScale:    3,
		RepeatInterval: 100 * time.Millisecond,
		BlinkInterval:  500 * time.Millisecond,
		LogLevel:       "info",
	}
}

// LoadOptions controls where settings come from.
type LoadOptions struct {
	// Path is the YAML file. Empty means DefaultConfigFile, which may be absent.
	Path string
	// EnvFile is a dotenv file loaded into the environment before overrides
	// are read. Existing variables win. Empty means DefaultEnvFile.
	EnvFile string
	// Manager reads overrides. Defaults to NewConfigManager().
	Manager Manager
}

// Load builds settings from defaults, the YAML file, the dotenv file and the
// environment, in increasing precedence. Paths are expanded and numeric
// values clamped to their valid ranges.
func Load(opts LoadOptions) (Settings, error) {
	settings := Defaults()

	path := opts.Path
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	if err := settings.readFile(path, explicit); err != nil {
		return settings, err
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := LoadDotEnv(envFile); err != nil {
		return settings, err
	}

	manager := opts.Manager
	if manager == nil {
		manager = NewConfigManager()
	}
	settings.ApplyEnv(manager)

	if err := settings.Normalize(); err != nil {
		return settings, err
	}
	return settings, nil
}

func (s *Settings) readFile(path string, required bool) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("expanding config path %s: %w", path, err)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", expanded, err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("parsing config file %s: %w", expanded, err)
	}
	return nil
}

// LoadDotEnv loads variables from a dotenv file without overriding ones
// already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("expanding env file path %s: %w", path, err)
	}
	if _, err := os.Stat(expanded); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(expanded); err != nil {
		return fmt.Errorf("loading env file %s: %w", expanded, err)
	}
	return nil
}

// ApplyEnv overrides settings with AXTERM_* values present in m.
func (s *Settings) ApplyEnv(m Manager) {
	s.Shell = m.GetStringWithDefault(EnvShell, s.Shell)
	if args := m.GetStringWithDefault(EnvShellArgs, ""); args != "" {
		s.ShellArgs = strings.Fields(args)
	}
	s.DirQuery = m.GetStringWithDefault(EnvDirQuery, s.DirQuery)
	s.PTY = m.GetBoolWithDefault(EnvPTY, s.PTY)
	s.CommandTimeout = m.GetDurationWithDefault(EnvCommandTimeout, s.CommandTimeout)
	s.HistoryFile = m.GetStringWithDefault(EnvHistoryFile, s.HistoryFile)
	s.HistoryLimit = m.GetIntWithDefault(EnvHistoryLimit, s.HistoryLimit)
	s.StartDir = m.GetStringWithDefault(EnvStartDir, s.StartDir)
	s.ScrollScale = m.GetIntWithDefault(EnvScrollScale, s.ScrollScale)
	s.RepeatInterval = m.GetDurationWithDefault(EnvRepeatInterval, s.RepeatInterval)
	s.BlinkInterval = m.GetDurationWithDefault(EnvBlinkInterval, s.BlinkInterval)
	s.LogLevel = m.GetStringWithDefault(EnvLogLevel, s.LogLevel)
}

// Normalize expands paths, resolves an empty start directory to the home
// directory and clamps numeric settings.
func (s *Settings) Normalize() error {
	var err error
	if s.HistoryFile == "" {
		s.HistoryFile = DefaultHistoryFile
	}
	if s.HistoryFile, err = homedir.Expand(s.HistoryFile); err != nil {
		return fmt.Errorf("expanding history file: %w", err)
	}

	if s.StartDir == "" {
		if s.StartDir, err = homedir.Dir(); err != nil {
			return fmt.Errorf("resolving home directory: %w", err)
		}
	} else if s.StartDir, err = homedir.Expand(s.StartDir); err != nil {
		return fmt.Errorf("expanding start directory: %w", err)
	}
	if abs, err := filepath.Abs(s.StartDir); err == nil {
		s.StartDir = abs
	}

	if s.DirQuery == "" {
		s.DirQuery = Defaults().DirQuery
	}

	s.HistoryLimit = Clamp(s.HistoryLimit, 1, 10000)
	s.ScrollScale = Clamp(s.ScrollScale, 1, 100)
	s.RepeatInterval = Clamp(s.RepeatInterval, 10*time.Millisecond, 2*time.Second)
	s.BlinkInterval = Clamp(s.BlinkInterval, 100*time.Millisecond, 5*time.Second)
	s.CommandTimeout = Clamp(s.CommandTimeout, 0, 24*time.Hour)
	return nil
}

// Clamp limits v to [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}
