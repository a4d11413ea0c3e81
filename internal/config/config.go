package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the settings of the liveview demo.
type Config struct {
	Capacity int           // source queue capacity
	Tick     time.Duration // feeder cadence
	Buffer   time.Duration // throttle window of the source view
	Modulus  int           // filtered view keeps multiples of Modulus
	Theme    string
	LogLevel string
	LogFile  string
	Follow   string // file tailed instead of the random feeder
}

const (
	defaultConfigPath = "~/.config/liveview/config.toml"
	defaultLogFile    = "~/.local/state/liveview/liveview.log"
	defaultCapacity   = 16
	defaultTick       = 500 * time.Millisecond
	defaultBuffer     = 250 * time.Millisecond
	defaultModulus    = 2
	defaultTheme      = "Nightfox"
	defaultLogLevel   = "info"
)

type rawConfig struct {
	Capacity int    `toml:"capacity,omitempty"`
	Tick     string `toml:"tick,omitempty"`
	Buffer   string `toml:"buffer,omitempty"`
	Modulus  int    `toml:"modulus,omitempty"`
	Theme    string `toml:"theme,omitempty"`
	LogLevel string `toml:"log_level,omitempty"`
	LogFile  string `toml:"log_file,omitempty"`
	Follow   string `toml:"follow,omitempty"`
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Capacity: defaultCapacity,
		Tick:     defaultTick,
		Buffer:   defaultBuffer,
		Modulus:  defaultModulus,
		Theme:    defaultTheme,
		LogLevel: defaultLogLevel,
		LogFile:  mustExpand(defaultLogFile),
	}
}

// Load parses the config at path, falling back to defaults when the file is
// missing and for every field left empty.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if raw.Capacity < 0 {
		return Config{}, fmt.Errorf("capacity must be positive, got %d", raw.Capacity)
	}
	if raw.Capacity > 0 {
		cfg.Capacity = raw.Capacity
	}
	if raw.Modulus < 0 {
		return Config{}, fmt.Errorf("modulus must be positive, got %d", raw.Modulus)
	}
	if raw.Modulus > 0 {
		cfg.Modulus = raw.Modulus
	}
	if cfg.Tick, err = parseDuration("tick", raw.Tick, cfg.Tick); err != nil {
		return Config{}, err
	}
	if cfg.Buffer, err = parseDuration("buffer", raw.Buffer, cfg.Buffer); err != nil {
		return Config{}, err
	}
	if theme := strings.TrimSpace(raw.Theme); theme != "" {
		cfg.Theme = theme
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	if follow := strings.TrimSpace(raw.Follow); follow != "" {
		cfg.Follow = mustExpand(follow)
	}

	return cfg, nil
}

// Save writes cfg to path, creating directories as needed.
func Save(path string, cfg Config) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	bytes, err := toml.Marshal(rawConfig{
		Capacity: cfg.Capacity,
		Tick:     formatDuration(cfg.Tick),
		Buffer:   formatDuration(cfg.Buffer),
		Modulus:  cfg.Modulus,
		Theme:    cfg.Theme,
		LogLevel: cfg.LogLevel,
		LogFile:  cfg.LogFile,
		Follow:   cfg.Follow,
	})
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// SlogLevel maps LogLevel onto a slog level. Unknown names mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseDuration(field, value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %s", field, value)
	}
	return d, nil
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	return d.String()
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
