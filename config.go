package nametable

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the file form of Options plus the settings of the code hosting
// the world (snapshot location, dispatcher cadence).
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	ChangeLog  ChangeLogConfig  `yaml:"changelog"`
	Snapshot   SnapshotConfig   `yaml:"snapshot"`
	Dispatcher DispatcherConfig `yaml:"dispatcher"`
}

type LoggingConfig struct {
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
	Verbose bool   `yaml:"verbose"`
}

type MetricsConfig struct {
	Namespace string `yaml:"namespace"`
}

type ChangeLogConfig struct {
	CompactThreshold int `yaml:"compactThreshold"`
}

type SnapshotConfig struct {
	Path string `yaml:"path"`
}

type DispatcherConfig struct {
	Interval time.Duration `yaml:"interval"`
}

func DefaultConfig() Config {
	return Config{
		Logging:    LoggingConfig{Level: "info", Format: "text"},
		Metrics:    MetricsConfig{Namespace: "nametable"},
		ChangeLog:  ChangeLogConfig{CompactThreshold: DefaultCompactThreshold},
		Dispatcher: DispatcherConfig{Interval: 50 * time.Millisecond},
	}
}

func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	cfg, err := ParseConfig(f)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig reads YAML on top of DefaultConfig and validates the result.
func ParseConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format: unsupported format %q", c.Logging.Format)
	}
	if c.ChangeLog.CompactThreshold < 0 {
		return fmt.Errorf("changelog.compactThreshold: must not be negative, got %d", c.ChangeLog.CompactThreshold)
	}
	if c.Dispatcher.Interval <= 0 {
		return fmt.Errorf("dispatcher.interval: must be positive, got %v", c.Dispatcher.Interval)
	}
	return nil
}

// Options converts the config into world options, logging to w.
func (c Config) Options(w io.Writer) Options {
	return Options{
		Logger:           NewLogger(w, c.Logging),
		Verbose:          c.Logging.Verbose,
		CompactThreshold: c.ChangeLog.CompactThreshold,
		MetricsNamespace: c.Metrics.Namespace,
	}
}

func NewLogger(w io.Writer, c LoggingConfig) *slog.Logger {
	level, err := parseLevel(c.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch c.Format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("logging.level: unknown level %q", level)
	}
}
