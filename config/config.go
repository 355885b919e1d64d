// Package config loads a bridge setup from a YAML/JSON file and XBRIDGE_
// environment variables, and assembles the logger it describes.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"

	"github.com/trickstertwo/xbridge"
)

// EnvPrefix marks environment overrides; "__" separates nested keys, so
// XBRIDGE_METRICS__NAMESPACE sets metrics.namespace.
const EnvPrefix = "XBRIDGE_"

// Backend names.
const (
	BackendSlog    = "slog"
	BackendZap     = "zap"
	BackendZerolog = "zerolog"
	BackendLogrus  = "logrus"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatText    = "text"
	FormatConsole = "console"
)

var (
	ErrUnknownBackend = errors.New("xbridge: unknown backend")
	ErrUnknownFormat  = errors.New("xbridge: unknown output format")
)

// MetricsConfig enables the Prometheus collector.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled"`
	Namespace string `json:"namespace"`
}

// Config describes one bridge: which backend, which channel, and how the
// backend writes.
type Config struct {
	// Backend is one of slog, zap, zerolog, logrus.
	Backend string `json:"backend"`
	// Channel is the backend logger name events are written to.
	Channel string `json:"channel"`
	// StackDepth is the number of frames between the caller resolver and
	// the producer's call site.
	StackDepth int `json:"stack_depth"`
	// Level is the minimum structured level the producer emits.
	Level string `json:"level"`
	// BackendLevel is the backend's own filter, as a structured level name.
	BackendLevel string `json:"backend_level"`
	// Format is json, text or console.
	Format string `json:"format"`
	// Output is stdout, stderr, or a file path opened for append.
	Output string `json:"output"`
	// Caller records the resolved call site on every record.
	Caller  bool          `json:"caller"`
	Metrics MetricsConfig `json:"metrics"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.Backend == "" {
		c.Backend = BackendSlog
	}
	if c.Level == "" {
		c.Level = "debug"
	}
	if c.BackendLevel == "" {
		c.BackendLevel = "debug"
	}
	if c.Format == "" {
		c.Format = FormatJSON
	}
	if c.Output == "" {
		c.Output = "stdout"
	}
}

// Validate checks every field that Build interprets.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendSlog, BackendZap, BackendZerolog, BackendLogrus:
	default:
		return errors.Wrapf(ErrUnknownBackend, "%q", c.Backend)
	}
	switch c.Format {
	case FormatJSON, FormatText, FormatConsole:
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", c.Format)
	}
	if c.StackDepth < 0 {
		return fmt.Errorf("stack_depth must not be negative, got %d", c.StackDepth)
	}
	if _, err := xbridge.ParseLevel(c.Level); err != nil {
		return errors.Wrap(err, "level")
	}
	if _, err := xbridge.ParseLevel(c.BackendLevel); err != nil {
		return errors.Wrap(err, "backend_level")
	}
	return nil
}

// Load reads path (YAML or JSON by extension) and applies XBRIDGE_
// environment overrides. An empty path loads the environment only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		var parser koanf.Parser
		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, errors.Wrapf(err, "load %s", path)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func envKey(s string) string {
	s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}
