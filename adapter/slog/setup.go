package slogadapter

import (
	"io"
	"log/slog"
	"os"

	"github.com/trickstertwo/xbridge"
	"github.com/trickstertwo/xbridge/bridge"
)

// Format selects the slog handler format.
type Format uint8

const (
	FormatJSON Format = iota + 1
	FormatText
)

// Config is an explicit, code-first configuration for slog + xbridge.
// One call to Use wires a slog-backed xbridge logger and sets it global.
type Config struct {
	Writer         io.Writer            // default: os.Stdout
	MinLevel       xbridge.Level        // producer filter
	BackendLevel   xbridge.Level        // slog handler filter, set through a LevelVar
	Format         Format               // JSON (default) or Text
	HandlerOptions *slog.HandlerOptions // optional; Level is managed by Use
	Caller         bool                 // sets HandlerOptions.AddSource
	ChannelName    string               // default bridge.DefaultChannelName
	StackDepth     int                  // default bridge.LoggerStackDepth
	Metrics        bridge.MetricsCollector
}

// NewObserver builds the slog handler and the bridge observer writing to it.
func NewObserver(cfg Config) *bridge.Observer {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	opts := slog.HandlerOptions{}
	if cfg.HandlerOptions != nil {
		opts = *cfg.HandlerOptions
	}
	if cfg.Caller {
		opts.AddSource = true
	}

	var lv slog.LevelVar
	code, _ := levels.ToLegacy(cfg.BackendLevel)
	lv.Set(slog.Level(code))
	opts.Level = &lv

	var h slog.Handler
	if cfg.Format == FormatText {
		h = slog.NewTextHandler(w, &opts)
	} else {
		h = slog.NewJSONHandler(w, &opts)
	}
	return bridge.New(New(h), observerOptions(cfg)...)
}

// Use builds a slog-backed xbridge logger from Config, sets it as global, and returns it.
func Use(cfg Config) *xbridge.Logger {
	return xbridge.UseObserver(NewObserver(cfg), cfg.MinLevel)
}

func observerOptions(cfg Config) []bridge.Option {
	depth := cfg.StackDepth
	if depth <= 0 {
		depth = bridge.LoggerStackDepth
	}
	return []bridge.Option{
		bridge.WithName(cfg.ChannelName),
		bridge.WithStackDepth(depth),
		bridge.WithMetrics(cfg.Metrics),
	}
}
