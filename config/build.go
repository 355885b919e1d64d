package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/trickstertwo/xbridge"
	logrusadapter "github.com/trickstertwo/xbridge/adapter/logrus"
	slogadapter "github.com/trickstertwo/xbridge/adapter/slog"
	zapadapter "github.com/trickstertwo/xbridge/adapter/zap"
	zerologadapter "github.com/trickstertwo/xbridge/adapter/zerolog"
	"github.com/trickstertwo/xbridge/bridge"
	"github.com/trickstertwo/xbridge/metrics"
)

// Bridge is the logger assembled from a Config, with the observer and level
// table behind it.
type Bridge struct {
	Logger   *xbridge.Logger
	Observer *bridge.Observer
	Levels   *xbridge.LevelMapping
	out      io.Closer
}

// Close releases the output file, if one was opened.
func (b *Bridge) Close() error {
	if b.out == nil {
		return nil
	}
	return b.out.Close()
}

// Levels returns the level table of a backend by name.
func Levels(backend string) (*xbridge.LevelMapping, error) {
	switch backend {
	case BackendSlog:
		return slogadapter.Levels(), nil
	case BackendZap:
		return zapadapter.Levels(), nil
	case BackendZerolog:
		return zerologadapter.Levels(), nil
	case BackendLogrus:
		return logrusadapter.Levels(), nil
	}
	return nil, errors.Wrapf(ErrUnknownBackend, "%q", backend)
}

// Build validates cfg and wires the backend it names. Metrics, when
// enabled, are registered on reg (nil means the default registerer). The
// logger is not installed as global.
func Build(cfg Config, reg prometheus.Registerer) (*Bridge, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	minLevel, _ := xbridge.ParseLevel(cfg.Level)
	backendLevel, _ := xbridge.ParseLevel(cfg.BackendLevel)

	var collector bridge.MetricsCollector
	if cfg.Metrics.Enabled {
		c, err := metrics.NewPromCollectorWithRegistry(cfg.Metrics.Namespace, reg)
		if err != nil {
			return nil, errors.Wrap(err, "metrics")
		}
		collector = c
	}

	w, closer, err := openOutput(cfg.Output)
	if err != nil {
		return nil, err
	}

	var obs *bridge.Observer
	text := cfg.Format != FormatJSON
	switch cfg.Backend {
	case BackendSlog:
		format := slogadapter.FormatJSON
		if text {
			format = slogadapter.FormatText
		}
		obs = slogadapter.NewObserver(slogadapter.Config{
			Writer:       w,
			BackendLevel: backendLevel,
			Format:       format,
			Caller:       cfg.Caller,
			ChannelName:  cfg.Channel,
			StackDepth:   cfg.StackDepth,
			Metrics:      collector,
		})
	case BackendZap:
		obs = zapadapter.NewObserver(zapadapter.Config{
			Writer:       w,
			BackendLevel: backendLevel,
			Console:      text,
			Caller:       cfg.Caller,
			ChannelName:  cfg.Channel,
			StackDepth:   cfg.StackDepth,
			Metrics:      collector,
		})
	case BackendZerolog:
		obs = zerologadapter.NewObserver(zerologadapter.Config{
			Writer:       w,
			BackendLevel: backendLevel,
			Console:      text,
			Caller:       cfg.Caller,
			ChannelName:  cfg.Channel,
			StackDepth:   cfg.StackDepth,
			Metrics:      collector,
		})
	case BackendLogrus:
		obs = logrusadapter.NewObserver(logrusadapter.Config{
			Writer:       w,
			BackendLevel: backendLevel,
			Text:         text,
			Caller:       cfg.Caller,
			ChannelName:  cfg.Channel,
			StackDepth:   cfg.StackDepth,
			Metrics:      collector,
		})
	}

	l, err := xbridge.NewBuilder().AddObserver(obs).WithMinLevel(minLevel).Build()
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, err
	}
	levels, _ := Levels(cfg.Backend)
	return &Bridge{Logger: l, Observer: obs, Levels: levels, out: closer}, nil
}

func openOutput(output string) (io.Writer, io.Closer, error) {
	switch output {
	case "", "stdout":
		return os.Stdout, nil, nil
	case "stderr":
		return os.Stderr, nil, nil
	}
	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open output")
	}
	return f, f, nil
}
