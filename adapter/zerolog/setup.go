package zerologadapter

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/xbridge"
	"github.com/trickstertwo/xbridge/bridge"
)

// Config is an explicit, code-first configuration for zerolog + xbridge.
// No envs, no hidden init, one call to Use.
type Config struct {
	Writer            io.Writer     // default: os.Stdout
	MinLevel          xbridge.Level // producer filter
	BackendLevel      xbridge.Level // zerolog logger level
	Console           bool          // pretty console output instead of JSON
	ConsoleTimeFormat string        // only used if Console==true; default time.RFC3339Nano
	Caller            bool          // include the resolved caller
	ChannelName       string        // default bridge.DefaultChannelName
	StackDepth        int           // default bridge.LoggerStackDepth
	Metrics           bridge.MetricsCollector
}

// NewObserver builds the zerolog logger and the bridge observer writing to it.
func NewObserver(cfg Config) *bridge.Observer {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}

	var zl zerolog.Logger
	if cfg.Console {
		cw := zerolog.ConsoleWriter{Out: w, TimeFormat: cfg.ConsoleTimeFormat}
		if cw.TimeFormat == "" {
			cw.TimeFormat = time.RFC3339Nano
		}
		// Hide the caller column when it is not resolved, to avoid "<nil>".
		if !cfg.Caller {
			cw.PartsExclude = append(cw.PartsExclude, zerolog.CallerFieldName)
		}
		zl = zerolog.New(cw)
	} else {
		zl = zerolog.New(w)
	}

	code, ok := levels.ToLegacy(cfg.BackendLevel)
	if !ok {
		code = int(zerolog.InfoLevel)
	}
	zl = zl.Level(zerolog.Level(code))

	depth := cfg.StackDepth
	if depth <= 0 {
		depth = bridge.LoggerStackDepth
	}
	opts := []bridge.Option{
		bridge.WithName(cfg.ChannelName),
		bridge.WithStackDepth(depth),
		bridge.WithMetrics(cfg.Metrics),
	}
	if !cfg.Caller {
		opts = append(opts, bridge.WithCallerResolver(bridge.NoCaller))
	}
	return bridge.New(New(zl), opts...)
}

// Use builds a zerolog-backed xbridge logger from Config, wires it as the
// global xbridge logger, and returns it.
func Use(cfg Config) *xbridge.Logger {
	return xbridge.UseObserver(NewObserver(cfg), cfg.MinLevel)
}
