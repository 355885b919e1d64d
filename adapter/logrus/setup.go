package logrusadapter

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/trickstertwo/xbridge"
	"github.com/trickstertwo/xbridge/bridge"
)

// Config is an explicit, code-first configuration for logrus + xbridge.
type Config struct {
	Writer       io.Writer        // default: os.Stdout
	MinLevel     xbridge.Level    // producer filter
	BackendLevel xbridge.Level    // logrus logger level
	Text         bool             // TextFormatter instead of JSONFormatter
	Formatter    logrus.Formatter // overrides Text when set
	Caller       bool             // include the resolved caller
	ChannelName  string           // default bridge.DefaultChannelName
	StackDepth   int              // default bridge.LoggerStackDepth
	Metrics      bridge.MetricsCollector
}

// NewObserver builds the logrus logger and the bridge observer writing to it.
func NewObserver(cfg Config) *bridge.Observer {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}

	l := logrus.New()
	l.SetOutput(w)
	switch {
	case cfg.Formatter != nil:
		l.SetFormatter(cfg.Formatter)
	case cfg.Text:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339Nano, DisableColors: true})
	default:
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	}
	code, ok := levels.ToLegacy(cfg.BackendLevel)
	if !ok {
		code = int(logrus.InfoLevel)
	}
	l.SetLevel(logrus.Level(code))

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
	return bridge.New(New(l), opts...)
}

// Use builds a logrus-backed xbridge logger from Config, sets it as global,
// and returns it.
func Use(cfg Config) *xbridge.Logger {
	return xbridge.UseObserver(NewObserver(cfg), cfg.MinLevel)
}
