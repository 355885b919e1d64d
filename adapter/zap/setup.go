package zapadapter

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/xbridge"
	"github.com/trickstertwo/xbridge/bridge"
)

// Config is an explicit, code-first configuration for zap + xbridge.
// No envs, no hidden init, one call to Use.
type Config struct {
	Writer        io.Writer             // default: os.Stdout
	MinLevel      xbridge.Level         // producer filter
	BackendLevel  xbridge.Level         // zap core filter (AtomicLevel)
	Console       bool                  // console encoder instead of JSON
	EncoderConfig zapcore.EncoderConfig // if zero, a sensible default is used
	Caller        bool                  // include the resolved caller
	ChannelName   string                // default bridge.DefaultChannelName
	StackDepth    int                   // default bridge.LoggerStackDepth
	Metrics       bridge.MetricsCollector
}

// DefaultEncoderConfig is used when Config.EncoderConfig is zero.
func DefaultEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "traceback",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// NewObserver builds the zap logger and the bridge observer writing to it.
func NewObserver(cfg Config) *bridge.Observer {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}

	encCfg := cfg.EncoderConfig
	if encCfg.MessageKey == "" && encCfg.LevelKey == "" && encCfg.EncodeTime == nil {
		encCfg = DefaultEncoderConfig()
	}
	if !cfg.Caller {
		encCfg.CallerKey = zapcore.OmitKey
	}

	var enc zapcore.Encoder
	if cfg.Console {
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	al := zap.NewAtomicLevel()
	zl := zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), al))

	backend := NewWithAtomicLevel(zl, &al)
	backend.SetLevel(cfg.BackendLevel)

	depth := cfg.StackDepth
	if depth <= 0 {
		depth = bridge.LoggerStackDepth
	}
	return bridge.New(backend,
		bridge.WithName(cfg.ChannelName),
		bridge.WithStackDepth(depth),
		bridge.WithMetrics(cfg.Metrics),
	)
}

// Use builds a zap-backed xbridge logger from Config,
// wires it as the global xbridge logger, and returns it.
func Use(cfg Config) *xbridge.Logger {
	return xbridge.UseObserver(NewObserver(cfg), cfg.MinLevel)
}
