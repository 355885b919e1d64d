package slogadapter

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/trickstertwo/xbridge"
	"github.com/trickstertwo/xbridge/bridge"
)

// LevelCritical is the slog level used for xbridge critical events. slog has
// no name for it and prints "ERROR+4".
const LevelCritical = slog.LevelError + 4

// LoggerKey is the attribute carrying the channel name.
const LoggerKey = "logger"

var levels = xbridge.NewLevelMapping(map[xbridge.Level]int{
	xbridge.LevelDebug:    int(slog.LevelDebug),
	xbridge.LevelInfo:     int(slog.LevelInfo),
	xbridge.LevelWarn:     int(slog.LevelWarn),
	xbridge.LevelError:    int(slog.LevelError),
	xbridge.LevelCritical: int(LevelCritical),
}, func(code int) string { return slog.Level(code).String() })

// Levels is the xbridge <-> slog level table.
func Levels() *xbridge.LevelMapping { return levels }

// Backend exposes a slog.Handler as a bridge.Backend. Channels are the
// handler with a "logger" attribute naming them.
type Backend struct {
	handler slog.Handler
	named   sync.Map // channel name -> slog.Handler
}

// New wraps h; a nil h uses slog.Default()'s handler.
func New(h slog.Handler) *Backend {
	if h == nil {
		h = slog.Default().Handler()
	}
	return &Backend{handler: h}
}

// FromLogger wraps the handler behind l.
func FromLogger(l *slog.Logger) *Backend {
	if l == nil {
		return New(nil)
	}
	return New(l.Handler())
}

func (b *Backend) Levels() *xbridge.LevelMapping { return levels }

func (b *Backend) Channel(name string, caller bridge.CallerResolver) bridge.Channel {
	h, ok := b.named.Load(name)
	if !ok {
		h, _ = b.named.LoadOrStore(name, b.handler.WithAttrs([]slog.Attr{slog.String(LoggerKey, name)}))
	}
	if caller == nil {
		caller = bridge.NoCaller
	}
	return &Channel{name: name, handler: h.(slog.Handler), caller: caller}
}

// Channel writes records to one named slog handler.
type Channel struct {
	name    string
	handler slog.Handler
	caller  bridge.CallerResolver
}

func (c *Channel) Name() string { return c.name }

// Log builds a slog.Record at the resolved call site. The message is only
// formatted when the handler is enabled for the level.
func (c *Channel) Log(code int, msg fmt.Stringer, exc bridge.ExcInfo) {
	ctx := context.Background()
	level := slog.Level(code)
	if !c.handler.Enabled(ctx, level) {
		return
	}
	caller := c.caller.FindCaller(false, 1)

	r := slog.NewRecord(bridge.TimeOf(msg), level, msg.String(), caller.PC)
	if exc.Present() {
		r.AddAttrs(
			slog.String("exc_type", exc.TypeName()),
			slog.Any("exc_value", exc.Value),
			slog.String("traceback", exc.Traceback()),
		)
	}
	_ = c.handler.Handle(ctx, r)
}
