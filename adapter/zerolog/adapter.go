package zerologadapter

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/xbridge"
	"github.com/trickstertwo/xbridge/bridge"
)

// LoggerKey is the field carrying the channel name.
const LoggerKey = "logger"

// xbridge critical maps to Fatal. Channels use WithLevel, which never exits.
var levels = xbridge.NewLevelMapping(map[xbridge.Level]int{
	xbridge.LevelDebug:    int(zerolog.DebugLevel),
	xbridge.LevelInfo:     int(zerolog.InfoLevel),
	xbridge.LevelWarn:     int(zerolog.WarnLevel),
	xbridge.LevelError:    int(zerolog.ErrorLevel),
	xbridge.LevelCritical: int(zerolog.FatalLevel),
}, func(code int) string { return zerolog.Level(code).String() })

// Levels is the xbridge <-> zerolog level table.
func Levels() *xbridge.LevelMapping { return levels }

// Backend exposes a zerolog.Logger as a bridge.Backend. Channels are child
// loggers with a "logger" field.
type Backend struct {
	l     zerolog.Logger
	named sync.Map // channel name -> *zerolog.Logger
}

func New(l zerolog.Logger) *Backend {
	return &Backend{l: l}
}

func (b *Backend) Levels() *xbridge.LevelMapping { return levels }

func (b *Backend) Channel(name string, caller bridge.CallerResolver) bridge.Channel {
	l, ok := b.named.Load(name)
	if !ok {
		child := b.l.With().Str(LoggerKey, name).Logger()
		l, _ = b.named.LoadOrStore(name, &child)
	}
	if caller == nil {
		caller = bridge.NoCaller
	}
	return &Channel{name: name, l: l.(*zerolog.Logger), caller: caller}
}

// Channel writes events to one named zerolog logger.
type Channel struct {
	name   string
	l      *zerolog.Logger
	caller bridge.CallerResolver
}

func (c *Channel) Name() string { return c.name }

// Log drops the record before any work when zerolog disables the level; the
// message itself is produced through MsgFunc.
func (c *Channel) Log(code int, msg fmt.Stringer, exc bridge.ExcInfo) {
	ev := c.l.WithLevel(zerolog.Level(code))
	if !ev.Enabled() {
		return
	}
	caller := c.caller.FindCaller(false, 1)

	// RFC3339Nano string keeps precision without touching zerolog globals.
	ev.Str(zerolog.TimestampFieldName, bridge.TimeOf(msg).UTC().Format(time.RFC3339Nano))
	if caller.Defined() {
		ev.Str(zerolog.CallerFieldName, zerolog.CallerMarshalFunc(caller.PC, caller.File, caller.Line))
	}
	if exc.Present() {
		ev.Str("exc_type", exc.TypeName()).
			AnErr("exc_value", exc.Value).
			Str(zerolog.ErrorStackFieldName, exc.Traceback())
	}
	ev.MsgFunc(msg.String)
}
