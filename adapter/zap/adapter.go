package zapadapter

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/xbridge"
	"github.com/trickstertwo/xbridge/bridge"
)

// xbridge critical maps to DPanic. Records are written straight to the core,
// so no level ever panics or exits.
var levels = xbridge.NewLevelMapping(map[xbridge.Level]int{
	xbridge.LevelDebug:    int(zapcore.DebugLevel),
	xbridge.LevelInfo:     int(zapcore.InfoLevel),
	xbridge.LevelWarn:     int(zapcore.WarnLevel),
	xbridge.LevelError:    int(zapcore.ErrorLevel),
	xbridge.LevelCritical: int(zapcore.DPanicLevel),
}, func(code int) string { return zapcore.Level(code).String() })

// Levels is the xbridge <-> zap level table.
func Levels() *xbridge.LevelMapping { return levels }

// Backend exposes a zap.Logger as a bridge.Backend; channels are
// Logger.Named children.
//
// Optional behavior:
//   - SetLevel adjusts the backend filter when a zap.AtomicLevel was given at
//     construction. Without one it is a no-op.
type Backend struct {
	l     *zap.Logger
	al    *zap.AtomicLevel
	named sync.Map // channel name -> *zap.Logger
}

// New creates a backend for the provided zap logger.
func New(l *zap.Logger) *Backend {
	if l == nil {
		l = zap.NewNop()
	}
	return &Backend{l: l}
}

// NewWithAtomicLevel creates a backend and wires a zap.AtomicLevel so
// SetLevel can adjust the backend's filter.
func NewWithAtomicLevel(l *zap.Logger, al *zap.AtomicLevel) *Backend {
	b := New(l)
	b.al = al
	return b
}

func (b *Backend) Levels() *xbridge.LevelMapping { return levels }

// SetLevel updates the backend filter when an AtomicLevel was supplied.
func (b *Backend) SetLevel(l xbridge.Level) {
	if b.al == nil {
		return
	}
	code, ok := levels.ToLegacy(l)
	if !ok {
		code = int(zapcore.InfoLevel)
	}
	b.al.SetLevel(zapcore.Level(code))
}

func (b *Backend) Channel(name string, caller bridge.CallerResolver) bridge.Channel {
	l, ok := b.named.Load(name)
	if !ok {
		l, _ = b.named.LoadOrStore(name, b.l.Named(name))
	}
	if caller == nil {
		caller = bridge.NoCaller
	}
	zl := l.(*zap.Logger)
	return &Channel{name: name, loggerName: zl.Name(), core: zl.Core(), caller: caller}
}

// Channel writes entries to the core of one named zap logger.
type Channel struct {
	name       string
	loggerName string
	core       zapcore.Core
	caller     bridge.CallerResolver
}

func (c *Channel) Name() string { return c.name }

// Log checks the core first; the message is formatted only for entries the
// core accepts.
func (c *Channel) Log(code int, msg fmt.Stringer, exc bridge.ExcInfo) {
	level := zapcore.Level(code)
	if !c.core.Enabled(level) {
		return
	}
	caller := c.caller.FindCaller(false, 1)

	ent := zapcore.Entry{
		LoggerName: c.loggerName,
		Time:       bridge.TimeOf(msg),
		Level:      level,
		Message:    msg.String(),
		Caller: zapcore.EntryCaller{
			Defined:  caller.Defined(),
			PC:       caller.PC,
			File:     caller.File,
			Line:     caller.Line,
			Function: caller.Function,
		},
	}
	var fields []zap.Field
	if exc.Present() {
		ent.Stack = exc.Traceback()
		fields = []zap.Field{
			zap.String("exc_type", exc.TypeName()),
			zap.NamedError("exc_value", exc.Value),
		}
	}
	if ce := c.core.Check(ent, nil); ce != nil {
		ce.Write(fields...)
	}
}
