package logrusadapter

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/trickstertwo/xbridge"
	"github.com/trickstertwo/xbridge/bridge"
)

// LoggerKey is the field carrying the channel name.
const LoggerKey = "logger"

// logrus codes fall as severity rises (panic 0 ... trace 6). xbridge
// critical maps to Fatal; Entry.Log never exits, and Panic is not used.
var levels = xbridge.NewLevelMapping(map[xbridge.Level]int{
	xbridge.LevelDebug:    int(logrus.DebugLevel),
	xbridge.LevelInfo:     int(logrus.InfoLevel),
	xbridge.LevelWarn:     int(logrus.WarnLevel),
	xbridge.LevelError:    int(logrus.ErrorLevel),
	xbridge.LevelCritical: int(logrus.FatalLevel),
}, func(code int) string { return logrus.Level(code).String() })

// Levels is the xbridge <-> logrus level table.
func Levels() *xbridge.LevelMapping { return levels }

// Backend exposes a logrus.Logger as a bridge.Backend. Channels are entries
// with a "logger" field.
type Backend struct {
	l     *logrus.Logger
	named sync.Map // channel name -> *logrus.Entry
}

// New wraps l; a nil l uses logrus.StandardLogger().
func New(l *logrus.Logger) *Backend {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &Backend{l: l}
}

func (b *Backend) Levels() *xbridge.LevelMapping { return levels }

func (b *Backend) Channel(name string, caller bridge.CallerResolver) bridge.Channel {
	e, ok := b.named.Load(name)
	if !ok {
		e, _ = b.named.LoadOrStore(name, b.l.WithField(LoggerKey, name))
	}
	if caller == nil {
		caller = bridge.NoCaller
	}
	return &Channel{name: name, entry: e.(*logrus.Entry), caller: caller}
}

// Channel writes entries through one named logrus entry.
type Channel struct {
	name   string
	entry  *logrus.Entry
	caller bridge.CallerResolver
}

func (c *Channel) Name() string { return c.name }

// Log hands msg to Entry.Log, which stringifies it only for enabled levels.
// The caller is recorded as "file" and "func" fields because logrus
// overwrites Entry.Caller with its own lookup when ReportCaller is on.
func (c *Channel) Log(code int, msg fmt.Stringer, exc bridge.ExcInfo) {
	level := logrus.Level(code)
	if !c.entry.Logger.IsLevelEnabled(level) {
		return
	}
	caller := c.caller.FindCaller(false, 1)

	entry := c.entry.WithTime(bridge.TimeOf(msg))
	if caller.Defined() {
		entry = entry.WithFields(logrus.Fields{
			logrus.FieldKeyFile: caller.File + ":" + strconv.Itoa(caller.Line),
			logrus.FieldKeyFunc: caller.Function,
		})
	}
	if exc.Present() {
		entry = entry.WithError(exc.Value).WithFields(logrus.Fields{
			"exc_type":  exc.TypeName(),
			"traceback": exc.Traceback(),
		})
	}
	entry.Log(level, msg)
}
