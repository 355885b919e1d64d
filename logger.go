package xbridge

import (
	"sync/atomic"
	"time"

	"github.com/trickstertwo/xclock"
)

// LoggerStackDepth is the number of frames a Logger adds between the
// caller's log statement and the observers it publishes to: the terminating
// call (Entry.Msg, Logger.Emit, Logger.Failure), Logger.emit and
// Publisher.OnEvent. Add it to an observer's own depth when the observer is
// fed by a Logger.
const LoggerStackDepth = 3

// Logger produces structured events and publishes them to its observers.
type Logger struct {
	pub        *Publisher
	minLevel   Level
	namespace  string
	source     any
	baseFields []Field
	clock      xclock.Clock // nil: xclock.Now()
}

// Factory: internal constructor.
func newLogger(cfg Config) *Logger {
	return &Logger{
		pub:       NewPublisher(cfg.Observers...),
		minLevel:  cfg.MinLevel,
		namespace: cfg.Namespace,
		source:    cfg.Source,
		clock:     cfg.Clock,
	}
}

// Facade: global access (Singleton + Facade).
var global atomic.Pointer[Logger]

// SetGlobal sets the global Logger (Singleton setter).
func SetGlobal(l *Logger) { global.Store(l) }

// L returns the global Logger; panic if unset to surface misconfig early.
func L() *Logger {
	l := global.Load()
	if l == nil {
		panic("xbridge: global logger not set. Build one and call xbridge.SetGlobal(...)")
	}
	return l
}

// Enabled reports whether events at 'level' would be published.
func (l *Logger) Enabled(level Level) bool {
	return level >= l.minLevel
}

// Namespace is the value written to log_namespace.
func (l *Logger) Namespace() string { return l.namespace }

// Level entry points returning fluent builders.

func (l *Logger) Debug() *Entry    { return getEntry(l, LevelDebug) }
func (l *Logger) Info() *Entry     { return getEntry(l, LevelInfo) }
func (l *Logger) Warn() *Entry     { return getEntry(l, LevelWarn) }
func (l *Logger) Error() *Entry    { return getEntry(l, LevelError) }
func (l *Logger) Critical() *Entry { return getEntry(l, LevelCritical) }

// WithLevel starts an entry at an arbitrary level.
func (l *Logger) WithLevel(level Level) *Entry { return getEntry(l, level) }

// With returns a child logger with bound fields. The child publishes to the
// same observers.
func (l *Logger) With(fs ...Field) *Logger {
	child := *l
	child.baseFields = append(copyFields(nil, l.baseFields), fs...)
	return &child
}

// WithNamespace returns a child logger writing ns to log_namespace.
func (l *Logger) WithNamespace(ns string) *Logger {
	child := *l
	child.namespace = ns
	return &child
}

// WithSource returns a child logger writing src to log_source.
func (l *Logger) WithSource(src any) *Logger {
	child := *l
	child.source = src
	return &child
}

// AddObserver registers o on the logger's publisher (shared with children
// and parents) and returns a function removing it. A nil o is ignored.
func (l *Logger) AddObserver(o Observer) (remove func()) {
	return l.pub.Add(o)
}

// Emit publishes an event at level with the given log_format template.
func (l *Logger) Emit(level Level, format string, fs ...Field) {
	l.emit(level, format, fs, nil)
}

// Failure publishes err at LevelCritical with log_failure set.
func (l *Logger) Failure(format string, err error, fs ...Field) {
	l.emit(LevelCritical, format, fs, newFailure(err, 3))
}

func (l *Logger) emit(level Level, format string, evFields []Field, failure *Failure) {
	if level < l.minLevel {
		return
	}
	e := make(Event, len(l.baseFields)+len(evFields)+7)
	for _, f := range l.baseFields {
		e[f.Key] = f.Value
	}
	for _, f := range evFields {
		e[f.Key] = f.Value
	}

	e[KeyLevel] = level
	if format != "" {
		e[KeyFormat] = format
	}
	e[KeyNamespace] = l.namespace
	if l.source != nil {
		e[KeySource] = l.source
	}
	e[KeyTime] = l.now()
	e[KeyLogger] = l
	if failure != nil {
		e[KeyFailure] = failure
	}

	l.pub.OnEvent(e)
}

func (l *Logger) now() time.Time {
	if l.clock != nil {
		return l.clock.Now()
	}
	return xclock.Now()
}

func copyFields(dst, src []Field) []Field {
	if len(src) == 0 {
		return dst
	}
	return append(dst, src...)
}
