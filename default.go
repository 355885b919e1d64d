package xbridge

import (
	"io"
	"os"
)

// defaultObserverFactory is set by a backend package in its init() to avoid
// import cycles. Default() uses it to build a logger.
var defaultObserverFactory func(w io.Writer) Observer

// RegisterDefaultObserverFactory registers the constructor used by
// xbridge.Default(). Backend packages call it from init().
// Example (in adapter/zerolog):
//
//	func init() {
//	  xbridge.RegisterDefaultObserverFactory(func(w io.Writer) xbridge.Observer {
//	    return bridge.New(zerologadapter.New(zerolog.New(w)), bridge.WithStackDepth(...))
//	  })
//	}
func RegisterDefaultObserverFactory(f func(io.Writer) Observer) {
	defaultObserverFactory = f
}

// Default creates a logger publishing to the registered observer factory,
// writing to os.Stdout at LevelDebug. Panics if no factory is registered.
func Default() *Logger {
	if defaultObserverFactory == nil {
		panic("xbridge: no default observer registered. Import a backend such as adapter/zerolog or call xbridge.RegisterDefaultObserverFactory")
	}
	return newLogger(Config{
		Observers: []Observer{defaultObserverFactory(os.Stdout)},
		MinLevel:  LevelDebug,
	})
}

// New creates a default logger (via Default()) and sets it as global.
// It returns the global logger for convenience.
func New() *Logger {
	l := Default()
	SetGlobal(l)
	return l
}

// UseObserver builds a logger publishing to o (and any extra observers) with
// the provided min level, sets it as global and returns it.
func UseObserver(o Observer, min Level, more ...Observer) *Logger {
	l, _ := NewBuilder().
		AddObserver(o).
		WithMinLevel(min).
		Build()
	for _, x := range more {
		l.AddObserver(x)
	}
	SetGlobal(l)
	return l
}
