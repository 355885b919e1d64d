package xbridge

import "github.com/trickstertwo/xclock"

// Config for constructing a Logger (Factory data structure).
type Config struct {
	Observers []Observer
	MinLevel  Level
	Namespace string
	Source    any
	Clock     xclock.Clock // optional; defaults to xclock.Now()
}

// Builder separates construction from representation (Builder pattern).
type Builder struct {
	cfg Config
}

func NewBuilder() *Builder {
	return &Builder{cfg: Config{MinLevel: LevelDebug}}
}

func (b *Builder) AddObserver(o Observer) *Builder {
	b.cfg.Observers = append(b.cfg.Observers, o)
	return b
}

func (b *Builder) WithMinLevel(l Level) *Builder {
	b.cfg.MinLevel = l
	return b
}

func (b *Builder) WithNamespace(ns string) *Builder {
	b.cfg.Namespace = ns
	return b
}

func (b *Builder) WithSource(src any) *Builder {
	b.cfg.Source = src
	return b
}

func (b *Builder) WithClock(c xclock.Clock) *Builder {
	b.cfg.Clock = c
	return b
}

// Build constructs the Logger (Factory + Builder).
func (b *Builder) Build() (*Logger, error) {
	if len(b.cfg.Observers) == 0 {
		return nil, ErrNoObserver
	}
	return newLogger(b.cfg), nil
}
