package bridge

import (
	"github.com/trickstertwo/xbridge"
)

// DefaultChannelName names the backend channel events are written to.
const DefaultChannelName = "xbridge"

// Observer is an xbridge.Observer writing every event to one backend channel.
type Observer struct {
	name     string
	depth    int
	channel  Channel
	levels   *xbridge.LevelMapping
	infoCode int
	format   Formatter
	metrics  MetricsCollector
}

type options struct {
	name      string
	depth     int
	resolver  CallerResolver
	formatter Formatter
	metrics   MetricsCollector
}

// Option customizes Observer construction.
type Option func(*options)

// WithName selects the backend channel (default DefaultChannelName).
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithStackDepth sets the StackCaller depth (default DefaultStackDepth).
func WithStackDepth(depth int) Option {
	return func(o *options) {
		if depth >= 0 {
			o.depth = depth
		}
	}
}

// WithCallerResolver replaces the StackCaller entirely.
func WithCallerResolver(r CallerResolver) Option {
	return func(o *options) {
		o.resolver = r
	}
}

// WithFormatter selects how messages are rendered (default
// xbridge.DefaultFormatter()).
func WithFormatter(f Formatter) Option {
	return func(o *options) {
		if f != nil {
			o.formatter = f
		}
	}
}

// WithMetrics reports every delivery to m.
func WithMetrics(m MetricsCollector) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// New acquires the named channel from backend, handing it a caller resolver
// owned by this Observer.
func New(backend Backend, opts ...Option) *Observer {
	cfg := options{
		name:      DefaultChannelName,
		depth:     DefaultStackDepth,
		formatter: xbridge.DefaultFormatter(),
		metrics:   NoopMetricsCollector{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	resolver := cfg.resolver
	if resolver == nil {
		resolver = StackCaller{Depth: cfg.depth}
	}

	levels := backend.Levels()
	infoCode, _ := levels.ToLegacy(xbridge.LevelInfo)
	return &Observer{
		name:     cfg.name,
		depth:    cfg.depth,
		channel:  backend.Channel(cfg.name, resolver),
		levels:   levels,
		infoCode: infoCode,
		format:   cfg.formatter,
		metrics:  cfg.metrics,
	}
}

// Name is the backend channel name.
func (o *Observer) Name() string { return o.name }

// StackDepth is the depth given to the default StackCaller.
func (o *Observer) StackDepth() int { return o.depth }

// Channel is the backend channel handle.
func (o *Observer) Channel() Channel { return o.channel }

// OnEvent writes e to the channel. Nothing is formatted here; the channel
// stringifies the message only if it keeps the record.
func (o *Observer) OnEvent(e xbridge.Event) {
	level := e.Level()
	code, ok := o.levels.ToLegacy(level)
	if !ok {
		code = o.infoCode
	}
	failure := e.Failure()
	exc := ExcInfoOf(failure)

	o.channel.Log(code, NewMessage(e, o.format), exc)

	o.metrics.Delivered(o.name, level, failure != nil)
}
