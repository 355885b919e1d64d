// Package metrics counts bridged events in Prometheus.
package metrics

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/trickstertwo/xbridge"
)

// DefaultNamespace prefixes metric names when none is configured.
const DefaultNamespace = "xbridge"

// PromCollector implements bridge.MetricsCollector with two counters:
// <ns>_bridged_events_total{channel,level} and
// <ns>_bridged_failures_total{channel}.
type PromCollector struct {
	events   *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewPromCollector registers the counters on the default registerer.
func NewPromCollector(namespace string) (*PromCollector, error) {
	return NewPromCollectorWithRegistry(namespace, prometheus.DefaultRegisterer)
}

// NewPromCollectorWithRegistry registers the counters on reg. A nil reg
// defaults to the global registerer; counters already registered there are
// reused.
func NewPromCollectorWithRegistry(namespace string, reg prometheus.Registerer) (*PromCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bridged_events_total",
		Help:      "Events delivered to a logging backend channel",
	}, []string{"channel", "level"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bridged_failures_total",
		Help:      "Bridged events that carried a failure",
	}, []string{"channel"})

	var err error
	if events, err = register(reg, events); err != nil {
		return nil, err
	}
	if failures, err = register(reg, failures); err != nil {
		return nil, err
	}
	return &PromCollector{events: events, failures: failures}, nil
}

func register(reg prometheus.Registerer, c *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
			return existing, nil
		}
	}
	return nil, err
}

// Delivered increments the event counter, and the failure counter when the
// event carried one.
func (c *PromCollector) Delivered(channel string, level xbridge.Level, failure bool) {
	c.events.WithLabelValues(channel, levelLabel(level)).Inc()
	if failure {
		c.failures.WithLabelValues(channel).Inc()
	}
}

func levelLabel(l xbridge.Level) string {
	if l.Valid() {
		return l.String()
	}
	return strconv.Itoa(int(l))
}
