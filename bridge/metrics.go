package bridge

import "github.com/trickstertwo/xbridge"

// MetricsCollector is told about every event handed to a channel, whether
// or not the backend's level filter keeps it. Implementations must be
// concurrency-safe.
type MetricsCollector interface {
	Delivered(channel string, level xbridge.Level, failure bool)
}

type NoopMetricsCollector struct{}

func (NoopMetricsCollector) Delivered(string, xbridge.Level, bool) {}
