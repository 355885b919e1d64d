package xbridge

// Observer receives every event a Logger emits (Observer pattern).
// Implementations MUST be concurrency-safe when shared between goroutines.
type Observer interface {
	OnEvent(e Event)
}

// ObserverFunc adapter.
type ObserverFunc func(Event)

func (f ObserverFunc) OnEvent(e Event) { f(e) }
