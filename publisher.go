package xbridge

import (
	"sync"
	"sync/atomic"
)

type subscription struct {
	id uint64
	o  Observer
}

// Publisher fans each event out to its observers, synchronously and in
// registration order. Reads are lock-free; updates are serialized.
type Publisher struct {
	subs   atomic.Pointer[[]subscription] // immutable snapshot
	mu     sync.Mutex
	nextID uint64
}

// NewPublisher returns a Publisher delivering to obs.
func NewPublisher(obs ...Observer) *Publisher {
	p := &Publisher{}
	for _, o := range obs {
		if o != nil {
			p.Add(o)
		}
	}
	return p
}

// Add registers o and returns a function that removes it again. A nil o is
// not registered and the returned function does nothing.
func (p *Publisher) Add(o Observer) (remove func()) {
	if o == nil {
		return func() {}
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.nextID++
	id := p.nextID
	cur := p.snapshot()
	next := make([]subscription, len(cur), len(cur)+1)
	copy(next, cur)
	next = append(next, subscription{id: id, o: o})
	p.subs.Store(&next)

	return func() { p.remove(id) }
}

func (p *Publisher) remove(id uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	cur := p.snapshot()
	next := make([]subscription, 0, len(cur))
	for _, s := range cur {
		if s.id != id {
			next = append(next, s)
		}
	}
	p.subs.Store(&next)
}

func (p *Publisher) snapshot() []subscription {
	if s := p.subs.Load(); s != nil {
		return *s
	}
	return nil
}

// Len returns the number of registered observers.
func (p *Publisher) Len() int { return len(p.snapshot()) }

// OnEvent delivers e to every observer. Publisher is itself an Observer, so
// publishers nest.
func (p *Publisher) OnEvent(e Event) {
	for _, s := range p.snapshot() {
		s.o.OnEvent(e)
	}
}
