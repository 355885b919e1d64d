package bridge

import (
	"fmt"
	"strings"
	"time"

	"github.com/trickstertwo/xclock"

	"github.com/trickstertwo/xbridge"
)

// Formatter renders an event as text. *xbridge.Formatter implements it.
type Formatter interface {
	Format(e xbridge.Event) string
}

// Message defers formatting of one event until a backend asks for the text.
// It never modifies the event, and every call formats afresh.
type Message struct {
	event     xbridge.Event
	formatter Formatter
}

// NewMessage wraps e. A nil f uses xbridge.DefaultFormatter().
func NewMessage(e xbridge.Event, f Formatter) *Message {
	if f == nil {
		f = xbridge.DefaultFormatter()
	}
	return &Message{event: e, formatter: f}
}

// String formats the event.
func (m *Message) String() string { return m.formatter.Format(m.event) }

// Bytes is String as valid UTF-8. Invalid byte sequences carried by event
// fields are replaced with U+FFFD.
func (m *Message) Bytes() []byte {
	return []byte(strings.ToValidUTF8(m.String(), "\uFFFD"))
}

// Event returns the wrapped event.
func (m *Message) Event() xbridge.Event { return m.event }

// TimeOf returns the log_time of the event behind msg, falling back to
// xclock.Now() for plain stringers and events without a time.
func TimeOf(msg fmt.Stringer) time.Time {
	if m, ok := msg.(interface{ Event() xbridge.Event }); ok {
		if t := m.Event().Time(); !t.IsZero() {
			return t
		}
	}
	return xclock.Now()
}
