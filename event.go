package xbridge

import "time"

// Well-known event keys. Producers set them; observers read them.
const (
	KeyLevel     = "log_level"
	KeyFailure   = "log_failure"
	KeyFormat    = "log_format"
	KeyText      = "log_text"
	KeyNamespace = "log_namespace"
	KeySource    = "log_source"
	KeyTime      = "log_time"
	KeyLogger    = "log_logger"
)

// Event is one structured log occurrence: a map of named fields. Once an
// event has been emitted it must be treated as read-only.
type Event map[string]any

// Level returns log_level, or LevelInfo when the key is absent or not a Level.
func (e Event) Level() Level {
	if l, ok := e[KeyLevel].(Level); ok {
		return l
	}
	return LevelInfo
}

// Failure returns log_failure, or nil.
func (e Event) Failure() *Failure {
	f, _ := e[KeyFailure].(*Failure)
	return f
}

// Format returns the log_format template, if any.
func (e Event) Format() (string, bool) {
	s, ok := e[KeyFormat].(string)
	return s, ok
}

// Time returns log_time, or the zero time.
func (e Event) Time() time.Time {
	t, _ := e[KeyTime].(time.Time)
	return t
}

// Namespace returns log_namespace, or "".
func (e Event) Namespace() string {
	s, _ := e[KeyNamespace].(string)
	return s
}

// Clone returns a shallow copy of e.
func (e Event) Clone() Event {
	out := make(Event, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
