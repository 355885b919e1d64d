package xbridge

import (
	"sync"
	"time"
)

// Entry is a fluent builder (Builder pattern) for a single event.
// API: Logger().Info().Str("from", ...).Dur("after", dur).Msg("moved from {from} after {after}")
type Entry struct {
	l       *Logger
	level   Level
	fields  []Field
	failure *Failure
}

var entryPool = sync.Pool{
	New: func() any { return &Entry{fields: make([]Field, 0, 8)} },
}

func getEntry(l *Logger, level Level) *Entry {
	en := entryPool.Get().(*Entry)
	en.l = l
	en.level = level
	en.fields = en.fields[:0]
	en.failure = nil
	return en
}

func (en *Entry) putBack() {
	// allow GC of large backing arrays by capping
	if cap(en.fields) > 128 {
		en.fields = make([]Field, 0, 8)
	}
	en.l = nil
	en.level = 0
	en.failure = nil
	entryPool.Put(en)
}

func (en *Entry) add(k string, v any) *Entry {
	en.fields = append(en.fields, Field{Key: k, Value: v})
	return en
}

// Field builders (zerolog-style)

func (en *Entry) Str(k, v string) *Entry               { return en.add(k, v) }
func (en *Entry) Int(k string, v int) *Entry           { return en.add(k, v) }
func (en *Entry) Int64(k string, v int64) *Entry       { return en.add(k, v) }
func (en *Entry) Uint64(k string, v uint64) *Entry     { return en.add(k, v) }
func (en *Entry) Float64(k string, v float64) *Entry   { return en.add(k, v) }
func (en *Entry) Bool(k string, v bool) *Entry         { return en.add(k, v) }
func (en *Entry) Dur(k string, v time.Duration) *Entry { return en.add(k, v) }
func (en *Entry) Time(k string, v time.Time) *Entry    { return en.add(k, v) }
func (en *Entry) Bytes(k string, v []byte) *Entry      { return en.add(k, v) }
func (en *Entry) Any(k string, v any) *Entry           { return en.add(k, v) }

// Fields appends already built fields.
func (en *Entry) Fields(fs ...Field) *Entry {
	en.fields = append(en.fields, fs...)
	return en
}

// Err captures err as the event's log_failure. A nil err is ignored.
func (en *Entry) Err(err error) *Entry {
	if err == nil {
		return en
	}
	en.failure = newFailure(err, 3)
	return en
}

// Msg terminates the builder and emits the event with format as its
// log_format template.
func (en *Entry) Msg(format string) {
	en.l.emit(en.level, format, en.fields, en.failure)
	en.putBack()
}
