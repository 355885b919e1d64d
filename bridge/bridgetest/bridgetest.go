// Package bridgetest provides an in-memory bridge.Backend and a counting
// formatter for tests.
package bridgetest

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/trickstertwo/xbridge"
	"github.com/trickstertwo/xbridge/bridge"
)

// Legacy codes used by Recorder, numbered the way classic logging libraries
// number their levels.
const (
	CodeDebug    = 10
	CodeInfo     = 20
	CodeWarning  = 30
	CodeError    = 40
	CodeCritical = 50
)

var codeNames = map[int]string{
	CodeDebug:    "DEBUG",
	CodeInfo:     "INFO",
	CodeWarning:  "WARNING",
	CodeError:    "ERROR",
	CodeCritical: "CRITICAL",
}

// Levels is the Recorder's level table.
var Levels = xbridge.NewLevelMapping(map[xbridge.Level]int{
	xbridge.LevelDebug:    CodeDebug,
	xbridge.LevelInfo:     CodeInfo,
	xbridge.LevelWarn:     CodeWarning,
	xbridge.LevelError:    CodeError,
	xbridge.LevelCritical: CodeCritical,
}, func(code int) string {
	if n, ok := codeNames[code]; ok {
		return n
	}
	return fmt.Sprintf("Level %d", code)
})

// Record is one accepted Log call.
type Record struct {
	Channel string
	Code    int
	Text    string
	Message fmt.Stringer
	Exc     bridge.ExcInfo
	Caller  bridge.Caller
}

// Recorder keeps every record at or above MinCode. Records below it are
// dropped before the message is stringified, like a real backend.
type Recorder struct {
	MinCode int

	mu      sync.Mutex
	records []Record
}

// NewRecorder returns a Recorder keeping records at min and above.
func NewRecorder(minLevel xbridge.Level) *Recorder {
	code, _ := Levels.ToLegacy(minLevel)
	return &Recorder{MinCode: code}
}

func (r *Recorder) Levels() *xbridge.LevelMapping { return Levels }

func (r *Recorder) Channel(name string, caller bridge.CallerResolver) bridge.Channel {
	if caller == nil {
		caller = bridge.NoCaller
	}
	return &channel{r: r, name: name, caller: caller}
}

// Records returns a copy of what was kept so far.
func (r *Recorder) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Record(nil), r.records...)
}

// Last returns the most recent record; ok is false when there is none.
func (r *Recorder) Last() (rec Record, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.records) == 0 {
		return Record{}, false
	}
	return r.records[len(r.records)-1], true
}

type channel struct {
	r      *Recorder
	name   string
	caller bridge.CallerResolver
}

func (c *channel) Name() string { return c.name }

func (c *channel) Log(code int, msg fmt.Stringer, exc bridge.ExcInfo) {
	if code < c.r.MinCode {
		return
	}
	caller := c.caller.FindCaller(false, 1)
	rec := Record{
		Channel: c.name,
		Code:    code,
		Text:    msg.String(),
		Message: msg,
		Exc:     exc,
		Caller:  caller,
	}
	c.r.mu.Lock()
	c.r.records = append(c.r.records, rec)
	c.r.mu.Unlock()
}

// CountingFormatter formats with xbridge's default formatter and counts
// how often it was asked to.
type CountingFormatter struct {
	calls atomic.Int64
}

func (f *CountingFormatter) Format(e xbridge.Event) string {
	f.calls.Add(1)
	return xbridge.FormatEvent(e)
}

// Calls is the number of Format calls so far.
func (f *CountingFormatter) Calls() int { return int(f.calls.Load()) }
