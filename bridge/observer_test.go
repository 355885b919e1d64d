package bridge_test

import (
	"errors"
	"fmt"
	"runtime"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trickstertwo/xbridge"
	"github.com/trickstertwo/xbridge/bridge"
	"github.com/trickstertwo/xbridge/bridge/bridgetest"
)

func TestObserver_Defaults(t *testing.T) {
	t.Parallel()
	obs := bridge.New(bridgetest.NewRecorder(xbridge.LevelDebug))

	assert.Equal(t, bridge.DefaultChannelName, obs.Name())
	assert.Equal(t, bridge.DefaultStackDepth, obs.StackDepth())
	assert.Equal(t, bridge.DefaultChannelName, obs.Channel().Name())
}

func TestObserver_Options(t *testing.T) {
	t.Parallel()
	obs := bridge.New(bridgetest.NewRecorder(xbridge.LevelDebug),
		bridge.WithName("payments"),
		bridge.WithStackDepth(5),
		bridge.WithName(""), // ignored
		nil,
	)
	assert.Equal(t, "payments", obs.Name())
	assert.Equal(t, 5, obs.StackDepth())
}

func TestObserver_LevelTranslation(t *testing.T) {
	t.Parallel()
	rec := bridgetest.NewRecorder(xbridge.LevelDebug)
	obs := bridge.New(rec)

	want := map[xbridge.Level]int{
		xbridge.LevelDebug:    bridgetest.CodeDebug,
		xbridge.LevelInfo:     bridgetest.CodeInfo,
		xbridge.LevelWarn:     bridgetest.CodeWarning,
		xbridge.LevelError:    bridgetest.CodeError,
		xbridge.LevelCritical: bridgetest.CodeCritical,
	}
	for level, code := range want {
		obs.OnEvent(xbridge.Event{xbridge.KeyLevel: level, xbridge.KeyFormat: "x"})
		last, ok := rec.Last()
		require.True(t, ok)
		assert.Equal(t, code, last.Code, level.String())
	}
}

func TestObserver_MissingLevelIsInfo(t *testing.T) {
	t.Parallel()
	rec := bridgetest.NewRecorder(xbridge.LevelDebug)
	obs := bridge.New(rec)

	obs.OnEvent(xbridge.Event{xbridge.KeyFormat: "no level"})
	obs.OnEvent(xbridge.Event{xbridge.KeyLevel: "loud", xbridge.KeyFormat: "wrong type"})
	obs.OnEvent(xbridge.Event{xbridge.KeyLevel: xbridge.Level(3), xbridge.KeyFormat: "unmapped"})

	records := rec.Records()
	require.Len(t, records, 3)
	for _, r := range records {
		assert.Equal(t, bridgetest.CodeInfo, r.Code, r.Text)
	}
}

func TestObserver_ExcInfo(t *testing.T) {
	t.Parallel()
	rec := bridgetest.NewRecorder(xbridge.LevelDebug)
	obs := bridge.New(rec)

	cause := errors.New("disk full")
	obs.OnEvent(xbridge.Event{
		xbridge.KeyLevel:   xbridge.LevelError,
		xbridge.KeyFormat:  "write failed",
		xbridge.KeyFailure: xbridge.NewFailure(cause),
	})
	obs.OnEvent(xbridge.Event{xbridge.KeyFormat: "fine"})

	records := rec.Records()
	require.Len(t, records, 2)

	exc := records[0].Exc
	require.True(t, exc.Present())
	assert.NotNil(t, exc.Type)
	assert.Same(t, cause, exc.Value)
	assert.Equal(t, "*errors.errorString", exc.TypeName())
	assert.NotEmpty(t, exc.Trace)
	assert.Contains(t, exc.Traceback(), "TestObserver_ExcInfo")

	assert.False(t, records[1].Exc.Present())
	assert.Equal(t, bridge.NoExcInfo, records[1].Exc)
	assert.Empty(t, records[1].Exc.TypeName())
	assert.Empty(t, records[1].Exc.Traceback())
}

func TestObserver_NoFormattingWhenFiltered(t *testing.T) {
	t.Parallel()
	f := &bridgetest.CountingFormatter{}
	rec := bridgetest.NewRecorder(xbridge.LevelWarn)
	obs := bridge.New(rec, bridge.WithFormatter(f))

	obs.OnEvent(xbridge.Event{xbridge.KeyLevel: xbridge.LevelDebug, xbridge.KeyFormat: "{boom}"})
	obs.OnEvent(xbridge.Event{xbridge.KeyLevel: xbridge.LevelInfo, xbridge.KeyFormat: "{boom}"})
	assert.Equal(t, 0, f.Calls())
	assert.Empty(t, rec.Records())

	obs.OnEvent(xbridge.Event{xbridge.KeyLevel: xbridge.LevelError, xbridge.KeyFormat: "kept"})
	assert.Equal(t, 1, f.Calls())
}

func TestObserver_CallerIsOnEventCaller(t *testing.T) {
	t.Parallel()
	rec := bridgetest.NewRecorder(xbridge.LevelDebug)
	obs := bridge.New(rec)

	_, file, line, _ := runtime.Caller(0)
	obs.OnEvent(xbridge.Event{xbridge.KeyFormat: "here"})

	last, ok := rec.Last()
	require.True(t, ok)
	require.True(t, last.Caller.Defined())
	assert.Equal(t, file, last.Caller.File)
	assert.Equal(t, line+1, last.Caller.Line)
	assert.Contains(t, last.Caller.Function, "TestObserver_CallerIsOnEventCaller")
}

func TestObserver_CallerThroughLogger(t *testing.T) {
	t.Parallel()
	rec := bridgetest.NewRecorder(xbridge.LevelDebug)
	obs := bridge.New(rec, bridge.WithStackDepth(bridge.LoggerStackDepth))
	l, err := xbridge.NewBuilder().AddObserver(obs).Build()
	require.NoError(t, err)

	_, file, line, _ := runtime.Caller(0)
	l.Info().Str("k", "v").Msg("entry {k}")
	l.Emit(xbridge.LevelWarn, "emit")
	l.Failure("failure", errors.New("bad"))

	records := rec.Records()
	require.Len(t, records, 3)
	for i, r := range records {
		assert.Equal(t, file, r.Caller.File, r.Text)
		assert.Equal(t, line+1+i, r.Caller.Line, r.Text)
	}
	assert.Equal(t, "entry v", records[0].Text)
}

func TestObserver_SameNameKeepsOwnStackDepth(t *testing.T) {
	t.Parallel()
	rec := bridgetest.NewRecorder(xbridge.LevelDebug)
	direct := bridge.New(rec, bridge.WithName("same"))
	wrapped := bridge.New(rec, bridge.WithName("same"), bridge.WithStackDepth(bridge.DefaultStackDepth+1))
	via := func(e xbridge.Event) { wrapped.OnEvent(e) }

	_, file, line, _ := runtime.Caller(0)
	direct.OnEvent(xbridge.Event{xbridge.KeyFormat: "direct"})
	via(xbridge.Event{xbridge.KeyFormat: "wrapped"})
	direct.OnEvent(xbridge.Event{xbridge.KeyFormat: "direct again"})

	records := rec.Records()
	require.Len(t, records, 3)
	for i, r := range records {
		assert.Equal(t, "same", r.Channel, r.Text)
		assert.Equal(t, file, r.Caller.File, r.Text)
		assert.Equal(t, line+1+i, r.Caller.Line, r.Text)
		assert.Contains(t, r.Caller.Function, "TestObserver_SameNameKeepsOwnStackDepth", r.Text)
	}
}

func TestObserver_NilErrorField(t *testing.T) {
	t.Parallel()
	rec := bridgetest.NewRecorder(xbridge.LevelDebug)
	obs := bridge.New(rec)

	var typed *nilPathError
	require.NotPanics(t, func() {
		obs.OnEvent(xbridge.Event{xbridge.KeyFormat: "open: {err}", "err": error(typed)})
		obs.OnEvent(xbridge.Event{xbridge.KeyFormat: "{missing}", "err": error(typed)})
	})

	records := rec.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "open: <nil>", records[0].Text)
	assert.Contains(t, records[1].Text, `"err": "<nil>"`)
}

type nilPathError struct{ path string }

func (e *nilPathError) Error() string { return "open " + e.path }

func TestObserver_CustomCallerResolver(t *testing.T) {
	t.Parallel()
	var gotStackLevel int
	fixed := bridge.CallerResolverFunc(func(stackInfo bool, stackLevel int) bridge.Caller {
		gotStackLevel = stackLevel
		return bridge.Caller{PC: 1, File: "fixed.go", Line: 7, Function: "fixed"}
	})
	rec := bridgetest.NewRecorder(xbridge.LevelDebug)
	obs := bridge.New(rec, bridge.WithCallerResolver(fixed))

	obs.OnEvent(xbridge.Event{xbridge.KeyFormat: "x"})
	last, _ := rec.Last()
	assert.Equal(t, "fixed.go", last.Caller.File)
	assert.Equal(t, 7, last.Caller.Line)
	assert.Equal(t, 1, gotStackLevel)
}

func TestNoCaller(t *testing.T) {
	t.Parallel()
	c := bridge.NoCaller.FindCaller(true, 3)
	assert.False(t, c.Defined())
}

type countingMetrics struct {
	delivered, failures int
	last                xbridge.Level
}

func (m *countingMetrics) Delivered(_ string, level xbridge.Level, failure bool) {
	m.delivered++
	m.last = level
	if failure {
		m.failures++
	}
}

func TestObserver_Metrics(t *testing.T) {
	t.Parallel()
	m := &countingMetrics{}
	obs := bridge.New(bridgetest.NewRecorder(xbridge.LevelDebug), bridge.WithMetrics(m))

	obs.OnEvent(xbridge.Event{xbridge.KeyLevel: xbridge.LevelWarn})
	obs.OnEvent(xbridge.Event{xbridge.KeyFailure: xbridge.NewFailure(errors.New("x"))})

	assert.Equal(t, 2, m.delivered)
	assert.Equal(t, 1, m.failures)
	assert.Equal(t, xbridge.LevelInfo, m.last)
}

func TestMessage_StringIsIdempotent(t *testing.T) {
	t.Parallel()
	e := xbridge.Event{
		xbridge.KeyFormat: "{who} moved {n} items",
		"who":             "ann",
		"n":               3,
	}
	before := e.Clone()
	msg := bridge.NewMessage(e, nil)

	first := msg.String()
	assert.Equal(t, "ann moved 3 items", first)
	assert.Equal(t, first, msg.String())
	assert.Equal(t, []byte(first), msg.Bytes())
	assert.Equal(t, before, e)
	assert.Equal(t, e, msg.Event())
}

func TestMessage_BytesIsValidUTF8(t *testing.T) {
	t.Parallel()
	msg := bridge.NewMessage(xbridge.Event{xbridge.KeyFormat: "{raw}", "raw": "a\xffb"}, nil)

	assert.Equal(t, "a\xffb", msg.String())
	got := msg.Bytes()
	assert.True(t, utf8.Valid(got))
	assert.Equal(t, "a\uFFFDb", string(got))
}

func TestMessage_FormatsEveryCall(t *testing.T) {
	t.Parallel()
	f := &bridgetest.CountingFormatter{}
	msg := bridge.NewMessage(xbridge.Event{xbridge.KeyText: "plain"}, f)

	assert.Equal(t, 0, f.Calls())
	_ = msg.String()
	_ = msg.Bytes()
	assert.Equal(t, 2, f.Calls())
}

func TestTimeOf(t *testing.T) {
	t.Parallel()
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, at, bridge.TimeOf(bridge.NewMessage(xbridge.Event{xbridge.KeyTime: at}, nil)))

	before := time.Now()
	got := bridge.TimeOf(stringer("plain"))
	assert.False(t, got.Before(before.Add(-time.Second)))
}

type stringer string

func (s stringer) String() string { return string(s) }

var _ fmt.Stringer = stringer("")
