package slogadapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trickstertwo/xclock"

	"github.com/trickstertwo/xbridge"
	"github.com/trickstertwo/xbridge/bridge"
	"github.com/trickstertwo/xbridge/bridge/bridgetest"
)

var at = time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)

func newLogger(t *testing.T, cfg Config) (*xbridge.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	cfg.Writer = &buf
	l, err := xbridge.NewBuilder().
		AddObserver(NewObserver(cfg)).
		WithClock(xclock.NewFrozen(at)).
		Build()
	require.NoError(t, err)
	return l, &buf
}

func decode(t *testing.T, line []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(line, &m), "line=%s", line)
	return m
}

func TestLevels_RoundTrip(t *testing.T) {
	t.Parallel()
	for _, l := range xbridge.Levels() {
		code, ok := Levels().ToLegacy(l)
		require.True(t, ok)

		byCode, err := Levels().FromLegacy(slog.Level(code))
		require.NoError(t, err)
		assert.Equal(t, l, byCode)

		byName, err := Levels().FromLegacy(slog.Level(code).String())
		require.NoError(t, err)
		assert.Equal(t, byCode, byName)
	}
	assert.Equal(t, "ERROR+4", Levels().LegacyName(int(LevelCritical)))
}

func TestObserver_JSON(t *testing.T) {
	t.Parallel()
	l, buf := newLogger(t, Config{BackendLevel: xbridge.LevelDebug, ChannelName: "app", Caller: true})

	_, file, line, _ := runtime.Caller(0)
	l.Warn().Str("who", "ann").Msg("hi {who}")

	m := decode(t, buf.Bytes())
	assert.Equal(t, "hi ann", m["msg"])
	assert.Equal(t, "WARN", m["level"])
	assert.Equal(t, "app", m[LoggerKey])

	ts, err := time.Parse(time.RFC3339Nano, m["time"].(string))
	require.NoError(t, err)
	assert.True(t, ts.Equal(at), "time %s", ts)

	src, ok := m["source"].(map[string]any)
	require.True(t, ok, "source missing: %v", m)
	assert.Equal(t, file, src["file"])
	assert.Equal(t, float64(line+1), src["line"])
}

func TestObserver_Failure(t *testing.T) {
	t.Parallel()
	l, buf := newLogger(t, Config{BackendLevel: xbridge.LevelDebug})

	l.Critical().Err(errors.New("boom")).Msg("crashed")

	m := decode(t, buf.Bytes())
	assert.Equal(t, "crashed", m["msg"])
	assert.Equal(t, "ERROR+4", m["level"])
	assert.Equal(t, bridge.DefaultChannelName, m[LoggerKey])
	assert.Equal(t, "*errors.errorString", m["exc_type"])
	assert.Equal(t, "boom", m["exc_value"])
	assert.Contains(t, m["traceback"], "TestObserver_Failure")
}

func TestObserver_TextFormat(t *testing.T) {
	t.Parallel()
	l, buf := newLogger(t, Config{Format: FormatText, BackendLevel: xbridge.LevelDebug})

	l.Info().Int("n", 3).Msg("got {n} items")
	assert.Contains(t, buf.String(), `msg="got 3 items"`)
	assert.Contains(t, buf.String(), "level=INFO")
}

func TestObserver_BackendFilterIsLazy(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	f := &bridgetest.CountingFormatter{}
	h := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError})
	obs := bridge.New(New(h), bridge.WithFormatter(f))

	obs.OnEvent(xbridge.Event{xbridge.KeyLevel: xbridge.LevelWarn, xbridge.KeyFormat: "dropped"})
	assert.Zero(t, f.Calls())
	assert.Zero(t, buf.Len())

	obs.OnEvent(xbridge.Event{xbridge.KeyLevel: xbridge.LevelError, xbridge.KeyFormat: "kept"})
	assert.Equal(t, 1, f.Calls())
	assert.Equal(t, "kept", decode(t, buf.Bytes())["msg"])
}

func TestObserver_MissingLevelIsInfo(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	obs := bridge.New(FromLogger(slog.New(slog.NewJSONHandler(&buf, nil))))

	obs.OnEvent(xbridge.Event{xbridge.KeyText: "no level"})
	m := decode(t, buf.Bytes())
	assert.Equal(t, "INFO", m["level"])
	assert.Equal(t, "no level", m["msg"])
}

func TestBackend_ChannelsAreNamed(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	b := New(slog.NewJSONHandler(&buf, nil))

	a := b.Channel("a", nil)
	a.Log(int(slog.LevelInfo), bridge.NewMessage(xbridge.Event{xbridge.KeyText: "one"}, nil), bridge.NoExcInfo)
	first := decode(t, buf.Bytes())
	buf.Reset()

	b.Channel("b", nil).Log(int(slog.LevelInfo), bridge.NewMessage(xbridge.Event{xbridge.KeyText: "two"}, nil), bridge.NoExcInfo)
	second := decode(t, buf.Bytes())

	assert.Equal(t, "a", a.Name())
	assert.Equal(t, "a", first[LoggerKey])
	assert.Equal(t, "b", second[LoggerKey])
}
