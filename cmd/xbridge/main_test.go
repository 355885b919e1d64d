package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trickstertwo/xbridge"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEmit(t *testing.T) {
	t.Parallel()
	for _, backend := range []string{"slog", "zap", "zerolog", "logrus"} {
		t.Run(backend, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "emit.log")
			_, err := run(t, "emit", "-b", backend, "-o", path,
				"--level", "warn",
				"--format", "disk {disk} at {pct}%",
				"--field", "disk=sda", "--field", "pct=93",
				"--fail", "out of space")
			require.NoError(t, err)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(data), "disk sda at 93%")
			assert.Contains(t, string(data), "out of space")
		})
	}
}

func TestEmit_ConfigFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	out := filepath.Join(dir, "out.log")
	cfgPath := filepath.Join(dir, "xbridge.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("backend: zap\nchannel: cli\noutput: "+out+"\n"), 0o644))

	_, err := run(t, "emit", "-c", cfgPath, "--format", "configured")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "configured")
	assert.Contains(t, string(data), `"logger":"cli"`)
}

func TestEmit_BadInput(t *testing.T) {
	t.Parallel()
	_, err := run(t, "emit", "--level", "loud")
	assert.Error(t, err)

	_, err = run(t, "emit", "--field", "novalue")
	assert.Error(t, err)

	_, err = run(t, "emit", "-b", "syslog")
	assert.Error(t, err)
}

func TestLevels(t *testing.T) {
	t.Parallel()
	out, err := run(t, "levels", "logrus")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1+len(xbridge.Levels()))
	assert.Contains(t, lines[0], "LEVEL")
	assert.Contains(t, lines[3], "warning")
	assert.Contains(t, lines[5], "fatal")
}

func TestLevels_FromBackendFlag(t *testing.T) {
	t.Parallel()
	out, err := run(t, "-b", "zap", "levels")
	require.NoError(t, err)
	assert.Contains(t, out, "dpanic")
}

func TestParseFields(t *testing.T) {
	t.Parallel()
	fs, err := parseFields([]string{"n=3", "r=0.5", "ok=true", "s=x=y"})
	require.NoError(t, err)
	require.Len(t, fs, 4)
	assert.Equal(t, int64(3), fs[0].Value)
	assert.Equal(t, 0.5, fs[1].Value)
	assert.Equal(t, true, fs[2].Value)
	assert.Equal(t, "x=y", fs[3].Value)
}
