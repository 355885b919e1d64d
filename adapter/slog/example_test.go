package slogadapter_test

import (
	"log/slog"
	"os"

	"github.com/trickstertwo/xbridge"
	slogadapter "github.com/trickstertwo/xbridge/adapter/slog"
)

func ExampleUse() {
	l := slogadapter.Use(slogadapter.Config{
		Writer:       os.Stdout,
		MinLevel:     xbridge.LevelInfo,
		BackendLevel: xbridge.LevelDebug,
		Format:       slogadapter.FormatText,
		HandlerOptions: &slog.HandlerOptions{
			// Drop the timestamp so the output is stable.
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey && len(groups) == 0 {
					return slog.Attr{}
				}
				return a
			},
		},
	})

	l.Debug().Msg("filtered by MinLevel")
	xbridge.Warn().Str("disk", "sda").Int("pct", 93).Msg("disk {disk} at {pct}%")

	// Output:
	// level=WARN msg="disk sda at 93%" logger=xbridge
}
