// Command xbridge emits structured events through a configured logging
// backend and prints backend level tables.
package main

import (
	"os"

	"github.com/trickstertwo/xbridge"
	slogadapter "github.com/trickstertwo/xbridge/adapter/slog"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		l := slogadapter.Use(slogadapter.Config{
			Writer:       os.Stderr,
			Format:       slogadapter.FormatText,
			MinLevel:     xbridge.LevelDebug,
			BackendLevel: xbridge.LevelDebug,
		})
		l.Error().Str("error", err.Error()).Msg("xbridge: {error}")
		os.Exit(1)
	}
}
