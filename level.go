package xbridge

import (
	"fmt"
	"strings"
)

// Level is the severity of a structured event. Numeric values follow slog
// (debug -4, info 0, warn 4, error 8) and extend with Critical (12).
type Level int

const (
	LevelDebug    Level = -4
	LevelInfo     Level = 0
	LevelWarn     Level = 4
	LevelError    Level = 8
	LevelCritical Level = 12
)

var allLevels = [...]Level{LevelDebug, LevelInfo, LevelWarn, LevelError, LevelCritical}

// Levels returns the five structured levels in ascending severity.
func Levels() []Level {
	out := make([]Level, len(allLevels))
	copy(out, allLevels[:])
	return out
}

// Valid reports whether l is one of the five structured levels.
func (l Level) Valid() bool {
	switch l {
	case LevelDebug, LevelInfo, LevelWarn, LevelError, LevelCritical:
		return true
	}
	return false
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelCritical:
		return "critical"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel is the inverse of Level.String. It is case-insensitive and
// accepts the common aliases "warning" and "fatal".
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "critical", "fatal":
		return LevelCritical, nil
	default:
		return LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}
