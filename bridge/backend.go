package bridge

import (
	"fmt"

	"github.com/trickstertwo/xbridge"
)

// Backend is a legacy logging system seen through its named channels.
type Backend interface {
	// Levels is the backend's static level table.
	Levels() *xbridge.LevelMapping
	// Channel looks up or creates the named channel and returns a handle
	// that resolves call sites with caller. Handles never share resolvers.
	Channel(name string, caller CallerResolver) Channel
}

// Channel is one named logger of a Backend.
type Channel interface {
	Name() string
	// Log writes one record at the backend level code. msg must only be
	// stringified once the backend has decided to write the record. Log
	// calls its CallerResolver directly, never through a helper, so the
	// configured stack depth stays exact.
	Log(code int, msg fmt.Stringer, exc ExcInfo)
}
