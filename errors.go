package xbridge

import "errors"

var (
	// ErrUnknownLevel is returned when a level code or name has no mapping.
	ErrUnknownLevel = errors.New("xbridge: unknown level")
	// ErrNoObserver is returned by Builder.Build when no observer was added.
	ErrNoObserver = errors.New("xbridge: no observer configured")
)
