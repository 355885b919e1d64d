// Package bridge forwards structured xbridge events into a legacy leveled
// logging backend.
//
// An Observer maps the event's level onto the backend's level table, turns
// log_failure into exception info, wraps the event in a Message that formats
// lazily, and hands all three to a backend Channel. The channel asks the
// CallerResolver it was built with for the call site, so caller metadata
// points at the original log statement rather than at bridge internals.
//
// Delivery is a plain synchronous call. The backend's write path may block
// (file or network destinations); nothing here prevents that, so do not pair
// an Observer with blocking destinations in programs that assume logging never
// blocks. Concurrent deliveries are safe exactly when the backend's write
// path is.
package bridge
