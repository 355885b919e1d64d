package xbridge

import (
	"time"
)

// Field is a key/value pair bound to a Logger or attached to an Entry.
type Field struct {
	Key   string
	Value any
}

// Helpers for ergonomics.

func Str(k, v string) Field             { return Field{Key: k, Value: v} }
func Int(k string, v int) Field         { return Field{Key: k, Value: v} }
func Int64(k string, v int64) Field     { return Field{Key: k, Value: v} }
func Uint64(k string, v uint64) Field   { return Field{Key: k, Value: v} }
func Float64(k string, v float64) Field { return Field{Key: k, Value: v} }
func Bool(k string, v bool) Field       { return Field{Key: k, Value: v} }
func Dur(k string, v time.Duration) Field {
	return Field{Key: k, Value: v}
}
func Time(k string, v time.Time) Field { return Field{Key: k, Value: v} }
func Err(k string, e error) Field      { return Field{Key: k, Value: e} }
func Bytes(k string, b []byte) Field   { return Field{Key: k, Value: b} }
func Any(k string, v any) Field        { return Field{Key: k, Value: v} }
