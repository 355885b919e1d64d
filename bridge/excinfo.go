package bridge

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pkg/errors"

	"github.com/trickstertwo/xbridge"
)

// ExcInfo is the (type, value, traceback) triple a backend logs for a
// failure. The zero value, NoExcInfo, means "no exception".
type ExcInfo struct {
	Type  reflect.Type
	Value error
	Trace errors.StackTrace
}

// NoExcInfo is the "no exception" sentinel.
var NoExcInfo = ExcInfo{}

// ExcInfoOf extracts exception info from f; a nil f yields NoExcInfo.
func ExcInfoOf(f *xbridge.Failure) ExcInfo {
	if f == nil {
		return NoExcInfo
	}
	return ExcInfo{Type: f.Type(), Value: f.Value(), Trace: f.StackTrace()}
}

// Present reports whether x carries a failure.
func (x ExcInfo) Present() bool { return x.Value != nil }

// TypeName renders Type, or "" for NoExcInfo.
func (x ExcInfo) TypeName() string {
	if x.Type == nil {
		return ""
	}
	return x.Type.String()
}

// Traceback renders Trace on demand.
func (x ExcInfo) Traceback() string {
	if len(x.Trace) == 0 {
		return ""
	}
	return strings.TrimPrefix(fmt.Sprintf("%+v", x.Trace), "\n")
}
