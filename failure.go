package xbridge

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// Failure captures an error together with its dynamic type and a stack trace.
// It is stored in events under log_failure.
type Failure struct {
	typ   reflect.Type
	value error
	trace errors.StackTrace
}

// NewFailure captures err. An error that already carries a pkg/errors stack
// trace keeps it; otherwise the trace starts at the caller of NewFailure.
// NewFailure(nil) returns nil.
func NewFailure(err error) *Failure {
	return newFailure(err, 3)
}

// newFailure drops the first skip frames of a freshly captured trace;
// frame 0 is traceOf.
func newFailure(err error, skip int) *Failure {
	if err == nil {
		return nil
	}
	return &Failure{
		typ:   reflect.TypeOf(err),
		value: err,
		trace: traceOf(err, skip),
	}
}

func traceOf(err error, skip int) errors.StackTrace {
	var st stackTracer
	if errors.As(err, &st) {
		return st.StackTrace()
	}
	// WithStack records frames starting at traceOf itself.
	trace := errors.WithStack(err).(stackTracer).StackTrace()
	if skip < len(trace) {
		trace = trace[skip:]
	}
	return trace
}

// Type is the dynamic type of the captured error.
func (f *Failure) Type() reflect.Type { return f.typ }

// TypeName is Type rendered as a string, e.g. "*fs.PathError".
func (f *Failure) TypeName() string {
	if f.typ == nil {
		return ""
	}
	return f.typ.String()
}

// Value is the captured error.
func (f *Failure) Value() error { return f.value }

// StackTrace returns the captured frames, innermost first.
func (f *Failure) StackTrace() errors.StackTrace { return f.trace }

// Traceback renders the stack trace, one "function\n\tfile:line" per frame.
func (f *Failure) Traceback() string {
	if len(f.trace) == 0 {
		return ""
	}
	return strings.TrimPrefix(fmt.Sprintf("%+v", f.trace), "\n")
}

func (f *Failure) Error() string {
	if f == nil || f.value == nil {
		return ""
	}
	return f.value.Error()
}

func (f *Failure) Unwrap() error { return f.value }
