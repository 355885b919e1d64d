package bridge

import (
	"runtime"

	"github.com/trickstertwo/xbridge"
)

// DefaultStackDepth is the frame distance from CallerResolver.FindCaller to
// code that calls Observer.OnEvent directly: FindCaller, Channel.Log,
// Observer.OnEvent. Producers that sit in front of the observer add their
// own frames, e.g. xbridge.LoggerStackDepth.
const DefaultStackDepth = 3

// LoggerStackDepth is the depth for an Observer fed by an xbridge.Logger.
const LoggerStackDepth = DefaultStackDepth + xbridge.LoggerStackDepth

// Caller is a resolved source location. Stack is reserved for stack
// information and is left empty by StackCaller.
type Caller struct {
	PC       uintptr
	File     string
	Line     int
	Function string
	Stack    string
}

// Defined reports whether the location was resolved.
func (c Caller) Defined() bool { return c.PC != 0 }

// CallerResolver locates the call site a channel reports for a record.
// stackInfo asks for stack information; stackLevel is the backend's own
// notion of frames to skip.
type CallerResolver interface {
	FindCaller(stackInfo bool, stackLevel int) Caller
}

// CallerResolverFunc adapter.
type CallerResolverFunc func(stackInfo bool, stackLevel int) Caller

func (f CallerResolverFunc) FindCaller(stackInfo bool, stackLevel int) Caller {
	return f(stackInfo, stackLevel)
}

// StackCaller walks exactly Depth frames up from FindCaller, ignoring both
// arguments. It holds no mutable state and is safe for concurrent use.
type StackCaller struct {
	Depth int
}

func (s StackCaller) FindCaller(bool, int) Caller {
	var pcs [1]uintptr
	// skip runtime.Callers itself; FindCaller is depth 0.
	if runtime.Callers(s.Depth+1, pcs[:]) == 0 {
		return Caller{}
	}
	frame, _ := runtime.CallersFrames(pcs[:]).Next()
	return Caller{
		PC:       pcs[0],
		File:     frame.File,
		Line:     frame.Line,
		Function: frame.Function,
	}
}

// NoCaller resolves nothing; channels then omit caller metadata.
var NoCaller CallerResolver = CallerResolverFunc(func(bool, int) Caller { return Caller{} })
