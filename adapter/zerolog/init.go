package zerologadapter

import (
	"io"
	"os"
	"strconv"

	"github.com/trickstertwo/xbridge"
)

// Env:
//
//	XBRIDGE_BACKEND_LEVEL     : debug|info|warn|error|critical, backend filter (default info)
//	XBRIDGE_CONSOLE=1         : enable ConsoleWriter (pretty output)
//	XBRIDGE_CALLER=1          : include caller
//	XBRIDGE_STACK_DEPTH       : caller frames to skip (default bridge.LoggerStackDepth)
//	XBRIDGE_CHANNEL           : channel name (default "xbridge")
func init() {
	xbridge.RegisterDefaultObserverFactory(func(w io.Writer) xbridge.Observer {
		level, err := xbridge.ParseLevel(os.Getenv("XBRIDGE_BACKEND_LEVEL"))
		if err != nil {
			level = xbridge.LevelInfo
		}
		return NewObserver(Config{
			Writer:       w,
			MinLevel:     xbridge.LevelDebug,
			BackendLevel: level,
			Console:      os.Getenv("XBRIDGE_CONSOLE") == "1",
			Caller:       os.Getenv("XBRIDGE_CALLER") == "1",
			ChannelName:  os.Getenv("XBRIDGE_CHANNEL"),
			StackDepth:   parseInt(os.Getenv("XBRIDGE_STACK_DEPTH"), 0),
		})
	})
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}
