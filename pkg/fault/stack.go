package fault

import (
	"fmt"
	"runtime"
	"strings"
)

// stackFrames is the maximum number of frames captured per origin trace.
const stackFrames = 32

// captureStack formats the calling goroutine's stack, skipping the given
// number of frames on top of captureStack itself. Constructors pass a skip
// that hides this package's own construction frames, so the first line of
// every trace is the caller's call site.
func captureStack(skip int) string {
	pc := make([]uintptr, stackFrames)
	n := runtime.Callers(skip+2, pc)
	if n == 0 {
		return ""
	}

	var b strings.Builder
	frames := runtime.CallersFrames(pc[:n])
	for {
		frame, more := frames.Next()
		if frame.Function != "" {
			fmt.Fprintf(&b, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return b.String()
}
