package safego

import (
	"context"
	"runtime/debug"

	"github.com/kanosa0101/TODO-List/pkg/logger"
)

// Go runs fn in a new goroutine and logs instead of crashing on panic.
func Go(ctx context.Context, fn func()) {
	go func() {
		defer Recovery(ctx)
		fn()
	}()
}

// Recovery must be deferred directly.
func Recovery(ctx context.Context) {
	e := recover()
	if e == nil {
		return
	}

	if ctx != nil && ctx.Err() != nil {
		logger.Warn("[SafeGo] panic after context done (%v): %v", ctx.Err(), e)
	}

	logger.Error("[SafeGo] catch panic err: %v\nstacktrace:\n%s", e, debug.Stack())
}
