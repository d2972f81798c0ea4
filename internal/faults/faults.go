// Package faults logs failures nobody else handles: panics inside event
// handlers and errors from fire-and-forget work. It never recovers state;
// it only keeps the process alive and leaves a diagnostic record.
package faults

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"strings"
)

// Guard runs fn and logs a panic raised by it as an uncaught error.
func Guard(logger *slog.Logger, event string, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			caught(logger, event, rec)
		}
	}()
	fn()
}

// Go runs fn on its own goroutine. A returned error or a panic is logged as
// an unhandled rejection. The returned channel closes when fn is done.
func Go(logger *slog.Logger, fn func() error) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("unhandled rejection", "reason", fmt.Sprint(rec))
			}
		}()
		if err := fn(); err != nil {
			logger.Error("unhandled rejection", "reason", err)
		}
	}()
	return done
}

// Recover is HTTP middleware that turns a handler panic into a 500.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					w.Header().Set("Connection", "close")
					caught(logger, r.Method+" "+r.URL.Path, rec)
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func caught(logger *slog.Logger, event string, rec any) {
	file, line := panicSite()
	logger.Error("error caught",
		"event", event,
		"message", fmt.Sprint(rec),
		"source", file,
		"line", line,
	)
}

// panicSite finds the first frame below the panic that is not in the
// runtime or in this package.
func panicSite() (string, int) {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		if !strings.HasPrefix(f.Function, "runtime.") && !strings.Contains(f.Function, "internal/faults.") {
			return f.File, f.Line
		}
		if !more {
			return "unknown", 0
		}
	}
}
