package errors

import (
	"github.com/go-drift/driftgesture/pkg/logging"
)

// LogHandler is an ErrorHandler that writes errors to the shared slog logger.
type LogHandler struct {
	// Verbose adds stack traces to the logged records.
	Verbose bool
}

// HandleError logs a GestureError at warn level.
func (h *LogHandler) HandleError(err *GestureError) {
	if err == nil {
		return
	}
	attrs := []any{"op", err.Op, "kind", err.Kind.String(), "err", err.Err}
	if err.ViewID != 0 {
		attrs = append(attrs, "view", err.ViewID)
	}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, "stack", err.StackTrace)
	}
	logging.Logger().Warn("gesture error", attrs...)
}

// HandlePanic logs a PanicError at error level.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	attrs := []any{"op", err.Op, "value", err.Value}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, "stack", err.StackTrace)
	}
	logging.Logger().Error("gesture panic", attrs...)
}
