package mailparse

import (
	"context"
	"log/slog"
)

type noopLoggerHandler struct{}

func (n noopLoggerHandler) Enabled(context.Context, slog.Level) bool {
	return false
}

func (n noopLoggerHandler) Handle(context.Context, slog.Record) error {
	return nil
}

func (n noopLoggerHandler) WithAttrs([]slog.Attr) slog.Handler {
	return n
}

func (n noopLoggerHandler) WithGroup(string) slog.Handler {
	return n
}

func noopLogger() *slog.Logger {
	return slog.New(noopLoggerHandler{})
}

// recovery reasons logged by the parser
const (
	reasonNoBoundaryParam       = "no-boundary-param"
	reasonNoOpeningBoundary     = "no-opening-boundary"
	reasonNoNewlineAfterMarker  = "no-newline-after-boundary"
	reasonNoTerminatingBoundary = "missing-terminating-boundary"
	reasonMaxDepth              = "max-depth"
)
