// Package logger sets up the process-wide JSON slog handler and moves
// request-scoped loggers and trace ids through context.Context, so store,
// service and handler logs for one request share a trace_id.
package logger
