// Package observability provides logging, metrics, and tracing.
package observability

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger is the process-wide structured logger. Diagnostic output goes to
// stderr so stdout stays reserved for seed progress.
var Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

// LogContextKey is a type for context keys used by the logging package.
type LogContextKey string

// RunIDKey carries the identifier of the current seed run.
const RunIDKey LogContextKey = "run_id"

// runHandler is a slog.Handler that adds the seed run ID to every record.
type runHandler struct {
	slog.Handler
}

func (h *runHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := RunIDFromContext(ctx); id != "" {
		r.AddAttrs(slog.String("run_id", id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *runHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &runHandler{h.Handler.WithAttrs(attrs)}
}

func (h *runHandler) WithGroup(name string) slog.Handler {
	return &runHandler{h.Handler.WithGroup(name)}
}

// NewLogger builds a logger writing to w: JSON when format is "json",
// human-readable text otherwise.
func NewLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(&runHandler{handler})
}

// SetLogger replaces the process-wide logger and the slog default.
func SetLogger(l *slog.Logger) {
	Logger = l
	slog.SetDefault(l)
}

// WithRunID returns a new context carrying the seed run ID.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RunIDKey, id)
}

// RunIDFromContext retrieves the seed run ID from the context.
func RunIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(RunIDKey).(string); ok {
		return id
	}
	return ""
}

// RepoLogger provides structured logging for repository operations.
type RepoLogger struct {
	logger *slog.Logger
}

// NewRepoLogger creates a RepoLogger; a nil logger falls back to Logger.
func NewRepoLogger(logger *slog.Logger) *RepoLogger {
	if logger == nil {
		logger = Logger
	}
	return &RepoLogger{logger: logger}
}

// LogOperation logs a completed repository operation at debug level.
func (l *RepoLogger) LogOperation(ctx context.Context, operation, table string, rows int64) {
	l.logger.DebugContext(ctx, "repository "+operation,
		slog.String("table", table),
		slog.String("operation", operation),
		slog.Int64("rows", rows),
	)
}

// LogError logs a failed repository operation.
func (l *RepoLogger) LogError(ctx context.Context, err error, operation, table string) {
	l.logger.ErrorContext(ctx, "repository error",
		slog.String("table", table),
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}
