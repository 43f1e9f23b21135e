package logger

import (
	"log/slog"
	"time"
)

// Outcomes slower than this are logged at warn level.
const slowThreshold = 2 * time.Second

// Shared helpers for the instrumented paths. Everything funnels through the
// default slog logger so the colorized handler applies.

// LogInteraction records the outcome of one command or component handler.
func LogInteraction(kind, label, name, userID, userName string, duration time.Duration, err error) {
	attrs := []any{
		slog.String("type", kind),
		slog.String("name", name),
		slog.String("user_id", userID),
		slog.String("user_name", userName),
		slog.Duration("took", duration),
	}

	switch {
	case err != nil:
		slog.Error(label+" failed", append(attrs,
			slog.Any("error", err),
			slog.String("status", "failed"),
		)...)
	case duration > slowThreshold:
		slog.Warn(label+" executed slowly", append(attrs,
			slog.String("status", "slow"),
		)...)
	default:
		slog.Info(label+" completed", append(attrs,
			slog.String("status", "success"),
		)...)
	}
}

// LogQuery records one instrumented statement against the pool.
func LogQuery(operation, query string, args []any, took time.Duration, err error, extra ...any) {
	attrs := []any{
		slog.String("type", "db"),
		slog.String("operation", operation),
		slog.String("query", query),
		slog.Any("args", args),
		slog.Duration("took", took),
	}
	if err != nil {
		slog.Error("Query failed", append(attrs, slog.Any("error", err))...)
		return
	}
	slog.Info("Query executed", append(attrs, extra...)...)
}

// LogSystem logs lifecycle events.
func LogSystem(msg string, attrs ...any) {
	slog.Info(msg, append([]any{slog.String("type", "sys")}, attrs...)...)
}

// LogError logs failures outside an interaction context.
func LogError(msg string, err error, attrs ...any) {
	slog.Error(msg, append([]any{
		slog.String("type", "error"),
		slog.Any("error", err),
	}, attrs...)...)
}
