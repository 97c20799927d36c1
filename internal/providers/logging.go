package providers

import (
	"context"
	"log/slog"

	"jeopardy-stats-service/internal/logging"
)

// logWithProvider emits a log entry if logger is non-nil and always includes provider name.
func logWithProvider(ctx context.Context, logger *slog.Logger, level slog.Level, provider string, msg string, args ...any) {
	if logger == nil {
		return
	}
	args = append(args, slog.String(logging.FieldProvider, provider))
	logger.Log(ctx, level, msg, args...)
}

// LogInfo logs an informational provider event.
func LogInfo(ctx context.Context, logger *slog.Logger, provider, msg string, args ...any) {
	logWithProvider(ctx, logger, slog.LevelInfo, provider, msg, args...)
}

// LogWarn logs a recoverable provider failure.
func LogWarn(ctx context.Context, logger *slog.Logger, provider, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, slog.Any("error", err))
	}
	logWithProvider(ctx, logger, slog.LevelWarn, provider, msg, args...)
}
