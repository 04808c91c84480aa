package out

import (
	"context"
	"log/slog"

	"vclock/internal/modules/feedback/domain"
	"vclock/internal/platform/logging"
)

// LogNotifier emits notifications as log records.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) LogNotifier {
	return LogNotifier{logger: logging.OrDiscard(logger)}
}

func (n LogNotifier) Notify(ctx context.Context, msg domain.Notification) error {
	n.logger.LogAttrs(ctx, slog.LevelInfo, "notification",
		slog.String("title", msg.Title),
		slog.String("body", msg.Body),
		slog.String("tag", msg.Tag),
		slog.Bool("require_interaction", msg.RequireInteraction),
	)
	return nil
}

// LogVibrator records vibration patterns; terminals have no motor.
type LogVibrator struct {
	logger *slog.Logger
}

func NewLogVibrator(logger *slog.Logger) LogVibrator {
	return LogVibrator{logger: logging.OrDiscard(logger)}
}

func (v LogVibrator) Vibrate(ctx context.Context, pattern []int) error {
	v.logger.LogAttrs(ctx, slog.LevelDebug, "vibrate", slog.Any("pattern_ms", pattern))
	return nil
}
