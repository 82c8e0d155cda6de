package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/DSchif/zoo-maker-sub000/task"
)

// Logging returns middleware that logs handler start and completion.
func Logging(logger *slog.Logger) Middleware {
	return func(ctx context.Context, t *task.Task, next Handler) error {
		logger.Debug("handler started",
			slog.String("task_id", t.ID.String()),
			slog.String("kind", string(t.Kind)),
			slog.String("target", t.Target.String()),
		)

		start := time.Now()
		err := next(ctx)
		elapsed := time.Since(start)

		if err != nil {
			logger.Error("handler failed",
				slog.String("task_id", t.ID.String()),
				slog.String("kind", string(t.Kind)),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
		} else {
			logger.Debug("handler completed",
				slog.String("task_id", t.ID.String()),
				slog.String("kind", string(t.Kind)),
				slog.Duration("elapsed", elapsed),
			)
		}

		return err
	}
}
