package middleware

import (
	"context"
	"log/slog"
	"time"

	"tarifario/internal/app/commands"
	"tarifario/internal/app/queries"
)

// CommandLogging logs every dispatched command with its outcome and duration.
func CommandLogging(logger *slog.Logger) CommandMiddleware {
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			start := time.Now()
			res, err := nextFn(ctx, cmd)
			if logger != nil {
				if err != nil {
					logger.Warn("command failed", "key", cmd.Key(), "duration", time.Since(start), "error", err)
				} else {
					logger.Info("command handled", "key", cmd.Key(), "duration", time.Since(start))
				}
			}
			return res, err
		})
	}
}

// QueryLogging logs query execution failures; successful reads stay quiet.
func QueryLogging(logger *slog.Logger) QueryMiddleware {
	return func(next queries.Bus) queries.Bus {
		nextFn := wrapQuery(next)
		return queryFunc(func(ctx context.Context, q queries.Query) (any, error) {
			start := time.Now()
			res, err := nextFn(ctx, q)
			if err != nil && logger != nil {
				logger.Warn("query failed", "key", q.Key(), "duration", time.Since(start), "error", err)
			}
			return res, err
		})
	}
}
