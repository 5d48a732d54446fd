package middleware

import (
	"log/slog"
	"time"

	"github.com/mcoot/blockdrop/internal/model"
)

// CommandHandler applies one command to the engine
type CommandHandler func(cmd model.Command) (model.CommandResult, error)

// Middleware wraps a CommandHandler
type Middleware func(CommandHandler) CommandHandler

// Chain wraps h so the first middleware is outermost
func Chain(h CommandHandler, mws ...Middleware) CommandHandler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Logging creates middleware that logs each applied command at debug level
func Logging(logger *slog.Logger) Middleware {
	return func(next CommandHandler) CommandHandler {
		return func(cmd model.Command) (model.CommandResult, error) {
			start := time.Now()

			result, err := next(cmd)

			attrs := []any{
				slog.String("command", string(cmd.Type)),
				slog.String("source", string(cmd.Source)),
				slog.Bool("moved", result.Moved),
				slog.Duration("duration", time.Since(start)),
			}
			if result.Outcome != nil {
				attrs = append(attrs, slog.Int("lines", result.Outcome.LinesRemoved))
			}
			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
				logger.Warn("command failed", attrs...)
				return result, err
			}
			logger.Debug("command applied", attrs...)
			return result, nil
		}
	}
}
