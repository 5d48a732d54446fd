package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/mcoot/blockdrop/internal/model"
)

// Recover runs fn and converts a panic into an error wrapping model.ErrPanicked.
// The panic is logged with its stack under the given name.
func Recover(logger *slog.Logger, name string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic recovered",
				slog.String("handler", name),
				slog.Any("error", r),
				slog.String("stack", string(debug.Stack())),
			)
			err = fmt.Errorf("%s: %w: %v", name, model.ErrPanicked, r)
		}
	}()

	return fn()
}

// Recovery creates middleware that stops a panicking command from taking
// down the dispatcher goroutine
func Recovery(logger *slog.Logger) Middleware {
	return func(next CommandHandler) CommandHandler {
		return func(cmd model.Command) (result model.CommandResult, err error) {
			err = Recover(logger, string(cmd.Type), func() error {
				var inner error
				result, inner = next(cmd)
				return inner
			})
			return result, err
		}
	}
}
