package middleware

import (
	"context"

	"tarifario/internal/app/commands"
)

// Validatable is implemented by commands that can check their own shape
// before reaching a handler.
type Validatable interface {
	Validate() error
}

// Validation rejects self-validating commands before dispatch.
func Validation() CommandMiddleware {
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			if v, ok := cmd.(Validatable); ok {
				if err := v.Validate(); err != nil {
					return nil, err
				}
			}
			return nextFn(ctx, cmd)
		})
	}
}
