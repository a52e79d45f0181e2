package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// ErrPanic is returned in place of a command that panicked.
var ErrPanic = errors.New("command panicked")

// Handler processes one command: its lowercased keyword and the fields that
// followed it.
type Handler interface {
	Handle(ctx context.Context, name string, args []string) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, name string, args []string) error

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, name string, args []string) error {
	return f(ctx, name, args)
}

// Middleware wraps a Handler.
type Middleware func(Handler) Handler

// Chain wraps h so that the first middleware runs outermost.
func Chain(h Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Logger attaches logger to the command context and logs each command once
// it is done. Everything is logged at debug level: the caller reports failed
// commands to the user itself.
func Logger(logger zerolog.Logger) Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, name string, args []string) error {
			start := time.Now()
			err := next.Handle(logger.WithContext(ctx), name, args)

			logger.Debug().
				Err(err).
				Str("command", name).
				Int("fields", len(args)).
				Dur("took", time.Since(start)).
				Msg("command processed")
			return err
		})
	}
}

// Recoverer turns a panic in a command into an error so the next command
// still runs.
func Recoverer(next Handler) Handler {
	return HandlerFunc(func(ctx context.Context, name string, args []string) (err error) {
		defer func() {
			if p := recover(); p != nil {
				zerolog.Ctx(ctx).Debug().Str("command", name).Interface("panic", p).Msg("recovered from panic")
				err = fmt.Errorf("%w: %v", ErrPanic, p)
			}
		}()
		return next.Handle(ctx, name, args)
	})
}
