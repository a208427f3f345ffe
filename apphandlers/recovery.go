package apphandlers

import (
	"fmt"

	"github.com/vitalvas/strada"
)

// RecoveryConfig configures the Recovery middleware behaviour.
type RecoveryConfig struct {
	// LogFunc is an optional callback invoked with the request context and
	// the recovered value when a panic occurs. When nil, no logging is
	// performed.
	LogFunc func(c *strada.Ctx, recovered any)
}

// RecoveryMiddleware returns a middleware that recovers from panics in
// downstream handlers. A recovered panic becomes a handler failure, which
// the application converts according to its error policy.
func RecoveryMiddleware(cfg RecoveryConfig) strada.Middleware {
	return func(next strada.Handler) strada.Handler {
		return func(c *strada.Ctx) (err error) {
			defer func() {
				if recovered := recover(); recovered != nil {
					if cfg.LogFunc != nil {
						cfg.LogFunc(c, recovered)
					}

					err = fmt.Errorf("panic in handler: %v", recovered)
				}
			}()

			return next(c)
		}
	}
}
