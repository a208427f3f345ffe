package apphandlers

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/vitalvas/strada"
)

// AccessLogConfig configures the access log middleware behaviour.
type AccessLogConfig struct {
	// Logger receives one entry per matched request. Required.
	Logger *zap.Logger

	// Message overrides the log message. Defaults to "request".
	Message string
}

// AccessLogMiddleware returns a middleware that logs each matched request
// with its method, path, status, and duration. The entry level follows
// the outcome: server failures log at error, client failures at warn,
// everything else at info.
func AccessLogMiddleware(cfg AccessLogConfig) strada.Middleware {
	message := cfg.Message
	if message == "" {
		message = "request"
	}

	return func(next strada.Handler) strada.Handler {
		return func(c *strada.Ctx) error {
			start := time.Now()
			err := next(c)

			// A passed route produced no response; the next candidate
			// will be logged instead.
			if errors.Is(err, strada.ErrPass) {
				return err
			}

			status := c.StatusCode()
			if status == 0 {
				status = http.StatusOK
			}

			var halt *strada.HaltError
			if errors.As(err, &halt) {
				status = halt.StatusCode
			}

			fields := []zap.Field{
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", status),
				zap.Duration("duration", time.Since(start)),
			}

			switch {
			case err != nil && halt == nil:
				cfg.Logger.Error(message, append(fields, zap.Error(err))...)
			case status >= http.StatusInternalServerError:
				cfg.Logger.Error(message, fields...)
			case status >= http.StatusBadRequest:
				cfg.Logger.Warn(message, fields...)
			default:
				cfg.Logger.Info(message, fields...)
			}

			return err
		}
	}
}
