package apphandlers

import (
	"github.com/google/uuid"

	"github.com/vitalvas/strada"
)

// requestIDLocal keys the request ID in the request-scoped value store.
const requestIDLocal = "apphandlers.request_id"

// RequestIDFromCtx returns the request ID stored by RequestIDMiddleware.
// Returns an empty string if no ID is present.
func RequestIDFromCtx(c *strada.Ctx) string {
	if id, ok := c.Local(requestIDLocal).(string); ok {
		return id
	}

	return ""
}

// RequestIDConfig configures the Request ID middleware behaviour.
type RequestIDConfig struct {
	// HeaderName overrides the response header used to expose the request
	// ID. Defaults to "X-Request-ID" when empty.
	HeaderName string

	// GenerateFunc is an optional callback that returns a new unique ID.
	// Defaults to GenerateUUIDv4.
	GenerateFunc func() string
}

// RequestIDMiddleware returns a middleware that assigns a unique ID to
// each request. The ID is stored as a request-scoped value (for downstream
// handlers) and set on the response header (for the caller).
func RequestIDMiddleware(cfg RequestIDConfig) strada.Middleware {
	headerName := cfg.HeaderName
	if headerName == "" {
		headerName = "X-Request-ID"
	}

	generate := cfg.GenerateFunc
	if generate == nil {
		generate = GenerateUUIDv4
	}

	return func(next strada.Handler) strada.Handler {
		return func(c *strada.Ctx) error {
			id := generate()
			if id != "" {
				c.Set(requestIDLocal, id)
				c.SetHeader(headerName, id)
			}

			return next(c)
		}
	}
}

// GenerateUUIDv4 returns a new UUID v4 string.
//
// Spec reference: https://www.rfc-editor.org/rfc/rfc9562#section-5.4
func GenerateUUIDv4() string {
	return uuid.New().String()
}

// GenerateUUIDv7 returns a new UUID v7 string. UUIDs are time-ordered:
// IDs generated later sort lexicographically after earlier ones.
//
// Spec reference: https://www.rfc-editor.org/rfc/rfc9562#section-5.7
func GenerateUUIDv7() string {
	return uuid.Must(uuid.NewV7()).String()
}
