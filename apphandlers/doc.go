// Package apphandlers provides middleware for strada applications.
//
// # Recovery Middleware
//
// RecoveryMiddleware converts panics in downstream handlers into handler
// failures, so the application's error policy applies instead of the
// process crashing.
//
//	app := strada.New().
//	    Use(apphandlers.RecoveryMiddleware(apphandlers.RecoveryConfig{})).
//	    Get("/", index).
//	    MustBuild()
//
// # Request ID Middleware
//
// RequestIDMiddleware assigns a unique ID to each request, exposes it to
// downstream handlers as a request-scoped value, and echoes it in the
// response header.
//
// # Access Log Middleware
//
// AccessLogMiddleware writes one structured log line per matched request,
// at a level derived from the response status.
package apphandlers
