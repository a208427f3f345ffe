package strada

import (
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/vitalvas/strada/render"
	"github.com/vitalvas/strada/routing"
)

// convertFailure turns a raised failure into a response per the
// configured policy. The failure is stored in the request's ambient
// error slot before any custom handler runs, so downstream collaborators
// can inspect it.
func (a *App) convertFailure(c *Ctx, err error) *Response {
	status := statusFor(err)
	c.failure = err

	var mna *routing.MethodNotAllowedError
	if errors.As(err, &mna) {
		// RFC 9110 Section 15.5.6: a 405 response must carry Allow.
		c.header.Set("Allow", strings.Join(mna.Allowed, ", "))
	}

	if status >= http.StatusInternalServerError && a.dumpErrors {
		a.logger.Error("request failed",
			zap.String("method", c.method),
			zap.String("path", c.path),
			zap.String("kind", failureKind(err)),
			zap.Error(err),
			zap.Stack("stack"),
		)
	}

	if status >= http.StatusInternalServerError && a.showExceptions {
		return a.diagnostic(c, err)
	}

	if handler := a.errorHandlers[status]; handler != nil {
		// The custom handler starts from the mapped status and a clean
		// body; it may override either.
		c.status = status
		c.body.Reset()

		herr := handler(c)
		if herr == nil {
			return c.response()
		}

		var halt *HaltError
		if errors.As(herr, &halt) {
			c.status = halt.StatusCode
			c.body.Reset()
			c.body.WriteString(halt.Body)

			return c.response()
		}

		// The custom handler itself failed; fall back to the generic
		// response rather than recursing.
		a.logger.Error("custom error handler failed",
			zap.Int("status", status),
			zap.Error(herr),
		)
	}

	return a.generic(c, status)
}

// diagnostic renders the development-only error page exposing the
// failure kind, message, and originating context.
func (a *App) diagnostic(c *Ctx, err error) *Response {
	var page strings.Builder
	page.WriteString("<!DOCTYPE html>\n<html><head><title>")
	page.WriteString(html.EscapeString(failureKind(err)))
	page.WriteString("</title></head><body>\n<h1>")
	page.WriteString(html.EscapeString(failureKind(err)))
	page.WriteString("</h1>\n<p>")
	page.WriteString(html.EscapeString(err.Error()))
	page.WriteString("</p>\n<h2>Request</h2>\n<pre>")
	page.WriteString(html.EscapeString(c.method + " " + c.path))
	for name, value := range c.Params() {
		page.WriteString(html.EscapeString(fmt.Sprintf("\n%s = %s", name, value)))
	}
	page.WriteString("</pre>\n</body></html>\n")

	c.status = statusFor(err)
	c.header.Set("Content-Type", "text/html; charset=utf-8")
	c.body.Reset()
	c.body.WriteString(page.String())

	return c.response()
}

// generic produces the default response for a failure status.
func (a *App) generic(c *Ctx, status int) *Response {
	c.status = status
	c.header.Set("Content-Type", "text/plain; charset=utf-8")
	c.body.Reset()
	c.body.WriteString(http.StatusText(status))

	return c.response()
}

// failureKind names the failure taxonomy entry an error belongs to.
func failureKind(err error) string {
	var (
		nf   *routing.NotFoundError
		mna  *routing.MethodNotAllowedError
		rerr *render.Error
	)

	switch {
	case errors.As(err, &nf):
		return "NotFoundError"
	case errors.As(err, &mna):
		return "MethodNotAllowedError"
	case errors.As(err, &rerr):
		return "RenderError"
	default:
		return "HandlerError"
	}
}
