package strada

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/vitalvas/strada/config"
	"github.com/vitalvas/strada/render"
	"github.com/vitalvas/strada/session"
)

// Handler processes one request inside its execution context. A nil
// return means the context holds the response; any other error is
// intercepted at the dispatch boundary.
type Handler func(c *Ctx) error

// Middleware wraps a route handler. Middleware is applied once per route
// at build time, so dispatch never re-wraps handlers.
type Middleware func(next Handler) Handler

// Ctx is the per-request execution context. It is exclusively owned by
// the flow handling one request and is discarded at response completion;
// it must not be retained or shared across requests.
type Ctx struct {
	app    *App
	method string
	path   string
	params map[string]string
	splat  []string
	query  map[string]string
	locals map[string]any

	// failure is the ambient error slot: at most one value per request,
	// cleared at dispatch start, populated by the error handler before
	// custom error handlers run.
	failure error

	status int
	header http.Header
	body   bytes.Buffer
}

// Method returns the request method.
func (c *Ctx) Method() string {
	return c.method
}

// Path returns the request path as matched against the route table.
func (c *Ctx) Path() string {
	return c.path
}

// Environment returns the active environment tag.
func (c *Ctx) Environment() string {
	return c.app.settings.Environment()
}

// Settings returns the application's immutable configuration snapshot.
func (c *Ctx) Settings() *config.Snapshot {
	return c.app.settings
}

// Logger returns the application logger.
func (c *Ctx) Logger() *zap.Logger {
	return c.app.logger
}

// Sessions returns the session collaborator, or nil when none is
// configured.
func (c *Ctx) Sessions() session.Store {
	return c.app.sessions
}

// Param returns the named path parameter, falling back to the query
// parameter of the same name. Path parameters take precedence.
func (c *Ctx) Param(name string) string {
	if v, ok := c.params[name]; ok {
		return v
	}

	return c.query[name]
}

// Query returns a query parameter. Duplicate keys resolve to the last
// value.
func (c *Ctx) Query(name string) string {
	return c.query[name]
}

// Params returns the merged parameter map: query parameters overlaid
// with matched path parameters, path taking precedence on collision.
// Splat captures are not part of the map; see Splat.
func (c *Ctx) Params() map[string]string {
	merged := make(map[string]string, len(c.query)+len(c.params))
	for k, v := range c.query {
		merged[k] = v
	}
	for k, v := range c.params {
		merged[k] = v
	}

	return merged
}

// Splat returns the splat captures of the matched route in order of
// appearance.
func (c *Ctx) Splat() []string {
	return c.splat
}

// Set stores a request-scoped value, visible to later filters, the
// handler, and error handlers of the same request.
func (c *Ctx) Set(key string, value any) {
	if c.locals == nil {
		c.locals = make(map[string]any)
	}
	c.locals[key] = value
}

// Local returns a request-scoped value stored with Set.
func (c *Ctx) Local(key string) any {
	return c.locals[key]
}

// Call invokes a helper operation registered through Builder.Helpers.
func (c *Ctx) Call(name string, args ...any) (any, error) {
	op, ok := c.app.helperOps[name]
	if !ok {
		return nil, fmt.Errorf("strada: unknown helper %q", name)
	}

	return op(c, args...)
}

// Failure returns the ambient error slot: the failure currently being
// converted by the error handler, or nil. Custom error handlers use it
// to inspect what went wrong.
func (c *Ctx) Failure() error {
	return c.failure
}

// FailedWith records err in the ambient error slot. The dispatcher does
// this automatically for any failure it converts; a handler may use it
// to expose an underlying cause before returning a wrapper error.
func (c *Ctx) FailedWith(err error) {
	c.failure = err
}

// --- Response building ---

// Status sets the response status without touching the body.
func (c *Ctx) Status(code int) *Ctx {
	c.status = code
	return c
}

// StatusCode returns the response status accumulated so far, or zero
// when no handler has set one yet.
func (c *Ctx) StatusCode() int {
	return c.status
}

// SetHeader sets a response header.
func (c *Ctx) SetHeader(key, value string) *Ctx {
	c.header.Set(key, value)
	return c
}

// Text writes a plain-text response.
func (c *Ctx) Text(code int, body string) error {
	c.status = code
	c.setContentType("text/plain; charset=utf-8")
	c.body.Reset()
	c.body.WriteString(body)

	return nil
}

// HTML writes an HTML response.
func (c *Ctx) HTML(code int, body string) error {
	c.status = code
	c.setContentType("text/html; charset=utf-8")
	c.body.Reset()
	c.body.WriteString(body)

	return nil
}

// JSON encodes v as the response body. An encoding failure is raised to
// the error handler.
func (c *Ctx) JSON(code int, v any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return fmt.Errorf("strada: encode json response: %w", err)
	}

	c.status = code
	c.setContentType("application/json")
	c.body.Reset()
	c.body.Write(buf.Bytes())

	return nil
}

// Redirect writes a redirect response with a Location header.
func (c *Ctx) Redirect(code int, location string) error {
	c.status = code
	c.header.Set("Location", location)
	c.body.Reset()

	return nil
}

// Render renders a named template through the application's renderer and
// writes the result as an HTML response. Rendering failures are raised
// to the error handler as *render.Error.
func (c *Ctx) Render(name string, locals map[string]any) error {
	if c.app.renderer == nil {
		return &render.Error{Template: name, Cause: errNoRenderer}
	}

	out, err := c.app.renderer.Render(name, locals)
	if err != nil {
		return err
	}

	if c.status == 0 {
		c.status = http.StatusOK
	}
	c.setContentType("text/html; charset=utf-8")
	c.body.Reset()
	c.body.Write(out)

	return nil
}

// Halt stops the current handler or filter with a deliberate response.
func (c *Ctx) Halt(code int, body string) error {
	return &HaltError{StatusCode: code, Body: body}
}

// Pass abandons the current route; the dispatcher resumes the table scan
// at the next matching route and responds 404 when none remains.
func (c *Ctx) Pass() error {
	return ErrPass
}

func (c *Ctx) setContentType(value string) {
	if c.header.Get("Content-Type") == "" {
		c.header.Set("Content-Type", value)
	}
}

// response freezes the context's accumulated state into a Response.
func (c *Ctx) response() *Response {
	status := c.status
	if status == 0 {
		status = http.StatusOK
	}

	return &Response{
		StatusCode: status,
		Header:     c.header,
		Body:       c.body.Bytes(),
	}
}
