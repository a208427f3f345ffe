package strada

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/vitalvas/strada/routing"
)

// ConfigError reports an invalid route pattern or configuration detected
// while building the application. It is fatal to startup: Build returns
// it and MustBuild panics with it.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err == nil {
		return "strada: " + e.Reason
	}

	return fmt.Sprintf("strada: %s: %v", e.Reason, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// HaltError carries a deliberate early response out of a handler or
// filter. It is control flow, not a failure: the dispatcher converts it
// straight into a response without consulting the error handler.
type HaltError struct {
	StatusCode int
	Body       string
}

func (e *HaltError) Error() string {
	return fmt.Sprintf("strada: halted with status %d", e.StatusCode)
}

// ErrPass abandons the current route and resumes the table scan at the
// next matching route. Returned by Ctx.Pass.
var ErrPass = errors.New("strada: pass to next matching route")

// errNoRenderer is the cause of a render failure when the application
// was built without a template renderer.
var errNoRenderer = errors.New("no template renderer configured")

// statusFor maps a failure to its response status.
func statusFor(err error) int {
	var nf *routing.NotFoundError
	var mna *routing.MethodNotAllowedError

	switch {
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.As(err, &mna):
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}
