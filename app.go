package strada

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/vitalvas/strada/config"
	"github.com/vitalvas/strada/render"
	"github.com/vitalvas/strada/routing"
	"github.com/vitalvas/strada/session"
)

// App is the immutable result of the build phase. All of its state is
// frozen before the first dispatch, so concurrent request-handling
// workers read it lock-free.
type App struct {
	table    *routing.Table
	settings *config.Snapshot
	renderer render.Renderer
	logger   *zap.Logger
	sessions session.Store

	helperOps map[string]HelperFunc
	appOps    map[string]ExtensionFunc

	before        []Handler
	after         []Handler
	errorHandlers map[int]Handler

	showExceptions bool
	dumpErrors     bool
	raiseErrors    bool
	normalizeSlash bool
}

// Response is the representation a dispatch produces. The embedding
// transport writes it to the wire.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Settings returns the immutable configuration snapshot.
func (a *App) Settings() *config.Snapshot {
	return a.settings
}

// Environment returns the active environment tag.
func (a *App) Environment() string {
	return a.settings.Environment()
}

// Logger returns the application logger.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Sessions returns the session collaborator, or nil.
func (a *App) Sessions() session.Store {
	return a.sessions
}

// RouteInfo describes one registered route.
type RouteInfo struct {
	Method  string
	Pattern string
}

// Routes lists the registered routes in registration order.
func (a *App) Routes() []RouteInfo {
	routes := a.table.Routes()
	infos := make([]RouteInfo, len(routes))
	for i, r := range routes {
		infos[i] = RouteInfo{Method: r.Method, Pattern: r.Pattern.Spec()}
	}

	return infos
}

// Call invokes an application-level operation registered by an
// extension.
func (a *App) Call(name string, args ...any) (any, error) {
	op, ok := a.appOps[name]
	if !ok {
		return nil, fmt.Errorf("strada: unknown extension operation %q", name)
	}

	return op(a, args...)
}

// Dispatch matches a request against the route table and invokes the
// selected handler inside a fresh execution context. Failures are
// converted into responses by the error handler; with raise_errors set,
// they are returned to the caller instead.
func (a *App) Dispatch(method, path string, query url.Values) (*Response, error) {
	path = a.normalizePath(path)

	c := &Ctx{
		app:    a,
		method: method,
		path:   path,
		query:  flattenQuery(query),
		header: make(http.Header),
	}
	// Ambient error slot starts empty for every request.
	c.failure = nil

	err := a.run(c)
	if err == nil {
		return c.response(), nil
	}

	var halt *HaltError
	if errors.As(err, &halt) {
		c.status = halt.StatusCode
		c.body.Reset()
		c.body.WriteString(halt.Body)

		return c.response(), nil
	}

	if a.raiseErrors {
		return nil, err
	}

	return a.convertFailure(c, err), nil
}

// run executes the filter and handler pipeline for one request.
func (a *App) run(c *Ctx) error {
	for _, filter := range a.before {
		if err := filter(c); err != nil && !errors.Is(err, ErrPass) {
			return err
		}
	}

	if err := a.runRoutes(c); err != nil {
		return err
	}

	for _, filter := range a.after {
		if err := filter(c); err != nil && !errors.Is(err, ErrPass) {
			return err
		}
	}

	return nil
}

// runRoutes scans the route table in registration order. A handler that
// passes resumes the scan at the next matching route.
func (a *App) runRoutes(c *Ctx) error {
	from := 0

	for {
		m, err := a.table.MatchFrom(c.method, c.path, from)
		if err != nil {
			return err
		}

		c.params = m.Params
		c.splat = m.Splat

		handler, ok := m.Route.Handler.(Handler)
		if !ok || handler == nil {
			return fmt.Errorf("strada: route %s %s has no handler", m.Route.Method, m.Route.Pattern.Spec())
		}

		err = handler(c)
		if errors.Is(err, ErrPass) {
			from = m.Next()
			continue
		}

		return err
	}
}

// ServeHTTP adapts the dispatch contract to net/http for embedding. The
// host process owns the listening socket.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	// Urlencoded form fields dispatch like query parameters.
	if err := r.ParseForm(); err == nil && len(r.PostForm) > 0 {
		query = r.Form
	}

	resp, err := a.Dispatch(r.Method, r.URL.Path, query)
	if err != nil {
		// Only reachable with raise_errors set; the failure escaped the
		// dispatch boundary by request.
		a.logger.Error("unhandled dispatch failure",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	for key, values := range resp.Header {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}

	w.WriteHeader(resp.StatusCode)

	// RFC 9110 Section 9.3.2: HEAD responses carry no body.
	if r.Method != http.MethodHead {
		w.Write(resp.Body)
	}
}

// normalizePath applies the configured trailing-slash policy. By default
// "/posts" and "/posts/" are distinct paths.
func (a *App) normalizePath(path string) string {
	if path == "" {
		return "/"
	}

	if a.normalizeSlash && len(path) > 1 && strings.HasSuffix(path, "/") {
		return strings.TrimSuffix(path, "/")
	}

	return path
}

// flattenQuery reduces multi-valued query parameters to the last value.
func flattenQuery(query url.Values) map[string]string {
	flat := make(map[string]string, len(query))
	for key, values := range query {
		if len(values) > 0 {
			flat[key] = values[len(values)-1]
		}
	}

	return flat
}
