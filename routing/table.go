package routing

import (
	"net/http"
	"sort"
)

// Route is a compiled mapping from (method, pattern) to a handler
// reference. Routes are immutable once registered.
type Route struct {
	Method  string
	Pattern *Pattern

	// Handler is the opaque handler reference owned by the embedding
	// engine. The table never invokes it.
	Handler any
}

// Table is an ordered, per-method collection of compiled routes. It is
// populated during the build phase, frozen, and then read concurrently.
type Table struct {
	byMethod map[string][]*Route
	order    []*Route
	frozen   bool
}

// NewTable returns an empty route table.
func NewTable() *Table {
	return &Table{
		byMethod: make(map[string][]*Route),
	}
}

// Add compiles the pattern and appends a route to the method's ordered
// list. Registering the same pattern twice keeps both entries; the first
// registered still wins on dispatch. Returns ErrTableFrozen after Freeze.
func (t *Table) Add(method, spec string, handler any) (*Route, error) {
	if t.frozen {
		return nil, ErrTableFrozen
	}

	pattern, err := CompilePattern(spec)
	if err != nil {
		return nil, err
	}

	route := &Route{
		Method:  method,
		Pattern: pattern,
		Handler: handler,
	}

	t.byMethod[method] = append(t.byMethod[method], route)
	t.order = append(t.order, route)

	return route, nil
}

// Freeze marks the end of the build phase. Further Add calls fail and the
// table becomes safe for lock-free concurrent Match calls.
func (t *Table) Freeze() {
	t.frozen = true
}

// Routes returns all routes in registration order.
func (t *Table) Routes() []*Route {
	return t.order
}

// Match holds the outcome of a successful table lookup.
type Match struct {
	Route *Route

	// Params maps named path parameters to their captured values.
	Params map[string]string

	// Splat holds splat captures in order of appearance.
	Splat []string

	index int
}

// Match scans the method's route list in registration order and returns
// the first structural match. HEAD requests fall back to the GET list when
// no HEAD route matches, per RFC 9110 Section 9.3.2; the embedding engine
// is responsible for suppressing the response body.
//
// When no route under the method matches but the path matches under a
// different method, Match returns a *MethodNotAllowedError. When nothing
// matches at all, it returns a *NotFoundError.
func (t *Table) Match(method, path string) (*Match, error) {
	return t.MatchFrom(method, path, 0)
}

// MatchFrom behaves like Match but skips the first `from` candidate routes
// of the method's scan list. It resumes a scan after a handler passed on a
// previously matched route; Match.Next supplies the resume position.
func (t *Table) MatchFrom(method, path string, from int) (*Match, error) {
	candidates := t.candidates(method)

	for i := from; i < len(candidates); i++ {
		if pm, ok := candidates[i].Pattern.Match(path); ok {
			return &Match{
				Route:  candidates[i],
				Params: pm.Params,
				Splat:  pm.Splat,
				index:  i,
			}, nil
		}
	}

	if allowed := t.allowedMethods(method, path); len(allowed) > 0 {
		return nil, &MethodNotAllowedError{
			Method:  method,
			Path:    path,
			Allowed: allowed,
		}
	}

	return nil, &NotFoundError{Method: method, Path: path}
}

// Next returns the scan position immediately after the matched route, for
// resuming the table scan when a handler passes.
func (m *Match) Next() int {
	return m.index + 1
}

// candidates returns the ordered scan list for a method.
func (t *Table) candidates(method string) []*Route {
	routes := t.byMethod[method]
	if method != http.MethodHead {
		return routes
	}

	get := t.byMethod[http.MethodGet]
	if len(get) == 0 {
		return routes
	}

	combined := make([]*Route, 0, len(routes)+len(get))
	combined = append(combined, routes...)
	combined = append(combined, get...)

	return combined
}

// allowedMethods returns the sorted set of methods, other than the
// requested one, whose route lists match the path.
func (t *Table) allowedMethods(method, path string) []string {
	var allowed []string

	for m, routes := range t.byMethod {
		if m == method {
			continue
		}
		for _, route := range routes {
			if _, ok := route.Pattern.Match(path); ok {
				allowed = append(allowed, m)
				break
			}
		}
	}

	sort.Strings(allowed)

	return allowed
}
