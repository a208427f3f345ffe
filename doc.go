// Package strada is a routing and dispatch engine for declaratively
// routed web applications. It compiles path patterns, matches verbs and
// paths against an ordered route table, runs handlers inside an
// extensible execution context, renders through a pluggable template
// boundary, and converts failures into well-formed responses.
//
// An application is declared through a Builder and frozen into an
// immutable App by Build. After that point the route table, settings,
// and helper registries never change, so dispatch is lock-free and safe
// for any number of concurrent workers.
//
//	b := strada.New()
//	b.Set(config.KeyEnvironment, config.EnvProduction)
//
//	b.Get("/country/:info", func(c *strada.Ctx) error {
//	    return c.Text(http.StatusOK, "value of "+c.Param("info"))
//	})
//
//	app := b.MustBuild()
//	http.ListenAndServe(":4567", app)
//
// The engine does not own the listening socket: App implements
// http.Handler for embedding, and the per-request contract is also
// available directly as App.Dispatch(method, path, query). The transport
// subpackage offers an optional serving helper for hosts that want one.
//
// # Failure taxonomy
//
// Build-time problems (bad patterns, bad settings) surface as
// *ConfigError and abort startup. Per-request failures are intercepted
// at the dispatch boundary and converted to responses: no route matches
// the path under any method (*routing.NotFoundError, 404), the path
// matches under a different method (*routing.MethodNotAllowedError, 405
// with an Allow header), a template fails (*render.Error, 500), and any
// other error raised by a handler (500). The show_exceptions,
// dump_errors, and raise_errors settings control how the conversion
// behaves; see the config package for their defaults per environment.
package strada
