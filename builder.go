package strada

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/vitalvas/strada/config"
	"github.com/vitalvas/strada/render"
	"github.com/vitalvas/strada/routing"
	"github.com/vitalvas/strada/session"
)

// routeDecl is a declared route awaiting compilation at Build.
type routeDecl struct {
	method  string
	spec    string
	handler Handler
}

// Builder collects routes, settings, extensions, and helpers during the
// one-time build phase. Build consumes the builder and produces the
// immutable App snapshot; the builder must not be used afterwards.
//
// Builders are not safe for concurrent use. All registration happens
// before the application serves traffic.
type Builder struct {
	registry      *config.Registry
	routes        []routeDecl
	extensions    []Extension
	helpers       []HelperBundle
	middleware    []Middleware
	before        []Handler
	after         []Handler
	errorHandlers map[int]Handler

	renderer  render.Renderer
	templates string
	logger    *zap.Logger
	sessions  session.Store

	errs  []error
	built bool
}

// New returns an empty builder.
func New() *Builder {
	return &Builder{
		registry:      config.NewRegistry(),
		errorHandlers: make(map[int]Handler),
	}
}

func (b *Builder) buildPhase() {
	if b.built {
		panic("strada: builder already consumed by Build")
	}
}

// --- Configuration ---

// Set installs a global configuration default.
func (b *Builder) Set(key string, value any) *Builder {
	b.buildPhase()
	b.registry.Set(key, value)

	return b
}

// Configure installs configuration overrides that apply only when the
// active environment tag equals env.
func (b *Builder) Configure(env string, fn func(*config.Scope)) *Builder {
	b.buildPhase()
	b.registry.Configure(env, fn)

	return b
}

// LoadSettings reads a YAML settings file into the configuration
// registry. See config.Registry.LoadFile for the layout.
func (b *Builder) LoadSettings(path string) *Builder {
	b.buildPhase()
	if err := b.registry.LoadFile(path); err != nil {
		b.errs = append(b.errs, err)
	}

	return b
}

// LoadEnvSettings installs settings from prefixed environment variables.
func (b *Builder) LoadEnvSettings(prefix string) *Builder {
	b.buildPhase()
	b.registry.LoadEnv(prefix)

	return b
}

// --- Routes ---

// Route declares a route for an arbitrary method. The pattern compiles
// at Build; invalid patterns surface there as *ConfigError.
func (b *Builder) Route(method, spec string, h Handler) *Builder {
	b.buildPhase()
	b.routes = append(b.routes, routeDecl{method: method, spec: spec, handler: h})

	return b
}

// Get declares a GET route.
func (b *Builder) Get(spec string, h Handler) *Builder {
	return b.Route(http.MethodGet, spec, h)
}

// Post declares a POST route.
func (b *Builder) Post(spec string, h Handler) *Builder {
	return b.Route(http.MethodPost, spec, h)
}

// Put declares a PUT route.
func (b *Builder) Put(spec string, h Handler) *Builder {
	return b.Route(http.MethodPut, spec, h)
}

// Patch declares a PATCH route.
func (b *Builder) Patch(spec string, h Handler) *Builder {
	return b.Route(http.MethodPatch, spec, h)
}

// Delete declares a DELETE route.
func (b *Builder) Delete(spec string, h Handler) *Builder {
	return b.Route(http.MethodDelete, spec, h)
}

// Options declares an OPTIONS route.
func (b *Builder) Options(spec string, h Handler) *Builder {
	return b.Route(http.MethodOptions, spec, h)
}

// Head declares a HEAD route. GET routes already answer HEAD requests
// with the body suppressed; an explicit HEAD route takes precedence.
func (b *Builder) Head(spec string, h Handler) *Builder {
	return b.Route(http.MethodHead, spec, h)
}

// --- Composition ---

// Register merges an extension's operations into the application-level
// namespace and runs its Configure hook. On an operation name collision
// across extensions, the last registration wins.
func (b *Builder) Register(ext Extension) *Builder {
	b.buildPhase()
	b.extensions = append(b.extensions, ext)

	if ext.Configure != nil {
		if err := ext.Configure(b); err != nil {
			b.errs = append(b.errs, &ConfigError{
				Reason: "extension " + ext.Name + " failed to configure",
				Err:    err,
			})
		}
	}

	return b
}

// Helpers merges a bundle's operations into the operation set every
// request context exposes to handlers. Last registration wins on a name
// collision.
func (b *Builder) Helpers(h HelperBundle) *Builder {
	b.buildPhase()
	b.helpers = append(b.helpers, h)

	return b
}

// Use appends middleware. Each route's handler is wrapped once at Build,
// in registration order (the first Use is outermost).
func (b *Builder) Use(mw ...Middleware) *Builder {
	b.buildPhase()
	b.middleware = append(b.middleware, mw...)

	return b
}

// Before appends a filter that runs ahead of route matching for every
// request. A filter may halt; its response then short-circuits dispatch.
func (b *Builder) Before(h Handler) *Builder {
	b.buildPhase()
	b.before = append(b.before, h)

	return b
}

// After appends a filter that runs once the matched handler completes
// without failure.
func (b *Builder) After(h Handler) *Builder {
	b.buildPhase()
	b.after = append(b.after, h)

	return b
}

// --- Error handling ---

// OnError registers a custom handler for failures mapped to the given
// status. The handler observes the failure through Ctx.Failure and may
// override status and body.
func (b *Builder) OnError(status int, h Handler) *Builder {
	b.buildPhase()
	b.errorHandlers[status] = h

	return b
}

// NotFound registers the custom 404 handler.
func (b *Builder) NotFound(h Handler) *Builder {
	return b.OnError(http.StatusNotFound, h)
}

// MethodNotAllowed registers the custom 405 handler. The Allow header is
// populated before the handler runs.
func (b *Builder) MethodNotAllowed(h Handler) *Builder {
	return b.OnError(http.StatusMethodNotAllowed, h)
}

// --- Collaborators ---

// Templates sets the template directory and enables the renderer
// selected by the template_engine setting.
func (b *Builder) Templates(dir string) *Builder {
	b.buildPhase()
	b.templates = dir

	return b
}

// Renderer injects a pre-built renderer, bypassing engine selection.
func (b *Builder) Renderer(r render.Renderer) *Builder {
	b.buildPhase()
	b.renderer = r

	return b
}

// Logger sets the application logger. Defaults to a no-op logger.
func (b *Builder) Logger(l *zap.Logger) *Builder {
	b.buildPhase()
	b.logger = l

	return b
}

// Sessions injects a session collaborator. When unset and a
// session_secret is configured, a signed-cookie store is built from it.
func (b *Builder) Sessions(s session.Store) *Builder {
	b.buildPhase()
	b.sessions = s

	return b
}

// --- Build ---

// Build compiles the declared routes, resolves configuration for the
// active environment, and freezes everything into an immutable App. Any
// build-phase problem is returned as *ConfigError and must abort
// startup. The builder is consumed.
func (b *Builder) Build() (*App, error) {
	b.buildPhase()
	b.built = true

	if len(b.errs) > 0 {
		return nil, &ConfigError{Reason: "build failed", Err: b.errs[0]}
	}

	env := config.EnvDevelopment
	if v, ok := b.registry.Global(config.KeyEnvironment); ok {
		if s, isString := v.(string); isString && s != "" {
			env = s
		}
	}

	settings, err := b.registry.Build(env)
	if err != nil {
		return nil, &ConfigError{Reason: "invalid configuration", Err: err}
	}

	table := routing.NewTable()
	for _, decl := range b.routes {
		if _, err := table.Add(decl.method, decl.spec, b.wrap(decl.handler)); err != nil {
			return nil, &ConfigError{Reason: "invalid route", Err: err}
		}
	}
	table.Freeze()

	renderer := b.renderer
	if renderer == nil && b.templates != "" {
		renderer, err = render.New(settings.String(config.KeyTemplateEngine), render.Options{
			Directory: b.templates,
			Reload:    env == config.EnvDevelopment,
		})
		if err != nil {
			return nil, &ConfigError{Reason: "template engine", Err: err}
		}
	}

	logger := b.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	sessions := b.sessions
	if sessions == nil {
		if secret := settings.String(config.KeySessionSecret); secret != "" {
			sessions, err = session.NewCookieStore(secret)
			if err != nil {
				return nil, &ConfigError{Reason: "session store", Err: err}
			}
		}
	}

	return &App{
		table:          table,
		settings:       settings,
		renderer:       renderer,
		logger:         logger,
		sessions:       sessions,
		helperOps:      mergeHelperOps(b.helpers),
		appOps:         mergeExtensionOps(b.extensions),
		before:         b.before,
		after:          b.after,
		errorHandlers:  b.errorHandlers,
		showExceptions: settings.Bool(config.KeyShowExceptions),
		dumpErrors:     settings.Bool(config.KeyDumpErrors),
		raiseErrors:    settings.Bool(config.KeyRaiseErrors),
		normalizeSlash: settings.Bool(config.KeyNormalizeTrailingSlash),
	}, nil
}

// MustBuild is like Build but panics on error, halting the process
// before it serves traffic.
func (b *Builder) MustBuild() *App {
	app, err := b.Build()
	if err != nil {
		panic(err)
	}

	return app
}

// wrap applies the middleware chain to a handler, first Use outermost.
func (b *Builder) wrap(h Handler) Handler {
	for i := len(b.middleware) - 1; i >= 0; i-- {
		h = b.middleware[i](h)
	}

	return h
}
