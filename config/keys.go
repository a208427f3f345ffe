package config

// Environment tags. The active environment selects which Configure
// overrides apply during a process run.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Recognized setting keys.
const (
	// KeyEnvironment is the active environment tag.
	KeyEnvironment = "environment"

	// KeyShowExceptions enables diagnostic error responses exposing the
	// failure kind, message, and originating context. Development-only
	// posture; defaults to true only in development.
	KeyShowExceptions = "show_exceptions"

	// KeyDumpErrors enables logging of handler failures with a stack
	// trace. Defaults to true outside the test environment.
	KeyDumpErrors = "dump_errors"

	// KeyRaiseErrors makes Dispatch return failures to the caller instead
	// of converting them to responses. Defaults to true only in test.
	KeyRaiseErrors = "raise_errors"

	// KeySessionSecret is passed opaquely to session collaborators.
	KeySessionSecret = "session_secret"

	// KeyBind is the host address a transport helper should listen on.
	KeyBind = "bind"

	// KeyPort is the TCP port a transport helper should listen on.
	KeyPort = "port"

	// KeyTemplateEngine selects the rendering engine at build time.
	KeyTemplateEngine = "template_engine"

	// KeyNormalizeTrailingSlash, when true, strips one trailing slash
	// from incoming paths (never the root) before route matching. Off by
	// default: "/posts" and "/posts/" are distinct paths.
	KeyNormalizeTrailingSlash = "normalize_trailing_slash"
)

// Keys lists every recognized setting key. LoadEnv binds environment
// variables for exactly this set.
var Keys = []string{
	KeyEnvironment,
	KeyShowExceptions,
	KeyDumpErrors,
	KeyRaiseErrors,
	KeySessionSecret,
	KeyBind,
	KeyPort,
	KeyTemplateEngine,
	KeyNormalizeTrailingSlash,
}

// defaults returns the engine defaults for the given environment.
func defaults(env string) map[string]any {
	bind := "0.0.0.0"
	if env == EnvDevelopment {
		bind = "127.0.0.1"
	}

	return map[string]any{
		KeyShowExceptions:         env == EnvDevelopment,
		KeyDumpErrors:             env != EnvTest,
		KeyRaiseErrors:            env == EnvTest,
		KeyBind:                   bind,
		KeyPort:                   4567,
		KeyTemplateEngine:         "html",
		KeyNormalizeTrailingSlash: false,
	}
}
