package config

import "fmt"

// Registry collects settings during the build phase. It is not safe for
// concurrent use; all registration happens before the application serves
// traffic.
type Registry struct {
	globals   map[string]any
	overrides map[string]map[string]any
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		globals:   make(map[string]any),
		overrides: make(map[string]map[string]any),
	}
}

// Set installs a global default for key.
func (r *Registry) Set(key string, value any) {
	r.globals[key] = value
}

// Global returns the global default for key, if one was installed.
func (r *Registry) Global(key string) (any, bool) {
	v, ok := r.globals[key]
	return v, ok
}

// Scope installs settings that apply only under one environment tag.
type Scope struct {
	env      string
	registry *Registry
}

// Set installs an override for key under the scope's environment.
func (s *Scope) Set(key string, value any) {
	overrides := s.registry.overrides[s.env]
	if overrides == nil {
		overrides = make(map[string]any)
		s.registry.overrides[s.env] = overrides
	}
	overrides[key] = value
}

// Configure runs fn against a scope whose settings apply only when the
// active environment tag equals env.
func (r *Registry) Configure(env string, fn func(*Scope)) {
	fn(&Scope{env: env, registry: r})
}

// Build resolves the effective settings for the active environment and
// returns an immutable snapshot. The environment tag must be one of
// development, test, or production.
func (r *Registry) Build(env string) (*Snapshot, error) {
	switch env {
	case EnvDevelopment, EnvTest, EnvProduction:
	default:
		return nil, fmt.Errorf("config: unknown environment %q", env)
	}

	values := defaults(env)
	for k, v := range r.globals {
		values[k] = v
	}
	for k, v := range r.overrides[env] {
		values[k] = v
	}
	values[KeyEnvironment] = env

	return &Snapshot{env: env, values: values}, nil
}
