package render

import (
	"fmt"
	"sort"
)

// Renderer renders a named template with the given locals into an opaque
// payload. Implementations must be safe for concurrent use.
type Renderer interface {
	Render(name string, locals map[string]any) ([]byte, error)
}

// Error reports a template rendering failure.
type Error struct {
	Template string
	Cause    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("render: template %q: %v", e.Template, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures engine construction.
type Options struct {
	// Directory is the root of the template tree.
	Directory string

	// Extension overrides the engine's default template file extension.
	Extension string

	// Reload re-reads templates on every render. Development use only;
	// outside of it, template resolution for a given name is
	// deterministic within one process lifetime.
	Reload bool
}

// EngineFactory constructs a Renderer from options.
type EngineFactory func(opts Options) (Renderer, error)

var builtin = map[string]EngineFactory{
	"html":   newHTMLEngine,
	"django": newDjangoEngine,
}

var custom = map[string]EngineFactory{}

// RegisterEngine makes a factory selectable through the template_engine
// setting. Build-phase only; not safe for concurrent use. A custom
// factory shadows a built-in engine of the same name.
func RegisterEngine(name string, factory EngineFactory) {
	custom[name] = factory
}

// New constructs the engine registered under name.
func New(name string, opts Options) (Renderer, error) {
	factory, ok := custom[name]
	if !ok {
		factory, ok = builtin[name]
	}
	if !ok {
		return nil, fmt.Errorf("render: unknown template engine %q (have: %v)", name, engineNames())
	}

	return factory(opts)
}

func engineNames() []string {
	seen := make(map[string]bool, len(builtin)+len(custom))
	names := make([]string, 0, len(builtin)+len(custom))
	for name := range builtin {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for name := range custom {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
