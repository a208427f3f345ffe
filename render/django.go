package render

import (
	"bytes"

	"github.com/gofiber/template/django/v3"
)

// djangoEngine adapts gofiber's django (pongo2) engine to the Renderer
// boundary.
type djangoEngine struct {
	views *django.Engine
}

func newDjangoEngine(opts Options) (Renderer, error) {
	ext := opts.Extension
	if ext == "" {
		ext = ".django"
	}

	views := django.New(opts.Directory, ext)
	views.Reload(opts.Reload)

	if err := views.Load(); err != nil {
		return nil, err
	}

	return &djangoEngine{views: views}, nil
}

func (e *djangoEngine) Render(name string, locals map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.views.Render(&buf, name, locals); err != nil {
		return nil, &Error{Template: name, Cause: err}
	}

	return buf.Bytes(), nil
}
