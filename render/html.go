package render

import (
	"bytes"

	"github.com/gofiber/template/html/v2"
)

// htmlEngine adapts gofiber's html/template engine to the Renderer
// boundary.
type htmlEngine struct {
	views *html.Engine
}

func newHTMLEngine(opts Options) (Renderer, error) {
	ext := opts.Extension
	if ext == "" {
		ext = ".html"
	}

	views := html.New(opts.Directory, ext)
	views.Reload(opts.Reload)

	if err := views.Load(); err != nil {
		return nil, err
	}

	return &htmlEngine{views: views}, nil
}

func (e *htmlEngine) Render(name string, locals map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.views.Render(&buf, name, locals); err != nil {
		return nil, &Error{Template: name, Cause: err}
	}

	return buf.Bytes(), nil
}
