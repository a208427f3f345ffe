package render

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemplate(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func TestNew(t *testing.T) {
	t.Run("rejects unknown engine names", func(t *testing.T) {
		_, err := New("erb", Options{Directory: t.TempDir()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown template engine "erb"`)
	})

	t.Run("custom engines are selectable by name", func(t *testing.T) {
		RegisterEngine("static", func(_ Options) (Renderer, error) {
			return renderFunc(func(name string, _ map[string]any) ([]byte, error) {
				return []byte("static:" + name), nil
			}), nil
		})

		r, err := New("static", Options{})
		require.NoError(t, err)

		out, err := r.Render("index", nil)
		require.NoError(t, err)
		assert.Equal(t, "static:index", string(out))
	})
}

func TestHTMLEngine(t *testing.T) {
	t.Run("renders a template with locals", func(t *testing.T) {
		dir := t.TempDir()
		writeTemplate(t, dir, "greet.html", "Hello, {{.Name}}!")

		r, err := New("html", Options{Directory: dir})
		require.NoError(t, err)

		out, err := r.Render("greet", map[string]any{"Name": "Frank"})
		require.NoError(t, err)
		assert.Equal(t, "Hello, Frank!", string(out))
	})

	t.Run("wraps failures in a render error", func(t *testing.T) {
		dir := t.TempDir()
		writeTemplate(t, dir, "greet.html", "Hello")

		r, err := New("html", Options{Directory: dir})
		require.NoError(t, err)

		_, err = r.Render("missing", nil)
		require.Error(t, err)

		var rerr *Error
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, "missing", rerr.Template)
		assert.Error(t, errors.Unwrap(rerr))
	})
}

func TestDjangoEngine(t *testing.T) {
	t.Run("renders a template with locals", func(t *testing.T) {
		dir := t.TempDir()
		writeTemplate(t, dir, "greet.django", "Hello, {{ name }}!")

		r, err := New("django", Options{Directory: dir})
		require.NoError(t, err)

		out, err := r.Render("greet", map[string]any{"name": "Frank"})
		require.NoError(t, err)
		assert.Equal(t, "Hello, Frank!", string(out))
	})
}

// renderFunc adapts a function to the Renderer interface for tests.
type renderFunc func(name string, locals map[string]any) ([]byte, error)

func (f renderFunc) Render(name string, locals map[string]any) ([]byte, error) {
	return f(name, locals)
}
