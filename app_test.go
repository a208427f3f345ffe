package strada

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/strada/config"
)

func TestBuild(t *testing.T) {
	t.Run("builds an empty application in development by default", func(t *testing.T) {
		app, err := New().Build()
		require.NoError(t, err)
		assert.Equal(t, config.EnvDevelopment, app.Environment())
	})

	t.Run("environment setting selects the active tag", func(t *testing.T) {
		app, err := New().Set(config.KeyEnvironment, config.EnvProduction).Build()
		require.NoError(t, err)
		assert.Equal(t, config.EnvProduction, app.Environment())
	})

	t.Run("invalid route pattern is a fatal config error", func(t *testing.T) {
		b := New().Get("/posts/:id/:id", func(c *Ctx) error { return nil })

		_, err := b.Build()
		var cerr *ConfigError
		require.ErrorAs(t, err, &cerr)
	})

	t.Run("unknown environment tag is a fatal config error", func(t *testing.T) {
		_, err := New().Set(config.KeyEnvironment, "staging").Build()
		var cerr *ConfigError
		require.ErrorAs(t, err, &cerr)
	})

	t.Run("must build panics on config errors", func(t *testing.T) {
		b := New().Set(config.KeyEnvironment, "staging")
		assert.Panics(t, func() { b.MustBuild() })
	})

	t.Run("builder is consumed by build", func(t *testing.T) {
		b := New()
		_, err := b.Build()
		require.NoError(t, err)

		assert.Panics(t, func() { b.Get("/late", func(c *Ctx) error { return nil }) })
		assert.Panics(t, func() { b.Set("key", "value") })
		assert.Panics(t, func() { b.Helpers(HelperBundle{Name: "late"}) })
	})

	t.Run("lists routes in registration order", func(t *testing.T) {
		app, err := New().
			Get("/a", func(c *Ctx) error { return nil }).
			Post("/b", func(c *Ctx) error { return nil }).
			Build()
		require.NoError(t, err)

		assert.Equal(t, []RouteInfo{
			{Method: http.MethodGet, Pattern: "/a"},
			{Method: http.MethodPost, Pattern: "/b"},
		}, app.Routes())
	})

	t.Run("session store is built from the session secret", func(t *testing.T) {
		app, err := New().Set(config.KeySessionSecret, "sekrit").Build()
		require.NoError(t, err)
		require.NotNil(t, app.Sessions())

		token, err := app.Sessions().Issue(map[string]string{"user": "frank"})
		require.NoError(t, err)

		values, err := app.Sessions().Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "frank", values["user"])
	})

	t.Run("no session store without a secret", func(t *testing.T) {
		app, err := New().Build()
		require.NoError(t, err)
		assert.Nil(t, app.Sessions())
	})
}

func TestServeHTTP(t *testing.T) {
	newApp := func(t *testing.T) *App {
		t.Helper()
		app, err := New().
			Get("/hello", func(c *Ctx) error { return c.Text(http.StatusOK, "world") }).
			Build()
		require.NoError(t, err)

		return app
	}

	t.Run("writes the dispatched response", func(t *testing.T) {
		app := newApp(t)

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/hello", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "world", w.Body.String())
		assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	})

	t.Run("head requests reuse get routes with the body suppressed", func(t *testing.T) {
		app := newApp(t)

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodHead, "/hello", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("urlencoded form fields dispatch like query parameters", func(t *testing.T) {
		app, err := New().
			Post("/entries", func(c *Ctx) error { return c.Text(http.StatusCreated, c.Param("author")) }).
			Build()
		require.NoError(t, err)

		form := url.Values{"author": {"frank"}}
		req := httptest.NewRequest(http.MethodPost, "/entries", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		w := httptest.NewRecorder()
		app.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "frank", w.Body.String())
	})

	t.Run("writes a bare 500 when raise_errors lets a failure escape", func(t *testing.T) {
		app, err := New().
			Set(config.KeyRaiseErrors, true).
			Get("/boom", func(c *Ctx) error { return assert.AnError }).
			Build()
		require.NoError(t, err)

		w := httptest.NewRecorder()
		app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestDispatchQueryHandling(t *testing.T) {
	t.Run("duplicate query keys resolve to the last value", func(t *testing.T) {
		app, err := New().
			Get("/q", func(c *Ctx) error { return c.Text(http.StatusOK, c.Query("name")) }).
			Build()
		require.NoError(t, err)

		resp, err := app.Dispatch(http.MethodGet, "/q", url.Values{"name": {"first", "last"}})
		require.NoError(t, err)
		assert.Equal(t, "last", string(resp.Body))
	})

	t.Run("path parameters take precedence over query parameters", func(t *testing.T) {
		app, err := New().
			Get("/country/:info", func(c *Ctx) error { return c.Text(http.StatusOK, c.Param("info")) }).
			Build()
		require.NoError(t, err)

		resp, err := app.Dispatch(http.MethodGet, "/country/capital", url.Values{"info": {"from-query"}})
		require.NoError(t, err)
		assert.Equal(t, "capital", string(resp.Body))
	})

	t.Run("merged params keep query values without path collisions", func(t *testing.T) {
		app, err := New().
			Get("/country/:info", func(c *Ctx) error {
				params := c.Params()
				return c.Text(http.StatusOK, params["info"]+","+params["units"])
			}).
			Build()
		require.NoError(t, err)

		resp, err := app.Dispatch(http.MethodGet, "/country/area", url.Values{
			"info":  {"shadowed"},
			"units": {"km2"},
		})
		require.NoError(t, err)
		assert.Equal(t, "area,km2", string(resp.Body))
	})
}
