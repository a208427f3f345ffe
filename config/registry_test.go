package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryBuild(t *testing.T) {
	t.Run("resolves override then global then default", func(t *testing.T) {
		r := NewRegistry()
		r.Set(KeyPort, 9292)
		r.Configure(EnvProduction, func(s *Scope) {
			s.Set(KeyPort, 80)
		})

		snap, err := r.Build(EnvProduction)
		require.NoError(t, err)
		assert.Equal(t, 80, snap.Int(KeyPort))

		snap, err = r.Build(EnvDevelopment)
		require.NoError(t, err)
		assert.Equal(t, 9292, snap.Int(KeyPort))
	})

	t.Run("falls back to engine defaults", func(t *testing.T) {
		snap, err := NewRegistry().Build(EnvDevelopment)
		require.NoError(t, err)
		assert.Equal(t, 4567, snap.Int(KeyPort))
		assert.Equal(t, "html", snap.String(KeyTemplateEngine))
	})

	t.Run("overrides apply only under their environment tag", func(t *testing.T) {
		r := NewRegistry()
		r.Configure(EnvDevelopment, func(s *Scope) {
			s.Set(KeyShowExceptions, true)
		})

		dev, err := r.Build(EnvDevelopment)
		require.NoError(t, err)
		assert.True(t, dev.Bool(KeyShowExceptions))

		prod, err := r.Build(EnvProduction)
		require.NoError(t, err)
		assert.False(t, prod.Bool(KeyShowExceptions))
	})

	t.Run("diagnostic defaults track the environment", func(t *testing.T) {
		for env, want := range map[string]struct{ show, dump, raise bool }{
			EnvDevelopment: {show: true, dump: true, raise: false},
			EnvTest:        {show: false, dump: false, raise: true},
			EnvProduction:  {show: false, dump: true, raise: false},
		} {
			snap, err := NewRegistry().Build(env)
			require.NoError(t, err)
			assert.Equal(t, want.show, snap.Bool(KeyShowExceptions), env)
			assert.Equal(t, want.dump, snap.Bool(KeyDumpErrors), env)
			assert.Equal(t, want.raise, snap.Bool(KeyRaiseErrors), env)
		}
	})

	t.Run("records the active environment tag", func(t *testing.T) {
		snap, err := NewRegistry().Build(EnvTest)
		require.NoError(t, err)
		assert.Equal(t, EnvTest, snap.Environment())
		assert.Equal(t, EnvTest, snap.String(KeyEnvironment))
	})

	t.Run("rejects unknown environment tags", func(t *testing.T) {
		_, err := NewRegistry().Build("staging")
		require.Error(t, err)
	})

	t.Run("unset key reports absent", func(t *testing.T) {
		snap, err := NewRegistry().Build(EnvProduction)
		require.NoError(t, err)
		_, ok := snap.Lookup(KeySessionSecret)
		assert.False(t, ok)
	})
}

func TestRegistryLoadFile(t *testing.T) {
	t.Run("loads globals and environment overrides", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.yml")
		require.NoError(t, os.WriteFile(path, []byte(`
settings:
  port: 9292
  session_secret: sekrit
environments:
  production:
    bind: 10.0.0.1
`), 0o600))

		r := NewRegistry()
		require.NoError(t, r.LoadFile(path))

		prod, err := r.Build(EnvProduction)
		require.NoError(t, err)
		assert.Equal(t, 9292, prod.Int(KeyPort))
		assert.Equal(t, "sekrit", prod.String(KeySessionSecret))
		assert.Equal(t, "10.0.0.1", prod.String(KeyBind))

		dev, err := r.Build(EnvDevelopment)
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1", dev.String(KeyBind))
	})

	t.Run("programmatic settings keep priority over file values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.yml")
		require.NoError(t, os.WriteFile(path, []byte("settings:\n  port: 9292\n"), 0o600))

		r := NewRegistry()
		r.Set(KeyPort, 8080)
		require.NoError(t, r.LoadFile(path))

		snap, err := r.Build(EnvDevelopment)
		require.NoError(t, err)
		assert.Equal(t, 8080, snap.Int(KeyPort))
	})

	t.Run("reports unreadable files", func(t *testing.T) {
		r := NewRegistry()
		assert.Error(t, r.LoadFile(filepath.Join(t.TempDir(), "missing.yml")))
	})

	t.Run("reports malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.yml")
		require.NoError(t, os.WriteFile(path, []byte("settings: ["), 0o600))

		r := NewRegistry()
		assert.Error(t, r.LoadFile(path))
	})
}

func TestRegistryLoadEnv(t *testing.T) {
	t.Run("reads prefixed variables for recognized keys", func(t *testing.T) {
		t.Setenv("STRADATEST_PORT", "3000")
		t.Setenv("STRADATEST_SHOW_EXCEPTIONS", "true")

		r := NewRegistry()
		r.LoadEnv("stradatest")

		snap, err := r.Build(EnvProduction)
		require.NoError(t, err)
		assert.Equal(t, 3000, snap.Int(KeyPort))
		assert.True(t, snap.Bool(KeyShowExceptions))
	})

	t.Run("programmatic settings keep priority over the environment", func(t *testing.T) {
		t.Setenv("STRADATEST_PORT", "3000")

		r := NewRegistry()
		r.Set(KeyPort, 8080)
		r.LoadEnv("stradatest")

		snap, err := r.Build(EnvProduction)
		require.NoError(t, err)
		assert.Equal(t, 8080, snap.Int(KeyPort))
	})
}
