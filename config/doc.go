// Package config implements the environment-scoped configuration registry
// for strada applications.
//
// Settings live in two tiers: global defaults installed with Set, and
// environment-tagged overrides installed with Configure. The effective
// value of a key is the override for the active environment when present,
// else the global default, else the engine-provided default for that
// environment.
//
//	r := config.NewRegistry()
//	r.Set(config.KeyPort, 9292)
//	r.Configure(config.EnvDevelopment, func(s *config.Scope) {
//	    s.Set(config.KeyShowExceptions, true)
//	})
//
//	snap, err := r.Build(config.EnvDevelopment)
//
// Settings can also be read from a YAML file (LoadFile) or from prefixed
// environment variables (LoadEnv) during the build phase.
//
// Build produces an immutable Snapshot. Snapshots are safe for lock-free
// concurrent reads; the registry itself is build-phase only and must not
// be touched once the snapshot exists.
package config
