package config

import "github.com/spf13/cast"

// Snapshot is the immutable result of resolving a registry against the
// active environment. Safe for lock-free concurrent reads.
type Snapshot struct {
	env    string
	values map[string]any
}

// Environment returns the active environment tag.
func (s *Snapshot) Environment() string {
	return s.env
}

// Lookup returns the effective value for key and whether it is set.
func (s *Snapshot) Lookup(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Get returns the effective value for key, or nil when unset.
func (s *Snapshot) Get(key string) any {
	return s.values[key]
}

// String returns the effective value coerced to a string.
func (s *Snapshot) String(key string) string {
	return cast.ToString(s.values[key])
}

// Bool returns the effective value coerced to a bool. Unset keys and
// values that do not coerce report false.
func (s *Snapshot) Bool(key string) bool {
	return cast.ToBool(s.values[key])
}

// Int returns the effective value coerced to an int.
func (s *Snapshot) Int(key string) int {
	return cast.ToInt(s.values[key])
}
