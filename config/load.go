package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// settingsFile is the on-disk layout consumed by LoadFile.
type settingsFile struct {
	Settings     map[string]any            `yaml:"settings"`
	Environments map[string]map[string]any `yaml:"environments"`
}

// LoadFile reads a YAML settings file into the registry. Top-level
// settings become global defaults; per-environment sections become
// Configure overrides:
//
//	settings:
//	  port: 9292
//	environments:
//	  development:
//	    show_exceptions: true
//
// Values already installed with Set keep priority over file values.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var file settingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	for k, v := range file.Settings {
		if _, ok := r.globals[k]; !ok {
			r.globals[k] = v
		}
	}

	for env, overrides := range file.Environments {
		r.Configure(env, func(s *Scope) {
			for k, v := range overrides {
				if _, ok := r.overrides[env][k]; !ok {
					s.Set(k, v)
				}
			}
		})
	}

	return nil
}

// LoadEnv binds recognized setting keys to prefixed environment variables
// and installs any that are present as global defaults. With prefix
// "MYAPP", the key "port" reads MYAPP_PORT. Values already installed with
// Set keep priority.
func (r *Registry) LoadEnv(prefix string) {
	v := viper.New()
	prefix = strings.ToUpper(prefix)

	for _, key := range Keys {
		v.BindEnv(key, prefix+"_"+strings.ToUpper(key))
	}

	for _, key := range Keys {
		if _, ok := r.globals[key]; ok {
			continue
		}
		if val := v.Get(key); val != nil {
			r.globals[key] = val
		}
	}
}
