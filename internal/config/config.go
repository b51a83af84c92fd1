// Package config reads application settings from the environment.
package config

import config_go "github.com/escalopa/config-go"

// Get ...
func Get(key string) string {
	return config_go.Get(key)
}

// GetOrDefault ...
func GetOrDefault(key, def string) string {
	env := config_go.Get(key)
	if env != "" {
		return env
	}
	return def
}
