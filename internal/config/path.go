// Package config provides configuration utilities for the application.
package config

import (
	"os"

	"github.com/mitchellh/go-homedir"
)

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if expanded, err := homedir.Expand(path); err == nil {
		path = expanded
	}

	return os.ExpandEnv(path)
}
