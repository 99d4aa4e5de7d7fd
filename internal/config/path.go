// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	// First expand tilde if present
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	// Then expand environment variables
	return os.ExpandEnv(path)
}

// DataDir returns the application data directory, honoring the data.dir
// configuration key. Defaults to ~/.local/share/fintrack.
func DataDir() string {
	if dir := viper.GetString("data.dir"); dir != "" {
		return ExpandPath(dir)
	}
	return ExpandPath("~/.local/share/fintrack")
}

// DBPath returns the SQLite database path, honoring the data.db_path
// configuration key. Defaults to <DataDir>/fintrack.db.
func DBPath() string {
	if path := viper.GetString("data.db_path"); path != "" {
		return ExpandPath(path)
	}
	return filepath.Join(DataDir(), "fintrack.db")
}

// BackupDir returns the backup snapshot directory, honoring the backup.dir
// configuration key. Defaults to <DataDir>/backups.
func BackupDir() string {
	if dir := viper.GetString("backup.dir"); dir != "" {
		return ExpandPath(dir)
	}
	return filepath.Join(DataDir(), "backups")
}
