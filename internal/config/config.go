// Package config holds the process-wide configuration value. Unlike the
// teacher project's memoized package-level DeviceConfig, this package
// keeps no state of its own: Load builds a fresh Config on each call.
// cmd/mpflash calls it once per invocation and keeps the result in a
// package-level variable of its commands package, passing individual
// fields (catalog path, firmware root, ignore list) to the internal
// packages; no internal constructor takes a *Config.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Config is the catalog path, firmware root, and default ignore list
// shared by every subcommand.
type Config struct {
	CatalogPath  string
	FirmwareRoot string
	Ignore       []string
	Quiet        bool
	Verbose      bool
}

// Load builds a Config from the per-user config directory and the
// MPFLASH_IGNORE environment variable, which seeds the default for
// --ignore.
func Load() (*Config, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return nil, herr
		}
		dir = filepath.Join(home, ".config")
	}
	mpDir := filepath.Join(dir, "mpflash")
	if err := os.MkdirAll(mpDir, 0o755); err != nil {
		return nil, err
	}

	cfg := &Config{
		CatalogPath:  filepath.Join(mpDir, "mpflash.db"),
		FirmwareRoot: filepath.Join(mpDir, "firmware"),
		Ignore:       ignoreFromEnv(),
	}
	return cfg, nil
}

func ignoreFromEnv() []string {
	raw := os.Getenv("MPFLASH_IGNORE")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ProjectRoot walks up from the working directory looking for go.mod,
// the same heuristic the teacher project used to find a .env file.
// Nothing in mpflash calls it; Load does not consult it.
func ProjectRoot() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(cwd, "go.mod")); err == nil {
			return cwd
		}
		parent := filepath.Dir(cwd)
		if parent == cwd {
			return ""
		}
		cwd = parent
	}
}
