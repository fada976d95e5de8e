// Package config loads application configuration from environment variables
// and an optional YAML file, so no component has to read ambient state.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the resolved configuration threaded explicitly into every
// component that needs it.
type Config struct {
	GitHubToken  string            // Gates all review-host calls; absent means those calls are no-ops.
	LogLevel     slog.Level        //
	BasePath     string            // Tree root enabling the Kconfig check; empty disables it.
	CheckTimeout time.Duration     // Per-check deadline for external tool invocations.
	HistoryPath  string            // SQLite run-history database; empty disables persistence.
	Excludes     []string          // Default exclude filter, overridden by an explicit include.
	DocOverrides map[string]string // Per-check doc URL overrides, keyed by check name.
}

// HasGitHubToken reports whether review-host calls are enabled.
func (c *Config) HasGitHubToken() bool {
	return c.GitHubToken != ""
}

// fileConfig is the YAML schema of the optional config file.
type fileConfig struct {
	Timeout string            `yaml:"timeout"`
	History string            `yaml:"history"`
	Exclude []string          `yaml:"exclude"`
	Docs    map[string]string `yaml:"docs"`
}

// Load reads configuration from environment variables and, when
// CHECKMATE_CONFIG names a file, merges that file in underneath them.
// Recognized variables: CHECKMATE_GITHUB_TOKEN (optional credential),
// CHECKMATE_LOG_LEVEL (DEBUG, INFO, ERROR; default INFO), ZEPHYR_BASE
// (enables the Kconfig check), CHECKMATE_CONFIG (YAML file path).
func Load() (*Config, error) {
	cfg := &Config{
		GitHubToken:  os.Getenv("CHECKMATE_GITHUB_TOKEN"),
		LogLevel:     parseLevel(os.Getenv("CHECKMATE_LOG_LEVEL")),
		BasePath:     os.Getenv("ZEPHYR_BASE"),
		CheckTimeout: 0, // Caller-level default applies when unset.
		DocOverrides: map[string]string{},
	}

	path, ok := os.LookupEnv("CHECKMATE_CONFIG")
	if !ok || path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return nil, fmt.Errorf("config file %s: invalid timeout %q: %w", path, fc.Timeout, err)
		}
		cfg.CheckTimeout = d
	}
	cfg.HistoryPath = fc.History
	cfg.Excludes = fc.Exclude
	for name, doc := range fc.Docs {
		cfg.DocOverrides[name] = doc
	}

	return cfg, nil
}

// parseLevel maps the level variable onto slog levels; unknown or empty
// values select Info.
func parseLevel(v string) slog.Level {
	switch strings.ToUpper(v) {
	case "DEBUG":
		return slog.LevelDebug
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
