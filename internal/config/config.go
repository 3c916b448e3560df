// ABOUTME: Configuration management for the gitpush application.
// ABOUTME: Handles TOML config loading, atomic saving, and credential lookup.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Environment variables that take precedence over stored credentials.
const (
	EnvUsername = "GITPUSH_USERNAME"
	EnvPassword = "GITPUSH_PASSWORD"
)

// Config describes the persisted gitpush settings.
type Config struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
	Tool     string `toml:"tool,omitempty"`
	AskPass  string `toml:"askpass,omitempty"`
}

// Load reads the config from disk. If the file does not exist it returns a default config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save writes the config atomically to disk with owner-only permissions.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, "config-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp config file: %w", err)
	}
	tmpName := tmpFile.Name()
	if err := os.Chmod(tmpName, 0o600); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("setting config permissions: %w", err)
	}
	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing temp config file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing temp config file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replacing config: %w", err)
	}

	return nil
}

// ResolveCredentials returns the username and password, preferring the
// environment over stored values. Each value resolves independently.
func (c *Config) ResolveCredentials(getenv func(string) string) (username, password string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if c != nil {
		username, password = c.Username, c.Password
	}
	if v := getenv(EnvUsername); v != "" {
		username = v
	}
	if v := getenv(EnvPassword); v != "" {
		password = v
	}
	return username, password
}

// HasCredentials indicates whether both stored values are present.
func (c *Config) HasCredentials() bool {
	if c == nil {
		return false
	}
	return c.Username != "" && c.Password != ""
}

// Clone returns a shallow copy of the config to avoid accidental mutation.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	copied := *c
	return &copied
}

// Redacted returns a copy safe for display, with the password masked.
func (c *Config) Redacted() *Config {
	copied := c.Clone()
	if copied == nil {
		return &Config{}
	}
	if copied.Password != "" {
		copied.Password = "********"
	}
	return copied
}

// Credential sources reported by CredentialSources.
const (
	SourceEnv    = "env"
	SourceConfig = "config"
	SourceUnset  = "unset"
)

// CredentialSources reports where ResolveCredentials takes each value from,
// using the same precedence.
func (c *Config) CredentialSources(getenv func(string) string) (username, password string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	var storedUser, storedPass string
	if c != nil {
		storedUser, storedPass = c.Username, c.Password
	}
	return sourceOf(getenv(EnvUsername), storedUser), sourceOf(getenv(EnvPassword), storedPass)
}

func sourceOf(envValue, stored string) string {
	switch {
	case envValue != "":
		return SourceEnv
	case stored != "":
		return SourceConfig
	default:
		return SourceUnset
	}
}
