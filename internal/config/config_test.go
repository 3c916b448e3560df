// ABOUTME: Tests for configuration management.
// ABOUTME: Validates config loading, saving, and credential resolution.
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadNonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.toml")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.False(t, cfg.HasCredentials())
}

func TestSaveAndLoad(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "nested", "config.toml")

	original := &Config{
		Username: "octo-user",
		Password: "s3cret",
		Tool:     "/usr/local/bin/git",
		AskPass:  "/bin/true",
	}

	require.NoError(t, Save(cfgPath, original))

	info, err := os.Stat(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestSaveNil(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "config.toml"), nil)
	assert.Error(t, err)
}

func TestLoadInvalidTOML(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("username = [unterminated"), 0o600))

	_, err := Load(cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestResolveCredentialsPrefersEnvironment(t *testing.T) {
	cfg := &Config{Username: "stored-user", Password: "stored-pass"}
	env := map[string]string{EnvPassword: "env-pass"}

	user, pass := cfg.ResolveCredentials(func(k string) string { return env[k] })

	assert.Equal(t, "stored-user", user)
	assert.Equal(t, "env-pass", pass)
}

func TestResolveCredentialsNilConfig(t *testing.T) {
	var cfg *Config
	env := map[string]string{EnvUsername: "u", EnvPassword: "p"}

	user, pass := cfg.ResolveCredentials(func(k string) string { return env[k] })

	assert.Equal(t, "u", user)
	assert.Equal(t, "p", pass)
}

func TestRedacted(t *testing.T) {
	cfg := &Config{Username: "u", Password: "p"}
	red := cfg.Redacted()

	assert.Equal(t, "u", red.Username)
	assert.NotEqual(t, "p", red.Password)
	assert.Equal(t, "p", cfg.Password, "original must be untouched")
}

func TestCredentialSourcesFollowResolutionOrder(t *testing.T) {
	cfg := &Config{Username: "stored-user"}
	env := map[string]string{EnvPassword: "env-pass"}

	user, pass := cfg.CredentialSources(func(k string) string { return env[k] })
	assert.Equal(t, SourceConfig, user)
	assert.Equal(t, SourceEnv, pass)

	var empty *Config
	user, pass = empty.CredentialSources(func(string) string { return "" })
	assert.Equal(t, SourceUnset, user)
	assert.Equal(t, SourceUnset, pass)
}
