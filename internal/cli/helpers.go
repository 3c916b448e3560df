// ABOUTME: Helper functions shared across CLI commands.
// ABOUTME: Provides config loading, database access, and runner creation.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/harper/gitpush/internal/config"
	"github.com/harper/gitpush/internal/db"
	"github.com/harper/gitpush/internal/pusher"
)

func loadConfig() (*config.Config, string, error) {
	cfgPath, err := resolveConfigPath()
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, "", err
	}
	return cfg, cfgPath, nil
}

func databasePath() (string, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "gitpush.db"), nil
}

func openStore() (*db.Store, string, error) {
	path, err := databasePath()
	if err != nil {
		return nil, "", err
	}
	store, err := db.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open database: %w", err)
	}
	return store, path, nil
}

func newRunnerFromConfig(cfg *config.Config, creds pusher.Credentials, dir string) *pusher.Runner {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return pusher.NewRunner(creds, pusher.Options{
		Tool:    cfg.Tool,
		AskPass: cfg.AskPass,
		Dir:     dir,
		BaseEnv: os.Environ(),
	})
}
