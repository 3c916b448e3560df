// ABOUTME: Root command and CLI setup for the gitpush application.
// ABOUTME: Running the root command performs the push; subcommands manage state.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// appOptions carries CLI-wide path overrides.
type appOptions struct {
	configPath string
	dataDir    string
}

var opts = appOptions{}

// Execute runs the Cobra root command.
func Execute() error {
	cmd := newRootCmd()
	return cmd.Execute()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gitpush",
		Short: "Push committed changes to origin/main",
		Long: `gitpush runs 'git push -u origin main' once, answering credential prompts
from the environment or the config file, and prints the captured output,
the exit code, and a success or failure line.`,
		Args: cobra.NoArgs,
		RunE: runPush,
	}
	cmd.SilenceUsage = true

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/gitpush/config.toml)")
	cmd.PersistentFlags().StringVar(&opts.dataDir, "data", "", "data directory (default ~/.local/share/gitpush)")

	cmd.Flags().Bool("strict", false, "exit non-zero when the push fails or cannot start")
	cmd.Flags().String("dir", "", "repository directory (default current directory)")
	cmd.Flags().Bool("no-history", false, "do not record this attempt")

	cmd.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newHistoryCmd(),
		newConfigCmd(),
		newMCPCmd(),
	)

	return cmd
}

func resolveConfigPath() (string, error) {
	if opts.configPath != "" {
		return opts.configPath, nil
	}

	// Use XDG_CONFIG_HOME if set, otherwise ~/.config (even on macOS)
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("locating home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "gitpush", "config.toml"), nil
}

func resolveDataDir() (string, error) {
	if opts.dataDir != "" {
		return opts.dataDir, nil
	}

	// Use XDG_DATA_HOME if set, otherwise ~/.local/share (even on macOS)
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("locating home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataDir, "gitpush"), nil
}
