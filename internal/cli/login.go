// ABOUTME: Login command for storing push credentials.
// ABOUTME: Prompts for a username and token and saves them to the config file.
package cli

import (
	"errors"
	"fmt"

	"github.com/harper/gitpush/internal/config"
	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Prompt for credentials and store them in the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd)
		},
	}
	cmd.Flags().String("tool", "", "version-control binary to invoke (default git)")
	cmd.Flags().String("askpass", "", "askpass helper to expose to the tool (default /bin/echo)")

	return cmd
}

func runLogin(cmd *cobra.Command) error {
	prom := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

	cfg, cfgPath, err := loadConfig()
	if err != nil {
		return err
	}
	cfg = cfg.Clone()
	if cfg == nil {
		cfg = &config.Config{}
	}

	username, err := prom.Ask("Username", cfg.Username)
	if err != nil {
		return fmt.Errorf("reading username: %w", err)
	}
	password, err := prom.AskSecret("Password or token")
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	if password == "" {
		password = cfg.Password
	}
	if username == "" || password == "" {
		return errors.New("username and password are both required")
	}

	cfg.Username = username
	cfg.Password = password
	if tool, _ := cmd.Flags().GetString("tool"); tool != "" {
		cfg.Tool = tool
	}
	if askPass, _ := cmd.Flags().GetString("askpass"); askPass != "" {
		cfg.AskPass = askPass
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return err
	}

	cmd.Printf("✓ Credentials for %q saved to %s\n", cfg.Username, cfgPath)
	return nil
}
