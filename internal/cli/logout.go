// ABOUTME: Logout command for removing stored credentials.
// ABOUTME: Clears username and password from the config file.
package cli

import (
	"fmt"

	"github.com/harper/gitpush/internal/config"
	"github.com/spf13/cobra"
)

func newLogoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(cmd)
		},
	}
	return cmd
}

func runLogout(cmd *cobra.Command) error {
	cfg, cfgPath, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Username == "" && cfg.Password == "" {
		cmd.Println("No credentials were stored.")
		return nil
	}

	cfg.Username = ""
	cfg.Password = ""

	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	cmd.Println("✓ Credentials removed.")
	return nil
}
