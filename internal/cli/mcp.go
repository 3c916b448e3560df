// ABOUTME: MCP command for starting the Model Context Protocol server.
// ABOUTME: Exposes push and history as MCP tools over stdio.
package cli

import (
	"fmt"
	"os"

	"github.com/harper/gitpush/internal/config"
	pushmcp "github.com/harper/gitpush/internal/mcp"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server",
		RunE:  runMCP,
	}
	return cmd
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, cfgPath, err := loadConfig()
	if err != nil {
		return err
	}

	if user, pass := cfg.ResolveCredentials(os.Getenv); user == "" || pass == "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: credentials not configured, push_changes will fail until you run 'gitpush login' or set %s and %s\n", config.EnvUsername, config.EnvPassword)
	}

	store, dbPath, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	server, err := pushmcp.NewServer(cfg, cfgPath, store, dbPath)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Starting MCP server (stdio)...")
	return server.Serve(cmd.Context())
}
