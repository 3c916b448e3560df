// ABOUTME: Push command that runs the git push and prints its report.
// ABOUTME: Resolves credentials, invokes the runner once, and logs the attempt.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/harper/gitpush/internal/config"
	"github.com/harper/gitpush/internal/history"
	"github.com/harper/gitpush/internal/pusher"
	"github.com/spf13/cobra"
)

// runPush prints the report and, unless --strict is set, always succeeds.
func runPush(cmd *cobra.Command, args []string) error {
	strict, _ := cmd.Flags().GetBool("strict")
	dir, _ := cmd.Flags().GetString("dir")
	noHistory, _ := cmd.Flags().GetBool("no-history")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	runner, prepErr := preparePush(cmd, dir)

	var res *pusher.Result
	pushErr := prepErr
	if prepErr == nil {
		res, pushErr = runner.Push(ctx)
		if !noHistory {
			if err := logRun(ctx, runner, res, pushErr); err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: unable to log push attempt: %v\n", err)
			}
		}
	}

	if err := pusher.Report(cmd.OutOrStdout(), res, pushErr); err != nil {
		return err
	}

	if !strict {
		return nil
	}
	// The report already carries the reason.
	cmd.SilenceErrors = true
	if pushErr != nil {
		return pushErr
	}
	return res.Err()
}

func preparePush(cmd *cobra.Command, dir string) (*pusher.Runner, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, err
	}
	creds, err := resolveCredentials(cmd, cfg)
	if err != nil {
		return nil, err
	}
	return newRunnerFromConfig(cfg, creds, dir), nil
}

// resolveCredentials reads the environment and config, then prompts for
// anything still missing when stdin is a terminal.
func resolveCredentials(cmd *cobra.Command, cfg *config.Config) (pusher.Credentials, error) {
	user, pass := cfg.ResolveCredentials(os.Getenv)
	creds := pusher.Credentials{Username: user, Password: pass}
	if creds.Complete() {
		return creds, nil
	}
	if !isTerminal(cmd.InOrStdin()) {
		return creds, pusher.ErrMissingCredentials
	}

	prom := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
	if creds.Username == "" {
		v, err := prom.Ask("Username", "")
		if err != nil {
			return creds, fmt.Errorf("reading username: %w", err)
		}
		creds.Username = v
	}
	if creds.Password == "" {
		v, err := prom.AskSecret("Password or token")
		if err != nil {
			return creds, fmt.Errorf("reading password: %w", err)
		}
		creds.Password = v
	}
	if !creds.Complete() {
		return creds, pusher.ErrMissingCredentials
	}
	return creds, nil
}

func logRun(ctx context.Context, runner *pusher.Runner, res *pusher.Result, pushErr error) error {
	store, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	_, err = history.Log(ctx, store, runner, res, pushErr)
	return err
}
