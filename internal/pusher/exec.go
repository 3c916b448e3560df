// ABOUTME: Subprocess execution for the push command.
// ABOUTME: Runs the tool with piped stdin and captures output and exit code.
package pusher

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
)

// Invocation describes one process launch.
type Invocation struct {
	Tool    string
	Args    []string
	Environ []string
	Stdin   string
	Dir     string
}

// Executor launches an Invocation and waits for it to finish.
// It returns a *LaunchError when the process cannot be started.
type Executor interface {
	Execute(ctx context.Context, inv Invocation) (*Result, error)
}

// ProcessExecutor runs invocations as real OS processes.
type ProcessExecutor struct{}

// Execute starts the tool, feeds Stdin, and blocks until it exits.
func (ProcessExecutor) Execute(ctx context.Context, inv Invocation) (*Result, error) {
	if inv.Tool == "" {
		return nil, &LaunchError{Err: errors.New("no tool configured")}
	}

	cmd := exec.CommandContext(ctx, inv.Tool, inv.Args...)
	cmd.Env = inv.Environ
	cmd.Dir = inv.Dir
	cmd.Stdin = strings.NewReader(inv.Stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	started := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(started)

	exitCode := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			// Binary not found, bad dir, permission denied.
			return nil, &LaunchError{Tool: inv.Tool, Err: runErr}
		}
		exitCode = exitCodeOf(exitErr)
	}

	return &Result{
		RunID:     uuid.New().String(),
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		ExitCode:  exitCode,
		StartedAt: started,
		Duration:  elapsed,
	}, nil
}

// exitCodeOf reports a signal death as the negated signal number, so a
// SIGKILL reads as -9 rather than the -1 ExitCode gives.
func exitCodeOf(exitErr *exec.ExitError) int {
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return -int(ws.Signal())
	}
	return exitErr.ExitCode()
}
