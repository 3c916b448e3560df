// ABOUTME: Outcome types for a single push invocation.
// ABOUTME: Separates launch failures from tool runs that exit non-zero.
package pusher

import (
	"fmt"
	"time"
)

// Result is the captured outcome of a tool run that reached termination.
type Result struct {
	RunID     string
	Stdout    string
	Stderr    string
	ExitCode  int
	StartedAt time.Time
	Duration  time.Duration
}

// Succeeded reports whether the tool exited with status zero.
func (r *Result) Succeeded() bool {
	return r != nil && r.ExitCode == 0
}

// Err returns an *ExitStatusError when the tool exited non-zero, nil otherwise.
func (r *Result) Err() error {
	if r == nil || r.ExitCode == 0 {
		return nil
	}
	return &ExitStatusError{Code: r.ExitCode}
}

// ExitStatusError signals that the tool ran but exited with a non-zero status.
type ExitStatusError struct {
	Code int
}

func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("push exited with status %d", e.Code)
}

// LaunchError signals that the tool could not be started, so no Result exists.
type LaunchError struct {
	Tool string
	Err  error
}

func (e *LaunchError) Error() string {
	if e.Tool == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("launching %s: %v", e.Tool, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}
