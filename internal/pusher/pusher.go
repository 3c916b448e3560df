// ABOUTME: Push runner that publishes local commits to origin/main.
// ABOUTME: Builds the credential environment and invokes the git tool once.
package pusher

import (
	"context"
	"errors"
)

// Fixed push destination.
const (
	Remote = "origin"
	Branch = "main"
)

// DefaultTool is the version-control binary resolved via PATH.
const DefaultTool = "git"

// ErrMissingCredentials is returned when no username or password is available.
var ErrMissingCredentials = errors.New("missing credentials, set GITPUSH_USERNAME and GITPUSH_PASSWORD or run 'gitpush login'")

// Credentials are the answers supplied to the tool's credential prompts.
type Credentials struct {
	Username string
	Password string
}

// Complete reports whether both values are present.
func (c Credentials) Complete() bool {
	return c.Username != "" && c.Password != ""
}

// StdinLines renders the two prompt answers, one per line.
func (c Credentials) StdinLines() string {
	return c.Username + "\n" + c.Password + "\n"
}

// Runner performs a single push. Fields are read-only after construction.
type Runner struct {
	Tool    string
	AskPass string
	Dir     string
	Env     Environment
	Creds   Credentials
	Exec    Executor
}

// Options configure NewRunner.
type Options struct {
	Tool    string   // defaults to DefaultTool
	AskPass string   // defaults to DefaultAskPass
	Dir     string   // working directory; empty means the current one
	BaseEnv []string // usually os.Environ()
	Exec    Executor // defaults to ProcessExecutor
}

// NewRunner returns a Runner with defaults applied and the environment snapshotted.
func NewRunner(creds Credentials, opts Options) *Runner {
	tool := opts.Tool
	if tool == "" {
		tool = DefaultTool
	}
	askPass := opts.AskPass
	if askPass == "" {
		askPass = DefaultAskPass
	}
	executor := opts.Exec
	if executor == nil {
		executor = ProcessExecutor{}
	}
	return &Runner{
		Tool:    tool,
		AskPass: askPass,
		Dir:     opts.Dir,
		Env:     NewEnvironment(opts.BaseEnv, askPass, creds),
		Creds:   creds,
		Exec:    executor,
	}
}

// Args returns the fixed push arguments.
func Args() []string {
	return []string{"push", "-u", Remote, Branch}
}

// Invocation builds the process description for this runner.
func (r *Runner) Invocation() Invocation {
	return Invocation{
		Tool:    r.Tool,
		Args:    Args(),
		Environ: r.Env.Environ(),
		Stdin:   r.Creds.StdinLines(),
		Dir:     r.Dir,
	}
}

// Push runs the tool exactly once. A non-zero exit is reported through the
// Result, not the error; the error is always a *LaunchError.
func (r *Runner) Push(ctx context.Context) (*Result, error) {
	if r == nil || r.Exec == nil {
		return nil, &LaunchError{Err: errors.New("runner not initialized")}
	}
	res, err := r.Exec.Execute(ctx, r.Invocation())
	if err != nil {
		var launchErr *LaunchError
		if errors.As(err, &launchErr) {
			return nil, launchErr
		}
		return nil, &LaunchError{Tool: r.Tool, Err: err}
	}
	return res, nil
}
