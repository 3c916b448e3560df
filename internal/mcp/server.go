// ABOUTME: MCP server setup and initialization.
// ABOUTME: Wires together push tools, history resources, and the runner.
package mcp

import (
	"context"
	"fmt"
	"os"

	"github.com/harper/gitpush/internal/config"
	"github.com/harper/gitpush/internal/db"
	"github.com/harper/gitpush/internal/pusher"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP runtime and gitpush integrations.
type Server struct {
	mcp     *mcp.Server
	cfg     *config.Config
	cfgPath string
	store   *db.Store
	dbPath  string
	exec    pusher.Executor
}

// ServerOption configures the gitpush MCP server.
type ServerOption func(*Server)

// WithExecutor replaces the process executor used for pushes.
func WithExecutor(e pusher.Executor) ServerOption {
	return func(s *Server) {
		s.exec = e
	}
}

// NewServer sets up the MCP server with all tools and resources.
func NewServer(cfg *config.Config, cfgPath string, store *db.Store, dbPath string, opts ...ServerOption) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if store == nil {
		return nil, fmt.Errorf("database store is required")
	}

	impl := &mcp.Implementation{Name: "gitpush", Version: Version}
	srv := mcp.NewServer(impl, nil)

	server := &Server{
		mcp:     srv,
		cfg:     cfg,
		cfgPath: cfgPath,
		store:   store,
		dbPath:  dbPath,
	}
	for _, o := range opts {
		o(server)
	}

	server.registerTools()
	server.registerResources()

	return server, nil
}

// Serve starts the MCP server over stdio.
func (s *Server) Serve(ctx context.Context) error {
	transport := &mcp.StdioTransport{}
	return s.mcp.Run(ctx, transport)
}

// Connect attaches the server to an arbitrary transport.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.mcp.Connect(ctx, t, nil)
}

func (s *Server) credentials() (pusher.Credentials, error) {
	user, pass := s.cfg.ResolveCredentials(os.Getenv)
	creds := pusher.Credentials{Username: user, Password: pass}
	if !creds.Complete() {
		return creds, pusher.ErrMissingCredentials
	}
	return creds, nil
}

func (s *Server) newRunner(creds pusher.Credentials, dir string) *pusher.Runner {
	return pusher.NewRunner(creds, pusher.Options{
		Tool:    s.cfg.Tool,
		AskPass: s.cfg.AskPass,
		Dir:     dir,
		BaseEnv: os.Environ(),
		Exec:    s.exec,
	})
}
