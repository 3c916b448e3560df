// ABOUTME: Tests for the MCP server tools and resources.
// ABOUTME: Drives the server over in-memory transports with a stub git.
package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harper/gitpush/internal/config"
	"github.com/harper/gitpush/internal/db"
	"github.com/harper/gitpush/internal/pusher"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStub(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "git-stub")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func setup(t *testing.T, cfg *config.Config) *mcp.ClientSession {
	t.Helper()
	t.Setenv(config.EnvUsername, "")
	t.Setenv(config.EnvPassword, "")
	ctx := context.Background()

	dbPath := filepath.Join(t.TempDir(), "gitpush.db")
	store, err := db.Open(dbPath)
	require.NoError(t, err)

	server, err := NewServer(cfg, "/tmp/config.toml", store, dbPath)
	require.NoError(t, err)

	ct, st := mcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, st)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = cs.Close()
		_ = ss.Wait()
		_ = store.Close()
	})
	return cs
}

func callTool(t *testing.T, cs *mcp.ClientSession, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)
	return res
}

func resultText(r *mcp.CallToolResult) string {
	var parts []string
	for _, c := range r.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func TestNewServerRequiresDeps(t *testing.T) {
	_, err := NewServer(nil, "", &db.Store{}, "")
	assert.Error(t, err)
	_, err = NewServer(&config.Config{}, "", nil, "")
	assert.Error(t, err)
}

func TestPushChangesSuccess(t *testing.T) {
	stub := writeStub(t, `echo "Everything up-to-date" >&2`)
	cs := setup(t, &config.Config{Username: "u", Password: "p", Tool: stub})

	res := callTool(t, cs, "push_changes", map[string]any{})
	require.False(t, res.IsError, resultText(res))

	var out PushChangesOutput
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &out))
	assert.True(t, out.Succeeded)
	assert.True(t, out.Logged)
	require.NotNil(t, out.ExitCode)
	assert.Equal(t, 0, *out.ExitCode)
	assert.Contains(t, out.Report, "STDERR: Everything up-to-date\n")
	assert.True(t, strings.HasSuffix(out.Report, pusher.SuccessMarker+"\n"))

	hist := callTool(t, cs, "list_history", map[string]any{"limit": 5})
	var listed ListHistoryOutput
	require.NoError(t, json.Unmarshal([]byte(resultText(hist)), &listed))
	require.Equal(t, 1, listed.Count)
	assert.Equal(t, out.RunID, listed.Runs[0].RunID)
}

func TestPushChangesNonZeroExit(t *testing.T) {
	stub := writeStub(t, "exit 1")
	cs := setup(t, &config.Config{Username: "u", Password: "p", Tool: stub})

	res := callTool(t, cs, "push_changes", map[string]any{})

	var out PushChangesOutput
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &out))
	assert.False(t, out.Succeeded)
	assert.Empty(t, out.Error)
	assert.Contains(t, out.Report, "Return code: 1\n")
	assert.True(t, strings.HasSuffix(out.Report, pusher.FailureMarker+"\n"))
}

func TestPushChangesLaunchError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing-git")
	cs := setup(t, &config.Config{Username: "u", Password: "p", Tool: missing})

	res := callTool(t, cs, "push_changes", map[string]any{})

	var out PushChangesOutput
	require.NoError(t, json.Unmarshal([]byte(resultText(res)), &out))
	assert.False(t, out.Succeeded)
	assert.Nil(t, out.ExitCode)
	assert.NotEmpty(t, out.Error)
	assert.True(t, strings.HasPrefix(out.Report, "Error: "))
}

func TestPushChangesMissingCredentials(t *testing.T) {
	stub := writeStub(t, "exit 0")
	cs := setup(t, &config.Config{Tool: stub})

	res := callTool(t, cs, "push_changes", map[string]any{})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(res), "missing credentials")
}

func TestListHistoryInvalidSince(t *testing.T) {
	cs := setup(t, &config.Config{})

	res := callTool(t, cs, "list_history", map[string]any{"since": "not a date at all"})
	assert.True(t, res.IsError)
}

func TestStatusResourceHidesSecrets(t *testing.T) {
	cs := setup(t, &config.Config{Username: "octo-user", Password: "s3cret"})

	res, err := cs.ReadResource(context.Background(), &mcp.ReadResourceParams{URI: "gitpush://status"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)

	text := res.Contents[0].Text
	assert.Contains(t, text, `"credentials_ready": true`)
	assert.NotContains(t, text, "octo-user")
	assert.NotContains(t, text, "s3cret")
}
