// ABOUTME: MCP tool definitions and handlers.
// ABOUTME: Implements push and history query operations.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/harper/gitpush/internal/db"
	"github.com/harper/gitpush/internal/history"
	"github.com/harper/gitpush/internal/pusher"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	s.registerPushChangesTool()
	s.registerListHistoryTool()
}

func (s *Server) registerPushChangesTool() {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"dir": map[string]any{
				"type":        "string",
				"description": "Working directory of the repository. Defaults to the server's working directory.",
			},
		},
	}

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "push_changes",
		Description: "Run 'git push -u origin main' once using the configured credentials and return its output and exit code.",
		InputSchema: schema,
	}, s.handlePushChanges)
}

func (s *Server) registerListHistoryTool() {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"limit": map[string]any{
				"type":        "integer",
				"minimum":     1,
				"description": "Number of rows to return (default 20).",
			},
			"since": map[string]any{
				"type":        "string",
				"description": "Natural language or ISO date filter (e.g. 'yesterday', '2025-01-01').",
			},
			"search": map[string]any{
				"type":        "string",
				"description": "Text search over captured output and launch errors.",
			},
		},
	}

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_history",
		Description: "Query past push attempts from the local SQLite database.",
		InputSchema: schema,
	}, s.handleListHistory)
}

type PushChangesInput struct {
	Dir string `json:"dir,omitempty"`
}

type PushChangesOutput struct {
	RunID     string `json:"run_id"`
	Remote    string `json:"remote"`
	Branch    string `json:"branch"`
	ExitCode  *int   `json:"exit_code,omitempty"`
	Stdout    string `json:"stdout"`
	Stderr    string `json:"stderr"`
	Succeeded bool   `json:"succeeded"`
	Error     string `json:"error,omitempty"`
	Report    string `json:"report"`
	Logged    bool   `json:"logged"`
	Warning   string `json:"warning,omitempty"`
}

// handlePushChanges reports launch failures and non-zero exits in the output;
// only missing credentials fail the tool call itself.
func (s *Server) handlePushChanges(ctx context.Context, _ *mcp.CallToolRequest, input PushChangesInput) (*mcp.CallToolResult, PushChangesOutput, error) {
	creds, err := s.credentials()
	if err != nil {
		return nil, PushChangesOutput{}, err
	}

	runner := s.newRunner(creds, input.Dir)
	res, pushErr := runner.Push(ctx)

	rec, logErr := history.Log(ctx, s.store, runner, res, pushErr)

	output := PushChangesOutput{
		RunID:     rec.RunID,
		Remote:    pusher.Remote,
		Branch:    pusher.Branch,
		ExitCode:  rec.ExitCode,
		Stdout:    rec.Stdout,
		Stderr:    rec.Stderr,
		Succeeded: pushErr == nil && res.Succeeded(),
		Report:    pusher.Summarize(res, pushErr),
		Logged:    logErr == nil,
	}
	if pushErr != nil {
		output.Error = pushErr.Error()
	}
	if logErr != nil {
		output.Warning = fmt.Sprintf("failed to log history: %v", logErr)
	}

	result, err := buildToolResult(output)
	if err != nil {
		return nil, output, err
	}
	return result, output, nil
}

type ListHistoryInput struct {
	Limit  *int    `json:"limit,omitempty"`
	Since  *string `json:"since,omitempty"`
	Search *string `json:"search,omitempty"`
}

type ListHistoryOutput struct {
	Count  int            `json:"count"`
	Limit  int            `json:"limit"`
	Since  *time.Time     `json:"since,omitempty"`
	Search string         `json:"search,omitempty"`
	Runs   []db.RunRecord `json:"runs"`
}

func (s *Server) handleListHistory(ctx context.Context, _ *mcp.CallToolRequest, input ListHistoryInput) (*mcp.CallToolResult, ListHistoryOutput, error) {
	limit := 20
	if input.Limit != nil && *input.Limit > 0 {
		limit = *input.Limit
	}

	var sinceTime *time.Time
	if input.Since != nil && *input.Since != "" {
		parsed, err := dateparse.ParseLocal(*input.Since)
		if err != nil {
			return nil, ListHistoryOutput{}, fmt.Errorf("invalid since value: %w", err)
		}
		sinceTime = &parsed
	}

	searchVal := ""
	if input.Search != nil {
		searchVal = *input.Search
	}

	records, err := s.store.QueryRuns(ctx, limit, sinceTime, searchVal)
	if err != nil {
		return nil, ListHistoryOutput{}, err
	}
	if records == nil {
		records = []db.RunRecord{}
	}

	output := ListHistoryOutput{
		Count:  len(records),
		Limit:  limit,
		Since:  sinceTime,
		Search: searchVal,
		Runs:   records,
	}

	result, err := buildToolResult(output)
	if err != nil {
		return nil, output, err
	}
	return result, output, nil
}

func buildToolResult(payload any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil
}
