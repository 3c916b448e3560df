// ABOUTME: MCP resource definitions and providers.
// ABOUTME: Exposes push history and credential status as resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harper/gitpush/internal/pusher"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ResourcePayload struct {
	Metadata ResourceMetadata  `json:"metadata"`
	Data     interface{}       `json:"data"`
	Links    map[string]string `json:"links,omitempty"`
}

type ResourceMetadata struct {
	Timestamp   time.Time `json:"timestamp"`
	ResourceURI string    `json:"resource_uri"`
	Count       int       `json:"count"`
}

func (s *Server) registerResources() {
	s.registerHistoryResource()
	s.registerStatusResource()
}

func (s *Server) registerHistoryResource() {
	res := &mcp.Resource{
		URI:         "gitpush://history",
		Name:        "Recent Push Attempts",
		Description: "Last 20 push attempts from the local SQLite database.",
		MIMEType:    "application/json",
	}

	s.mcp.AddResource(res, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		records, err := s.store.QueryRuns(ctx, 20, nil, "")
		if err != nil {
			return nil, err
		}
		payload := ResourcePayload{
			Metadata: ResourceMetadata{
				Timestamp:   time.Now(),
				ResourceURI: res.URI,
				Count:       len(records),
			},
			Data: records,
		}
		return buildResourceResult(req.Params.URI, payload)
	})
}

func (s *Server) registerStatusResource() {
	res := &mcp.Resource{
		URI:         "gitpush://status",
		Name:        "Push Status",
		Description: "Credential presence, tool settings, and database location. Never includes secret values.",
		MIMEType:    "application/json",
	}

	s.mcp.AddResource(res, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		cfg := s.cfg
		_, credErr := s.credentials()
		runner := s.newRunner(pusher.Credentials{}, "")
		status := map[string]interface{}{
			"config": map[string]interface{}{
				"path":                s.cfgPath,
				"has_stored_username": cfg.Username != "",
				"has_stored_password": cfg.Password != "",
				"credentials_ready":   credErr == nil,
			},
			"push": map[string]interface{}{
				"tool":    runner.Tool,
				"askpass": runner.AskPass,
				"remote":  pusher.Remote,
				"branch":  pusher.Branch,
			},
			"database": map[string]interface{}{
				"path": s.dbPath,
			},
			"timestamp": time.Now(),
		}

		payload := ResourcePayload{
			Metadata: ResourceMetadata{
				Timestamp:   time.Now(),
				ResourceURI: res.URI,
				Count:       1,
			},
			Data: status,
			Links: map[string]string{
				"history": "gitpush://history",
			},
		}
		return buildResourceResult(req.Params.URI, payload)
	})
}

func buildResourceResult(uri string, payload ResourcePayload) (*mcp.ReadResourceResult, error) {
	bytes, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(bytes),
			},
		},
	}, nil
}
