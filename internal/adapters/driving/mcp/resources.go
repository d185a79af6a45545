package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/userdir-cli/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for userdir resources.
	uriScheme = "userdir://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the listing as currently displayed.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "users",
		Name:        "users",
		Description: "The directory listing as currently displayed (page or search results)",
		MIMEType:    "application/json",
	}, s.handleUsersResource)

	// Template for a single user.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "users/{id}",
		Name:        "user",
		Description: "A single directory user",
		MIMEType:    "application/json",
	}, s.handleUserResource)
}

// viewInfo is the JSON form of the displayed listing.
type viewInfo struct {
	Mode       domain.ViewMode `json:"mode"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
	Query      string          `json:"query,omitempty"`
	Users      []UserOutput    `json:"users"`
}

// handleUsersResource returns the displayed listing without fetching.
func (s *Server) handleUsersResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.authorize(ctx); err != nil {
		return nil, err
	}

	view := s.ports.Directory.State()
	info := viewInfo{
		Mode:       view.Mode,
		Page:       view.Page,
		TotalPages: view.TotalPages,
		Query:      view.Query,
		Users:      usersOutput(view.Displayed).Users,
	}
	return jsonResource(req.Params.URI, info)
}

// handleUserResource resolves one user by id.
func (s *Server) handleUserResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractUserID(req.Params.URI)
	if id == 0 {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.authorize(ctx); err != nil {
		return nil, err
	}

	entry, err := s.ports.Editor.Open(ctx, domain.EditContext{ID: id})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("resolving user: %w", err)
	}
	s.ports.Editor.Cancel()
	return jsonResource(req.Params.URI, userOutput(entry))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractUserID extracts the id from a URI like userdir://users/{id}.
// It returns 0 for anything else.
func extractUserID(uri string) int {
	const prefix = uriScheme + "users/"

	if !strings.HasPrefix(uri, prefix) {
		return 0
	}
	id, err := strconv.Atoi(strings.TrimPrefix(uri, prefix))
	if err != nil || id < 1 {
		return 0
	}
	return id
}
