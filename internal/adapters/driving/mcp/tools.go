package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/userdir-cli/internal/core/domain"
)

// ListUsersInput is the input schema for the list_users tool.
type ListUsersInput struct {
	Page int `json:"page,omitempty" jsonschema:"page number, starting at 1 (default 1)"`
}

// SearchUsersInput is the input schema for the search_users tool.
type SearchUsersInput struct {
	Query string `json:"query" jsonschema:"case-insensitive substring of the user's full name"`
}

// UserIDInput identifies one user.
type UserIDInput struct {
	ID int `json:"id" jsonschema:"the user id"`
}

// UpdateUserInput is the input schema for the update_user tool.
// Omitted fields keep their current value.
type UpdateUserInput struct {
	ID        int    `json:"id" jsonschema:"the user id"`
	FirstName string `json:"first_name,omitempty" jsonschema:"new first name"`
	LastName  string `json:"last_name,omitempty" jsonschema:"new last name"`
	Email     string `json:"email,omitempty" jsonschema:"new email address"`
}

// UserOutput is a single directory user.
type UserOutput struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar,omitempty"`
}

// UsersOutput is the output schema for list_users and search_users.
type UsersOutput struct {
	Users      []UserOutput `json:"users"`
	Count      int          `json:"count"`
	Page       int          `json:"page,omitempty"`
	TotalPages int          `json:"total_pages,omitempty"`
	Query      string       `json:"query,omitempty"`
}

// GetUserOutput is the output schema for get_user.
type GetUserOutput struct {
	User UserOutput `json:"user"`
	Page int        `json:"page"`
}

// DeleteUserOutput is the output schema for delete_user.
type DeleteUserOutput struct {
	ID      int  `json:"id"`
	Deleted bool `json:"deleted"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_users",
		Description: "List one page of directory users",
	}, s.handleListUsers)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_users",
		Description: "Search directory users by name across every page",
	}, s.handleSearchUsers)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_user",
		Description: "Get one directory user by id",
	}, s.handleGetUser)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_user",
		Description: "Update the name or email of a directory user",
	}, s.handleUpdateUser)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_user",
		Description: "Delete a directory user",
	}, s.handleDeleteUser)
}

func (s *Server) handleListUsers(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListUsersInput,
) (*mcp.CallToolResult, UsersOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.authorize(ctx); err != nil {
		return nil, UsersOutput{}, err
	}

	page := input.Page
	if page <= 0 {
		page = 1
	}
	// Listing is paginated mode; end any search a previous call started.
	s.ports.Directory.SetQuery(ctx, "")
	if err := s.ports.Directory.SetPage(ctx, page); err != nil {
		return nil, UsersOutput{}, toolError(err)
	}
	view := s.ports.Directory.State()
	out := usersOutput(view.Displayed)
	out.Page = view.Page
	out.TotalPages = view.TotalPages
	return nil, out, nil
}

func (s *Server) handleSearchUsers(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchUsersInput,
) (*mcp.CallToolResult, UsersOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.authorize(ctx); err != nil {
		return nil, UsersOutput{}, err
	}

	if err := s.ports.Directory.Search(ctx, input.Query); err != nil {
		return nil, UsersOutput{}, toolError(err)
	}
	view := s.ports.Directory.State()
	if view.Mode != domain.ModeSearch {
		return nil, UsersOutput{}, errors.New("query must not be empty")
	}
	out := usersOutput(view.Displayed)
	out.Query = view.Query
	return nil, out, nil
}

func (s *Server) handleGetUser(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UserIDInput,
) (*mcp.CallToolResult, GetUserOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.authorize(ctx); err != nil {
		return nil, GetUserOutput{}, err
	}

	entry, err := s.ports.Editor.Open(ctx, domain.EditContext{ID: input.ID})
	if err != nil {
		return nil, GetUserOutput{}, toolError(err)
	}
	page := s.ports.Editor.SourcePage()
	s.ports.Editor.Cancel()
	return nil, GetUserOutput{User: userOutput(entry), Page: page}, nil
}

func (s *Server) handleUpdateUser(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdateUserInput,
) (*mcp.CallToolResult, UserOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.authorize(ctx); err != nil {
		return nil, UserOutput{}, err
	}

	entry, err := s.ports.Editor.Open(ctx, domain.EditContext{ID: input.ID})
	if err != nil {
		return nil, UserOutput{}, toolError(err)
	}

	fields := domain.FieldsOf(entry)
	if input.FirstName != "" {
		fields.FirstName = input.FirstName
	}
	if input.LastName != "" {
		fields.LastName = input.LastName
	}
	if input.Email != "" {
		fields.Email = input.Email
	}

	updated, err := s.ports.Editor.Submit(ctx, fields)
	if err != nil {
		s.ports.Editor.Cancel()
		return nil, UserOutput{}, toolError(err)
	}
	return nil, userOutput(updated), nil
}

func (s *Server) handleDeleteUser(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UserIDInput,
) (*mcp.CallToolResult, DeleteUserOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.authorize(ctx); err != nil {
		return nil, DeleteUserOutput{}, err
	}

	if err := s.ports.Directory.Delete(ctx, input.ID); err != nil {
		return nil, DeleteUserOutput{}, toolError(err)
	}
	return nil, DeleteUserOutput{ID: input.ID, Deleted: true}, nil
}

// toolError keeps the user message and the cause.
func toolError(err error) error {
	return fmt.Errorf("%s: %w", domain.UserMessage(err), err)
}

func userOutput(e domain.Entry) UserOutput {
	return UserOutput{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
		Avatar:    e.Avatar,
	}
}

func usersOutput(entries []domain.Entry) UsersOutput {
	out := UsersOutput{
		Users: make([]UserOutput, len(entries)),
		Count: len(entries),
	}
	for i := range entries {
		out.Users[i] = userOutput(entries[i])
	}
	return out
}
