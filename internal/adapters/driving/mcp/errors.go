// Package mcp provides an MCP (Model Context Protocol) server adapter for userdir.
// It lets AI assistants page, search, edit and delete directory users through
// the same core services as the CLI.
package mcp

import "errors"

// ErrMissingDirectoryService is returned when the directory view is not provided.
var ErrMissingDirectoryService = errors.New("mcp: directory service is required")

// ErrMissingEditorService is returned when the entry editor is not provided.
var ErrMissingEditorService = errors.New("mcp: editor service is required")

// ErrNotLoggedIn is returned by tools when no valid session is present.
var ErrNotLoggedIn = errors.New(`not logged in: run "userdir login" first`)
