package mcp

import (
	"github.com/custodia-labs/userdir-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Directory provides paging, search and delete.
	Directory driving.DirectoryView

	// Editor resolves and updates single users.
	Editor driving.EntryEditor

	// Auth gates every tool on a valid session. Optional; when nil the
	// tools run unauthenticated.
	Auth driving.AuthService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Directory == nil {
		return ErrMissingDirectoryService
	}
	if p.Editor == nil {
		return ErrMissingEditorService
	}
	return nil
}
