// Package tui provides an interactive terminal user interface for the
// user directory. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"github.com/custodia-labs/userdir-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Auth manages the login session.
	Auth driving.AuthService

	// Directory is the paginated and searchable listing.
	Directory driving.DirectoryView

	// Editor resolves and updates a single user.
	Editor driving.EntryEditor

	// Notifications feeds the status bar.
	Notifications driving.Notifications
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	auth driving.AuthService,
	directory driving.DirectoryView,
	editor driving.EntryEditor,
	notifications driving.Notifications,
) *Ports {
	return &Ports{
		Auth:          auth,
		Directory:     directory,
		Editor:        editor,
		Notifications: notifications,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Auth == nil {
		return ErrMissingAuthService
	}
	if p.Directory == nil {
		return ErrMissingDirectoryService
	}
	if p.Editor == nil {
		return ErrMissingEditorService
	}
	if p.Notifications == nil {
		return ErrMissingNotifications
	}
	return nil
}
