// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/userdir-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewLogin is the login form.
	ViewLogin ViewType = iota
	// ViewUsers is the paginated and searchable user listing.
	ViewUsers
	// ViewEdit is the single-user edit form.
	ViewEdit
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewUsers:
		return "users"
	case ViewEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// Navigate requests a route change.
// Page applies to ViewUsers (0 keeps the current page); ID and Hint to ViewEdit.
type Navigate struct {
	View ViewType
	Page int
	ID   int
	Hint *domain.EditHint
}

// LoginCompleted carries the outcome of a login attempt.
type LoginCompleted struct {
	Err error
}

// LoggedOut signals the session was cleared.
type LoggedOut struct {
	Err error
}

// DirectoryChanged signals that the directory view state may have changed.
type DirectoryChanged struct{}

// ActionCompleted carries the outcome of a listing action
// (page change, reload, delete). Failures are already notified.
type ActionCompleted struct {
	Err error
}

// EditorOpened carries the entry resolved for editing.
type EditorOpened struct {
	Entry domain.Entry
	Err   error
}

// EditSubmitted carries the outcome of an update.
type EditSubmitted struct {
	Entry domain.Entry
	Err   error
}

// Tick refreshes time-dependent state such as notification expiry.
type Tick struct{}

// Quit signals the application should exit.
type Quit struct{}
