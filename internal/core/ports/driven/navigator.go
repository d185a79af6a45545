package driven

import "github.com/custodia-labs/userdir-cli/internal/core/domain"

// Navigator is the navigation layer the core routes through.
// The TUI router implements it; headless surfaces use a no-op.
type Navigator interface {
	// GoToUsers shows the listing at page. A page of 0 keeps the current page.
	GoToUsers(page int)

	// GoToEdit opens the editor for id. hint may be nil.
	GoToEdit(id int, hint *domain.EditHint)

	// GoToLogin shows the login view.
	GoToLogin()
}

// NopNavigator ignores every navigation request.
type NopNavigator struct{}

// GoToUsers implements Navigator.
func (NopNavigator) GoToUsers(int) {}

// GoToEdit implements Navigator.
func (NopNavigator) GoToEdit(int, *domain.EditHint) {}

// GoToLogin implements Navigator.
func (NopNavigator) GoToLogin() {}
