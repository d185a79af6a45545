// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Back leaves the search field or abandons an edit.
	Back key.Binding

	// Up and Down move the selection in the user list.
	Up   key.Binding
	Down key.Binding

	// NextPage and PrevPage page through the listing.
	NextPage key.Binding
	PrevPage key.Binding

	// Search focuses the search field.
	Search key.Binding

	// Edit opens the selected user in the editor.
	Edit key.Binding

	// Delete deletes the selected user.
	Delete key.Binding

	// Reload re-fetches the current page.
	Reload key.Binding

	// Logout ends the session.
	Logout key.Binding

	// Dismiss clears the visible notifications.
	Dismiss key.Binding

	// Submit sends a form.
	Submit key.Binding

	// NextField and PrevField move between form fields.
	NextField key.Binding
	PrevField key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("n/→", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p", "left"),
			key.WithHelp("p/←", "prev page"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "logout"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "dismiss"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
	}
}

// UsersHelp returns keybindings for the user listing.
func (k *KeyMap) UsersHelp() []key.Binding {
	return []key.Binding{k.Search, k.NextPage, k.PrevPage, k.Edit, k.Delete, k.Logout, k.Quit}
}

// SearchHelp returns keybindings while the search field has focus.
func (k *KeyMap) SearchHelp() []key.Binding {
	return []key.Binding{k.Back}
}

// FormHelp returns keybindings for the login and edit forms.
func (k *KeyMap) FormHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Submit, k.Back}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
