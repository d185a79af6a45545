// Package login provides the login form for the TUI.
package login

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/userdir-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/userdir-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/userdir-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/userdir-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/userdir-cli/internal/core/domain"
	"github.com/custodia-labs/userdir-cli/internal/core/ports/driving"
)

// View is the email and password form.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	auth   driving.AuthService
	ctx    context.Context

	email    *input.Field
	password *input.Field
	focus    int

	submitting bool
	err        error
	width      int
	height     int
}

// NewView creates a login view.
func NewView(s *styles.Styles, km *keymap.KeyMap, auth driving.AuthService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	v := &View{
		styles:   s,
		keymap:   km,
		auth:     auth,
		ctx:      context.Background(),
		email:    input.NewField(s, "Email", "eve.holt@reqres.in"),
		password: input.NewPasswordField(s, "Password"),
		width:    80,
		height:   24,
	}
	v.email.Focus()
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.email.Init()
}

// Reset clears the form and focuses the email field.
func (v *View) Reset() {
	v.email.Reset()
	v.password.Reset()
	v.submitting = false
	v.err = nil
	v.setFocus(0)
}

// Update handles messages for the login view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.LoginCompleted:
		v.submitting = false
		v.err = msg.Err
		if msg.Err != nil {
			v.password.Reset()
			v.setFocus(1)
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.submitting {
		return v, nil
	}

	switch {
	case key.Matches(msg, v.keymap.Back):
		return v, tea.Quit
	case key.Matches(msg, v.keymap.Submit):
		if v.focus == 0 {
			v.setFocus(1)
			return v, nil
		}
		return v, v.submit()
	case key.Matches(msg, v.keymap.NextField), key.Matches(msg, v.keymap.PrevField):
		v.setFocus(1 - v.focus)
		return v, nil
	}

	var cmd tea.Cmd
	if v.focus == 0 {
		v.email, cmd = v.email.Update(msg)
	} else {
		v.password, cmd = v.password.Update(msg)
	}
	return v, cmd
}

func (v *View) setFocus(i int) {
	v.focus = i
	if i == 0 {
		v.password.Blur()
		v.email.Focus()
		return
	}
	v.email.Blur()
	v.password.Focus()
}

func (v *View) submit() tea.Cmd {
	if v.auth == nil {
		return nil
	}
	v.submitting = true
	v.err = nil
	creds := domain.Credentials{Email: v.email.Value(), Password: v.password.Value()}
	ctx := v.ctx
	auth := v.auth
	return func() tea.Msg {
		_, err := auth.Login(ctx, creds)
		return messages.LoginCompleted{Err: err}
	}
}

// View renders the login form.
func (v *View) View() string {
	sections := []string{
		v.styles.Title.Render("userdir"),
		v.styles.Muted.Render("Sign in to the user directory"),
		"",
		v.email.View(),
		v.password.View(),
		"",
	}
	switch {
	case v.submitting:
		sections = append(sections, v.styles.Muted.Render("Signing in..."))
	case v.err != nil:
		sections = append(sections, v.styles.Error.Render(domain.UserMessage(v.err)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Bindings returns the keybinding hints for this view.
func (v *View) Bindings() []key.Binding {
	return v.keymap.FormHelp()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.email.SetWidth(width)
	v.password.SetWidth(width)
}

// Err returns the last login error.
func (v *View) Err() error {
	return v.err
}

// Submitting reports whether a login is in flight.
func (v *View) Submitting() bool {
	return v.submitting
}
