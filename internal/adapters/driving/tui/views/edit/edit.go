// Package edit provides the single-user edit form for the TUI.
package edit

import (
	"context"
	"fmt"

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

// Field indexes.
const (
	fieldFirstName = iota
	fieldLastName
	fieldEmail
	fieldCount
)

// View edits the first name, last name and email of one user.
// Leaving the view abandons the edit context.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	editor driving.EntryEditor
	ctx    context.Context

	fields [fieldCount]*input.Field
	focus  int

	id         int
	entry      domain.Entry
	loading    bool
	submitting bool
	err        error

	width  int
	height int
}

// NewView creates an edit view.
func NewView(s *styles.Styles, km *keymap.KeyMap, editor driving.EntryEditor) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles: s,
		keymap: km,
		editor: editor,
		ctx:    context.Background(),
		fields: [fieldCount]*input.Field{
			input.NewField(s, "First name", ""),
			input.NewField(s, "Last name", ""),
			input.NewField(s, "Email", ""),
		},
		width:  80,
		height: 24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Open consumes an edit context. hint may be nil.
func (v *View) Open(id int, hint *domain.EditHint) tea.Cmd {
	v.id = id
	v.entry = domain.Entry{}
	v.err = nil
	v.loading = true
	v.submitting = false
	for _, f := range v.fields {
		f.Reset()
		f.Blur()
	}

	editor := v.editor
	ctx := v.ctx
	edit := domain.EditContext{ID: id, Hint: hint}
	return func() tea.Msg {
		entry, err := editor.Open(ctx, edit)
		return messages.EditorOpened{Entry: entry, Err: err}
	}
}

// Update handles messages for the edit view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.EditorOpened:
		v.loading = false
		v.err = msg.Err
		if msg.Err != nil {
			return v, nil
		}
		v.entry = msg.Entry
		v.fields[fieldFirstName].SetValue(msg.Entry.FirstName)
		v.fields[fieldLastName].SetValue(msg.Entry.LastName)
		v.fields[fieldEmail].SetValue(msg.Entry.Email)
		return v, v.setFocus(fieldFirstName)

	case messages.EditSubmitted:
		v.submitting = false
		v.err = msg.Err
		if msg.Err == nil {
			v.entry = msg.Entry
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if key.Matches(msg, v.keymap.Back) {
		return v, v.cancel()
	}
	if v.loading || v.submitting {
		return v, nil
	}

	switch {
	case key.Matches(msg, v.keymap.Submit):
		return v, v.submit()
	case key.Matches(msg, v.keymap.NextField):
		return v, v.setFocus((v.focus + 1) % fieldCount)
	case key.Matches(msg, v.keymap.PrevField):
		return v, v.setFocus((v.focus + fieldCount - 1) % fieldCount)
	}

	var cmd tea.Cmd
	v.fields[v.focus], cmd = v.fields[v.focus].Update(msg)
	return v, cmd
}

func (v *View) setFocus(i int) tea.Cmd {
	v.focus = i
	var cmd tea.Cmd
	for n, f := range v.fields {
		if n == i {
			cmd = f.Focus()
		} else {
			f.Blur()
		}
	}
	return cmd
}

// cancel abandons the edit; the editor routes back to the source page.
func (v *View) cancel() tea.Cmd {
	editor := v.editor
	return func() tea.Msg {
		editor.Cancel()
		return nil
	}
}

func (v *View) submit() tea.Cmd {
	v.submitting = true
	v.err = nil
	fields := v.Fields()
	editor := v.editor
	ctx := v.ctx
	return func() tea.Msg {
		entry, err := editor.Submit(ctx, fields)
		return messages.EditSubmitted{Entry: entry, Err: err}
	}
}

// Fields returns the current form values.
func (v *View) Fields() domain.EntryFields {
	return domain.EntryFields{
		FirstName: v.fields[fieldFirstName].Value(),
		LastName:  v.fields[fieldLastName].Value(),
		Email:     v.fields[fieldEmail].Value(),
	}
}

// View renders the form.
func (v *View) View() string {
	sections := []string{v.styles.Title.Render(fmt.Sprintf("Edit user %d", v.id)), ""}

	if v.loading {
		sections = append(sections, v.styles.Muted.Render("Loading user..."))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	if v.entry.Avatar != "" {
		sections = append(sections, v.styles.Muted.Render(v.entry.Avatar), "")
	}
	for _, f := range v.fields {
		sections = append(sections, f.View())
	}
	sections = append(sections, "")

	switch {
	case v.submitting:
		sections = append(sections, v.styles.Muted.Render("Saving..."))
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
	for _, f := range v.fields {
		f.SetWidth(width)
	}
}

// Loading reports whether the entry is still being resolved.
func (v *View) Loading() bool {
	return v.loading
}

// Submitting reports whether an update is in flight.
func (v *View) Submitting() bool {
	return v.submitting
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
