// Package users provides the user listing for the TUI.
package users

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/userdir-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/userdir-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/userdir-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/userdir-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/userdir-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/userdir-cli/internal/core/domain"
	"github.com/custodia-labs/userdir-cli/internal/core/ports/driving"
)

// View shows one page of users, or the search results while a query
// is active.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	directory driving.DirectoryView
	auth      driving.AuthService
	ctx       context.Context

	search    *input.Field
	list      *list.EntryList
	searching bool
	state     domain.ViewState

	width  int
	height int
}

// NewView creates a users view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	directory driving.DirectoryView,
	auth driving.AuthService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:    s,
		keymap:    km,
		directory: directory,
		auth:      auth,
		ctx:       context.Background(),
		search:    input.NewField(s, "Search", "name..."),
		list:      list.NewEntryList(s),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Show loads page. A page of 0 keeps the current page.
func (v *View) Show(page int) tea.Cmd {
	v.sync()
	if page < 1 {
		page = v.state.Page
	}
	if page < 1 {
		page = 1
	}
	return v.action(func(ctx context.Context) error {
		return v.directory.SetPage(ctx, page)
	})
}

// Update handles messages for the users view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.DirectoryChanged, messages.ActionCompleted:
		v.sync()
		return v, nil

	case tea.KeyMsg:
		if v.searching {
			return v.handleSearchKey(msg)
		}
		return v.handleListKey(msg)
	}
	return v, nil
}

func (v *View) handleSearchKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter, tea.KeyDown, tea.KeyTab:
		v.searching = false
		v.search.Blur()
		return v, nil
	}

	before := v.search.Value()
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	if after := v.search.Value(); after != before {
		v.directory.SetQuery(v.ctx, after)
		v.sync()
	}
	return v, cmd
}

//nolint:gocyclo // one case per binding
func (v *View) handleListKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keymap.Search):
		v.searching = true
		return v, v.search.Focus()

	case key.Matches(msg, v.keymap.Back):
		if v.state.Mode == domain.ModeSearch || v.search.Value() != "" {
			v.search.Reset()
			v.directory.SetQuery(v.ctx, "")
			v.sync()
		}
		return v, nil

	case key.Matches(msg, v.keymap.Up):
		v.list.MoveUp()
		return v, nil

	case key.Matches(msg, v.keymap.Down):
		v.list.MoveDown()
		return v, nil

	case key.Matches(msg, v.keymap.NextPage):
		if !v.state.CanNext() {
			return v, nil
		}
		return v, v.action(v.directory.NextPage)

	case key.Matches(msg, v.keymap.PrevPage):
		if !v.state.CanPrev() {
			return v, nil
		}
		return v, v.action(v.directory.PrevPage)

	case key.Matches(msg, v.keymap.Reload):
		if v.state.Mode != domain.ModePaginated {
			return v, nil
		}
		return v, v.action(v.directory.Reload)

	case key.Matches(msg, v.keymap.Edit):
		return v, v.edit()

	case key.Matches(msg, v.keymap.Delete):
		selected := v.list.SelectedEntry()
		if selected == nil {
			return v, nil
		}
		id := selected.ID
		return v, v.action(func(ctx context.Context) error {
			return v.directory.Delete(ctx, id)
		})

	case key.Matches(msg, v.keymap.Logout):
		return v, v.logout()
	}
	return v, nil
}

// edit hands the selected entry and the page it came from to the editor.
func (v *View) edit() tea.Cmd {
	selected := v.list.SelectedEntry()
	if selected == nil {
		return nil
	}
	nav := messages.Navigate{
		View: messages.ViewEdit,
		ID:   selected.ID,
		Hint: &domain.EditHint{Entry: *selected, SourcePage: v.state.Page},
	}
	return func() tea.Msg { return nav }
}

func (v *View) logout() tea.Cmd {
	if v.auth == nil {
		return nil
	}
	ctx := v.ctx
	auth := v.auth
	return func() tea.Msg {
		return messages.LoggedOut{Err: auth.Logout(ctx)}
	}
}

func (v *View) action(f func(context.Context) error) tea.Cmd {
	ctx := v.ctx
	return func() tea.Msg {
		return messages.ActionCompleted{Err: f(ctx)}
	}
}

func (v *View) sync() {
	if v.directory == nil {
		return
	}
	v.state = v.directory.State()
	v.list.SetEntries(v.state.Displayed)
}

// View renders the listing.
func (v *View) View() string {
	sections := []string{
		v.styles.Title.Render("Users"),
		"",
		v.search.View(),
		"",
	}

	switch {
	case v.state.Status == domain.LoadLoading && len(v.state.Displayed) == 0:
		sections = append(sections, v.styles.Muted.Render("Loading..."))
	case v.state.Status == domain.LoadError && len(v.state.Displayed) == 0:
		sections = append(sections, v.styles.Error.Render(domain.UserMessage(v.state.Err)))
	default:
		if v.state.Mode == domain.ModeSearch {
			summary := fmt.Sprintf("%d results for %q", len(v.state.Displayed), v.state.Query)
			if v.state.Status == domain.LoadLoading {
				summary = fmt.Sprintf("Searching for %q...", v.state.Query)
			}
			sections = append(sections, v.styles.Subtitle.Render(summary), "")
		}
		sections = append(sections, v.list.View())
	}

	if v.state.ShowPagination() {
		sections = append(sections, "", v.pagination())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) pagination() string {
	prev := v.styles.Normal.Render("‹ prev")
	if !v.state.CanPrev() {
		prev = v.styles.Disabled.Render("‹ prev")
	}
	next := v.styles.Normal.Render("next ›")
	if !v.state.CanNext() {
		next = v.styles.Disabled.Render("next ›")
	}
	page := v.styles.Muted.Render(fmt.Sprintf("  Page %d of %d  ", v.state.Page, v.state.TotalPages))
	return prev + page + next
}

// Bindings returns the keybinding hints for this view.
func (v *View) Bindings() []key.Binding {
	if v.searching {
		return v.keymap.SearchHelp()
	}
	return v.keymap.UsersHelp()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.search.SetWidth(width)
	v.list.SetDimensions(width, height-10)
}

// State returns the last synced directory state.
func (v *View) State() domain.ViewState {
	return v.state
}

// Searching reports whether the search field has focus.
func (v *View) Searching() bool {
	return v.searching
}

// Selected returns the selected entry, or nil.
func (v *View) Selected() *domain.Entry {
	return v.list.SelectedEntry()
}
