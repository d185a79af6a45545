package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/userdir-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/userdir-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/userdir-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/userdir-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/userdir-cli/internal/adapters/driving/tui/views/edit"
	"github.com/custodia-labs/userdir-cli/internal/adapters/driving/tui/views/login"
	"github.com/custodia-labs/userdir-cli/internal/adapters/driving/tui/views/users"
	"github.com/custodia-labs/userdir-cli/internal/core/domain"
	"github.com/custodia-labs/userdir-cli/internal/core/ports/driven"
	"github.com/custodia-labs/userdir-cli/internal/logger"
)

// navBuffer bounds pending navigation requests from the core.
const navBuffer = 16

// tickInterval is how often notification expiry is re-evaluated.
const tickInterval = time.Second

// navRequest is a Navigate issued through the Navigator port.
type navRequest struct {
	nav messages.Navigate
}

// directoryChanged is a signal read from the directory change feed.
type directoryChanged struct{}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea, and driven.Navigator
// so the core can route between views.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	loginView *login.View
	usersView *users.View
	editView  *edit.View
	statusBar *status.Bar

	// nav carries requests from the Navigator methods, which may be
	// called from any goroutine, into the update loop.
	nav chan messages.Navigate

	// currentView tracks which view is active.
	currentView messages.ViewType

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model and driven.Navigator.
var (
	_ tea.Model        = (*App)(nil)
	_ driven.Navigator = (*App)(nil)
)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		loginView:   login.NewView(s, km, ports.Auth),
		usersView:   users.NewView(s, km, ports.Directory, ports.Auth),
		editView:    edit.NewView(s, km, ports.Editor),
		statusBar:   status.NewBar(s),
		nav:         make(chan messages.Navigate, navBuffer),
		currentView: messages.ViewLogin,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.loginView.WithContext(ctx)
	a.usersView.WithContext(ctx)
	a.editView.WithContext(ctx)
	return a
}

// GoToUsers implements driven.Navigator.
func (a *App) GoToUsers(page int) {
	a.request(messages.Navigate{View: messages.ViewUsers, Page: page})
}

// GoToEdit implements driven.Navigator.
func (a *App) GoToEdit(id int, hint *domain.EditHint) {
	a.request(messages.Navigate{View: messages.ViewEdit, ID: id, Hint: hint})
}

// GoToLogin implements driven.Navigator.
func (a *App) GoToLogin() {
	a.request(messages.Navigate{View: messages.ViewLogin})
}

func (a *App) request(nav messages.Navigate) {
	select {
	case a.nav <- nav:
	default:
		logger.Warn("Dropped navigation to %s: queue full", nav.View)
	}
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	start := messages.Navigate{View: messages.ViewUsers, Page: 1}
	return tea.Batch(
		tea.SetWindowTitle("userdir"),
		a.loginView.Init(),
		func() tea.Msg { return start },
		a.waitForNav(),
		a.waitForChanges(),
		tick(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	a.refreshStatus()
	return a, cmd
}

//nolint:gocyclo // central message handler
func (a *App) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return tea.Quit
		}
		// Dismiss works in every view, including the forms.
		if key.Matches(msg, a.keymap.Dismiss) {
			a.ports.Notifications.DismissAll()
			return nil
		}
		return a.forward(msg)

	case navRequest:
		return tea.Batch(a.navigate(msg.nav), a.waitForNav())

	case messages.Navigate:
		return a.navigate(msg)

	case directoryChanged:
		a.usersView, cmd = a.usersView.Update(messages.DirectoryChanged{})
		return tea.Batch(cmd, a.waitForChanges())

	case messages.Tick:
		return tick()

	case messages.LoginCompleted:
		a.loginView, cmd = a.loginView.Update(msg)
		if msg.Err != nil {
			return cmd
		}
		return tea.Batch(cmd, a.navigate(messages.Navigate{View: messages.ViewUsers, Page: 1}))

	case messages.LoggedOut:
		if msg.Err != nil {
			logger.Warn("Logout failed: %v", msg.Err)
		}
		return a.navigate(messages.Navigate{View: messages.ViewLogin})

	case messages.ActionCompleted:
		a.usersView, cmd = a.usersView.Update(msg)
		return cmd

	case messages.EditorOpened:
		a.editView, cmd = a.editView.Update(msg)
		if msg.Err != nil {
			return tea.Batch(cmd, a.navigate(messages.Navigate{View: messages.ViewUsers}))
		}
		return cmd

	case messages.EditSubmitted:
		a.editView, cmd = a.editView.Update(msg)
		return cmd

	case messages.Quit:
		return tea.Quit
	}

	return a.forward(msg)
}

// forward hands msg to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewLogin:
		a.loginView, cmd = a.loginView.Update(msg)
	case messages.ViewUsers:
		a.usersView, cmd = a.usersView.Update(msg)
	case messages.ViewEdit:
		a.editView, cmd = a.editView.Update(msg)
	}
	return cmd
}

// navigate switches views. Every view but login requires a session.
func (a *App) navigate(nav messages.Navigate) tea.Cmd {
	if nav.View != messages.ViewLogin && !a.ports.Auth.IsAuthenticated(a.ctx) {
		nav = messages.Navigate{View: messages.ViewLogin}
	}

	logger.Debug("Navigating to %s", nav.View)
	prev := a.currentView
	a.currentView = nav.View

	switch nav.View {
	case messages.ViewLogin:
		if prev != messages.ViewLogin {
			a.loginView.Reset()
		}
		return a.loginView.Init()
	case messages.ViewUsers:
		return a.usersView.Show(nav.Page)
	case messages.ViewEdit:
		return a.editView.Open(nav.ID, nav.Hint)
	}
	return nil
}

func (a *App) waitForNav() tea.Cmd {
	ch := a.nav
	return func() tea.Msg {
		return navRequest{nav: <-ch}
	}
}

func (a *App) waitForChanges() tea.Cmd {
	ch := a.ports.Directory.Changes()
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return directoryChanged{}
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return messages.Tick{}
	})
}

func (a *App) refreshStatus() {
	active := a.ports.Notifications.Active()
	a.statusBar.SetNotifications(active)

	var bindings []key.Binding
	switch a.currentView {
	case messages.ViewLogin:
		bindings = a.loginView.Bindings()
		a.statusBar.SetBusy("")
	case messages.ViewUsers:
		bindings = a.usersView.Bindings()
		busy := ""
		if a.usersView.State().Status == domain.LoadLoading {
			busy = "Loading..."
		}
		a.statusBar.SetBusy(busy)
	case messages.ViewEdit:
		bindings = a.editView.Bindings()
		busy := ""
		if a.editView.Submitting() {
			busy = "Saving..."
		}
		a.statusBar.SetBusy(busy)
	}
	if len(active) > 0 {
		bindings = append(bindings, a.keymap.Dismiss)
	}
	a.statusBar.SetBindings(bindings)
}

// View implements tea.Model.
// It renders the current view and the status bar.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewUsers:
		body = a.usersView.View()
	case messages.ViewEdit:
		body = a.editView.View()
	default:
		body = a.loginView.View()
	}

	bodyHeight := a.height - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, body, a.statusBar.View())
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	viewHeight := height - 1
	a.loginView.SetDimensions(width, viewHeight)
	a.usersView.SetDimensions(width, viewHeight)
	a.editView.SetDimensions(width, viewHeight)
	a.statusBar.SetWidth(width)
}
