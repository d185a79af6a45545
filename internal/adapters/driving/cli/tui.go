package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/userdir-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/userdir-cli/internal/logger"
)

// runProgram runs the bubbletea program. Tests replace it.
var runProgram = func(app *tui.App) error {
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

The TUI shows the login form until a session exists, then the paginated
user listing. Typing a search query aggregates matches across every page.

Controls:
  ↑/k, ↓/j  - Move selection
  n/→, p/←  - Next / previous page
  /         - Search by name
  e/Enter   - Edit user
  d         - Delete user
  r         - Reload page
  ctrl+l    - Log out
  Esc       - Back / clear search
  q         - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	s, err := requireServices("auth", "directory", "editor")
	if err != nil {
		return err
	}

	ports := tui.NewPorts(s.Auth, s.Directory, s.Editor, s.Notifications)
	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if logger.IsVerbose() {
		restore, lerr := logToFile()
		if lerr != nil {
			return lerr
		}
		defer restore()
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	app.WithContext(ctx)

	if s.BindNavigator != nil {
		s.BindNavigator(app)
		defer s.BindNavigator(nil)
	}

	if s.WatchConfig != nil {
		stop, werr := watchConfig(ctx, s)
		if werr != nil {
			logger.Warn("Config watch disabled: %v", werr)
		} else {
			defer stop()
		}
	}

	if err := runProgram(app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// tuiLogFile receives debug output while the alternate screen is active.
var tuiLogFile = filepath.Join(os.TempDir(), "userdir-tui.log")

// logToFile redirects verbose logging away from the terminal. The
// returned function restores stderr.
func logToFile() (func(), error) {
	f, err := os.OpenFile(tuiLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	logger.SetOutput(f)
	logger.SetTimestamps(true)
	fmt.Fprintf(os.Stderr, "Debug log: %s\n", tuiLogFile)
	return func() {
		logger.SetTimestamps(false)
		logger.SetOutput(os.Stderr)
		_ = f.Close()
	}, nil
}

// watchConfig re-applies settings whenever the config file changes.
// The returned function stops watching.
func watchConfig(ctx context.Context, s *Services) (func(), error) {
	w, err := s.WatchConfig()
	if err != nil {
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-w.Changes():
				if !ok {
					return
				}
				logger.Debug("Config file changed, reloading")
				if s.ReloadConfig != nil {
					s.ReloadConfig()
				}
			}
		}
	}()

	return func() {
		if err := w.Close(); err != nil {
			logger.Warn("Closing config watcher: %v", err)
		}
		<-done
	}, nil
}
