// Package cli implements the userdir command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/userdir-cli/internal/core/domain"
	"github.com/custodia-labs/userdir-cli/internal/core/ports/driven"
	"github.com/custodia-labs/userdir-cli/internal/core/ports/driving"
	"github.com/custodia-labs/userdir-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// skipBootstrap marks commands that run without services.
const skipBootstrap = "skip-bootstrap"

// ConfigWatcher reports reloads of the configuration file.
type ConfigWatcher interface {
	Changes() <-chan struct{}
	Close() error
}

// Services holds the core services the commands drive.
type Services struct {
	Auth          driving.AuthService
	Directory     driving.DirectoryView
	Editor        driving.EntryEditor
	Notifications driving.Notifications
	Config        driven.ConfigStore

	// BindNavigator routes editor navigation through the TUI. Optional.
	BindNavigator func(driven.Navigator)

	// WatchConfig starts watching the configuration file. Optional.
	WatchConfig func() (ConfigWatcher, error)

	// ReloadConfig re-applies settings after the file changed. Optional.
	ReloadConfig func()
}

// Bootstrap builds services for a configuration directory. An empty
// configDir selects the default. cleanup runs once the command returns.
type Bootstrap func(ctx context.Context, configDir string) (svc *Services, cleanup func(), err error)

var (
	current   *Services
	bootstrap Bootstrap
	cleanup   func()

	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "userdir",
	Short: "Browse and manage a remote user directory",
	Long: `userdir is a terminal client for the reqres.in user directory.

It pages through the remote listing, searches across every page, edits
and deletes users, and keeps the local view consistent with each change.

Run "userdir tui" for the interactive interface, or use the commands
below from scripts.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.userdir)")
}

// SetServices installs ready-made services. It takes precedence over
// the bootstrap.
func SetServices(s *Services) {
	current = s
}

// SetBootstrap sets the function used to build services on first use.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	defer func() {
		if cleanup != nil {
			cleanup()
			cleanup = nil
		}
	}()
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", ErrorMessage(err))
	}
	return err
}

// ErrorMessage returns the user-facing text of err.
func ErrorMessage(err error) string {
	var opErr *domain.OpError
	if errors.As(err, &opErr) {
		return domain.UserMessage(err)
	}
	return err.Error()
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if cmd.Annotations[skipBootstrap] == "true" || current != nil || bootstrap == nil {
		return nil
	}
	s, done, err := bootstrap(cmd.Context(), configDir)
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	current = s
	cleanup = done
	return nil
}

// requireServices returns the installed services or an error naming
// the missing one.
func requireServices(need ...string) (*Services, error) {
	if current == nil {
		return nil, errors.New("services not configured")
	}
	for _, n := range need {
		var missing bool
		switch n {
		case "auth":
			missing = current.Auth == nil
		case "directory":
			missing = current.Directory == nil
		case "editor":
			missing = current.Editor == nil
		case "config":
			missing = current.Config == nil
		}
		if missing {
			return nil, fmt.Errorf("%s service not configured", n)
		}
	}
	return current, nil
}

// requireSession fails unless a valid session is present.
func requireSession(cmd *cobra.Command, s *Services) error {
	if s.Auth == nil {
		return errors.New("auth service not configured")
	}
	if !s.Auth.IsAuthenticated(cmd.Context()) {
		return errors.New(`not logged in: run "userdir login" first`)
	}
	return nil
}

// flushNotifications prints pending success notifications and clears
// the queue. Errors are reported through the returned error instead.
func flushNotifications(cmd *cobra.Command, s *Services) {
	if s.Notifications == nil {
		return
	}
	for _, n := range s.Notifications.Active() {
		if n.Level == domain.NotifySuccess {
			cmd.Println(n.Message)
		}
	}
	s.Notifications.DismissAll()
}
