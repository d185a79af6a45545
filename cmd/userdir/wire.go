package main

import (
	"context"
	"fmt"

	"github.com/custodia-labs/userdir-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/userdir-cli/internal/adapters/driven/reqres"
	"github.com/custodia-labs/userdir-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/userdir-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/userdir-cli/internal/core/ports/driven"
	"github.com/custodia-labs/userdir-cli/internal/core/services"
	"github.com/custodia-labs/userdir-cli/internal/logger"
)

// bootstrap wires the adapters and core services for configDir.
func bootstrap(ctx context.Context, configDir string) (*cli.Services, func(), error) {
	if configDir == "" {
		dir, err := file.DefaultConfigDir()
		if err != nil {
			return nil, nil, fmt.Errorf("resolving config directory: %w", err)
		}
		configDir = dir
	}

	config, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	settings := services.LoadSettings(config, configDir)
	logger.Debug("Config: %s, data: %s", config.Path(), settings.DataDir)

	store, err := sqlite.NewStore(ctx, settings.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening session store: %w", err)
	}
	sessions := store.SessionStore()

	client, err := reqres.NewClient(reqres.Config{
		BaseURL:           settings.API.BaseURL,
		APIKey:            settings.API.Key,
		Timeout:           settings.API.Timeout,
		RequestsPerSecond: settings.API.RequestsPerSecond,
		TokenSource:       reqres.NewSessionTokenSource(sessions),
	})
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	notifier := services.NewNotifier(settings.Notifications)
	directory := services.NewDirectoryService(client, notifier, settings.Directory)
	editor := services.NewEditorService(client, nil, notifier, directory.TotalPages)
	editor.SetMockBackend(settings.Directory.MockBackend)
	auth := services.NewAuthService(client, sessions)

	svc := &cli.Services{
		Auth:          auth,
		Directory:     directory,
		Editor:        editor,
		Notifications: notifier,
		Config:        config,
		BindNavigator: func(n driven.Navigator) { editor.SetNavigator(n) },
		WatchConfig: func() (cli.ConfigWatcher, error) {
			w, err := file.NewWatcher(config, file.DefaultWatchDebounce)
			if err != nil {
				return nil, err
			}
			return w, nil
		},
		ReloadConfig: func() {
			notifier.SetDurations(services.LoadNotificationSettings(config))
		},
	}

	cleanup := func() {
		directory.Close()
		if err := store.Close(); err != nil {
			logger.Warn("Closing session store: %v", err)
		}
	}
	return svc, cleanup, nil
}
