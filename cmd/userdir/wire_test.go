package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/userdir-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/userdir-cli/internal/core/domain"
)

func TestBootstrap_WiresServices(t *testing.T) {
	dir := t.TempDir()

	svc, cleanup, err := bootstrap(context.Background(), dir)
	require.NoError(t, err)
	defer cleanup()

	assert.NotNil(t, svc.Auth)
	assert.NotNil(t, svc.Directory)
	assert.NotNil(t, svc.Editor)
	assert.NotNil(t, svc.Notifications)
	assert.NotNil(t, svc.BindNavigator)
	assert.NotNil(t, svc.WatchConfig)
	assert.NotNil(t, svc.ReloadConfig)
	assert.Equal(t, filepath.Join(dir, "config.toml"), svc.Config.Path())

	_, err = os.Stat(filepath.Join(dir, "data", sqlite.DatabaseFile))
	assert.NoError(t, err)
	assert.False(t, svc.Auth.IsAuthenticated(context.Background()))
	assert.Equal(t, domain.DefaultTotalPages, svc.Directory.State().TotalPages)
}

func TestBootstrap_CustomDataDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[storage]\ndata_dir = \"state\"\n"), 0600))

	_, cleanup, err := bootstrap(context.Background(), dir)
	require.NoError(t, err)
	defer cleanup()

	_, err = os.Stat(filepath.Join(dir, "state", sqlite.DatabaseFile))
	assert.NoError(t, err)
}

func TestBootstrap_InvalidBaseURL(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[api]\nbase_url = \"::not a url\"\n"), 0600))

	_, _, err := bootstrap(context.Background(), dir)

	assert.Error(t, err)
}
