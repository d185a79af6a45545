package services

import (
	"path/filepath"
	"time"

	"github.com/custodia-labs/userdir-cli/internal/core/domain"
	"github.com/custodia-labs/userdir-cli/internal/core/ports/driven"
)

// DataDirName is the default data directory inside the config directory.
const DataDirName = "data"

// LoadSettings reads typed settings from the config store.
// Missing or non-positive values fall back to defaults. The data
// directory defaults to <configDir>/data; relative values resolve
// against configDir.
func LoadSettings(store driven.ConfigStore, configDir string) domain.Settings {
	s := domain.DefaultSettings()
	if configDir != "" {
		s.DataDir = filepath.Join(configDir, DataDirName)
	}
	if store == nil {
		return s
	}

	if v := store.GetString(domain.KeyAPIBaseURL); v != "" {
		s.API.BaseURL = v
	}
	if v, ok := store.Get(domain.KeyAPIKey); ok {
		if key, isString := v.(string); isString {
			s.API.Key = key
		}
	}
	if v := store.GetInt(domain.KeyAPITimeoutSeconds); v > 0 {
		s.API.Timeout = time.Duration(v) * time.Second
	}
	if v := store.GetFloat(domain.KeyAPIRequestsPerSecond); v > 0 {
		s.API.RequestsPerSecond = v
	}
	if v := store.GetInt(domain.KeyTotalPages); v > 0 {
		s.Directory.TotalPages = v
	}
	if v := store.GetInt(domain.KeySearchDebounceMS); v > 0 {
		s.Directory.SearchDebounce = time.Duration(v) * time.Millisecond
	}
	if _, ok := store.Get(domain.KeyMockBackend); ok {
		s.Directory.MockBackend = store.GetBool(domain.KeyMockBackend)
	}
	s.Notifications = LoadNotificationSettings(store)
	if v := store.GetString(domain.KeyDataDir); v != "" {
		if !filepath.IsAbs(v) && configDir != "" {
			v = filepath.Join(configDir, v)
		}
		s.DataDir = v
	}
	return s
}

// LoadNotificationSettings reads notification durations from the config store.
func LoadNotificationSettings(store driven.ConfigStore) domain.NotificationSettings {
	n := domain.DefaultSettings().Notifications
	if store == nil {
		return n
	}
	if v := store.GetInt(domain.KeyErrorSeconds); v > 0 {
		n.ErrorDuration = time.Duration(v) * time.Second
	}
	if v := store.GetInt(domain.KeySuccessSeconds); v > 0 {
		n.SuccessDuration = time.Duration(v) * time.Second
	}
	return n
}
