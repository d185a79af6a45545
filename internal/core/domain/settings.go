package domain

import "time"

// Configuration keys.
const (
	KeyAPIBaseURL           = "api.base_url"
	KeyAPIKey               = "api.key"
	KeyAPITimeoutSeconds    = "api.timeout_seconds"
	KeyAPIRequestsPerSecond = "api.requests_per_second"
	KeyTotalPages           = "directory.total_pages"
	KeySearchDebounceMS     = "directory.search_debounce_ms"
	KeyMockBackend          = "directory.mock_backend"
	KeyErrorSeconds         = "notifications.error_seconds"
	KeySuccessSeconds       = "notifications.success_seconds"
	KeyDataDir              = "storage.data_dir"
)

// Defaults.
const (
	DefaultBaseURL           = "https://reqres.in/api"
	DefaultAPIKey            = "reqres-free-v1"
	DefaultTimeout           = 30 * time.Second
	DefaultRequestsPerSecond = 5.0
	DefaultTotalPages        = 3
	DefaultSearchDebounce    = 500 * time.Millisecond
	DefaultErrorDuration     = 6 * time.Second
	DefaultSuccessDuration   = 3 * time.Second
)

// Settings is the typed application configuration.
type Settings struct {
	API           APISettings
	Directory     DirectorySettings
	Notifications NotificationSettings
	DataDir       string
}

// APISettings configures the remote directory client.
type APISettings struct {
	BaseURL           string
	Key               string
	Timeout           time.Duration
	RequestsPerSecond float64
}

// DirectorySettings configures listing and search behaviour.
type DirectorySettings struct {
	// TotalPages bounds the sequential fetch-all-pages loop and page clamping.
	// It is replaced by the server-reported total once a page has loaded.
	TotalPages int

	// SearchDebounce is the quiescence window before a query is aggregated.
	SearchDebounce time.Duration

	// MockBackend marks the remote service as non-persistent, which
	// qualifies write confirmations.
	MockBackend bool
}

// NotificationSettings configures how long notifications stay visible.
type NotificationSettings struct {
	ErrorDuration   time.Duration
	SuccessDuration time.Duration
}

// DefaultSettings returns the settings used when no configuration is present.
func DefaultSettings() Settings {
	return Settings{
		API: APISettings{
			BaseURL:           DefaultBaseURL,
			Key:               DefaultAPIKey,
			Timeout:           DefaultTimeout,
			RequestsPerSecond: DefaultRequestsPerSecond,
		},
		Directory: DirectorySettings{
			TotalPages:     DefaultTotalPages,
			SearchDebounce: DefaultSearchDebounce,
			MockBackend:    true,
		},
		Notifications: NotificationSettings{
			ErrorDuration:   DefaultErrorDuration,
			SuccessDuration: DefaultSuccessDuration,
		},
	}
}

// ClampPage clamps n into [1, totalPages]. A non-positive total is treated as 1.
func ClampPage(n, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if n < 1 {
		return 1
	}
	if n > totalPages {
		return totalPages
	}
	return n
}
