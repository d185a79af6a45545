package tui

import "errors"

// ErrMissingAuthService is returned when the auth service is not provided.
var ErrMissingAuthService = errors.New("tui: auth service is required")

// ErrMissingDirectoryService is returned when the directory view is not provided.
var ErrMissingDirectoryService = errors.New("tui: directory service is required")

// ErrMissingEditorService is returned when the entry editor is not provided.
var ErrMissingEditorService = errors.New("tui: editor service is required")

// ErrMissingNotifications is returned when the notification feed is not provided.
var ErrMissingNotifications = errors.New("tui: notifications are required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
