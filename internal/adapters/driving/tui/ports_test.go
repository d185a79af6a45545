package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPorts(t *testing.T) {
	f := newFixture(t)

	ports := NewPorts(f.auth, f.view, f.editor, f.notifier)

	assert.Equal(t, f.auth, ports.Auth)
	assert.Equal(t, f.view, ports.Directory)
	assert.Equal(t, f.editor, ports.Editor)
	assert.Equal(t, f.notifier, ports.Notifications)
	assert.NoError(t, ports.Validate())
}

func TestPorts_Validate(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		ports *Ports
		want  error
	}{
		{"nil ports", nil, ErrInvalidPorts},
		{"missing auth", &Ports{Directory: f.view, Editor: f.editor, Notifications: f.notifier}, ErrMissingAuthService},
		{"missing directory", &Ports{Auth: f.auth, Editor: f.editor, Notifications: f.notifier}, ErrMissingDirectoryService},
		{"missing editor", &Ports{Auth: f.auth, Directory: f.view, Notifications: f.notifier}, ErrMissingEditorService},
		{"missing notifications", &Ports{Auth: f.auth, Directory: f.view, Editor: f.editor}, ErrMissingNotifications},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.ports.Validate(), tt.want)
		})
	}
}
