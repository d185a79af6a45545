package driving

import "github.com/custodia-labs/userdir-cli/internal/core/domain"

// Notifications exposes transient user notifications.
type Notifications interface {
	// Active returns unexpired notifications, oldest first.
	Active() []domain.Notification

	// Dismiss removes one notification.
	Dismiss(id string)

	// DismissAll removes every notification.
	DismissAll()
}
