package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/userdir-cli/internal/core/domain"
	"github.com/custodia-labs/userdir-cli/internal/core/ports/driving"
)

// Ensure Notifier implements the interface.
var _ driving.Notifications = (*Notifier)(nil)

// Notifier holds transient notifications. Error notifications outlive
// success notifications; expired entries are dropped on read.
type Notifier struct {
	mu         sync.Mutex
	now        func() time.Time
	errorTTL   time.Duration
	successTTL time.Duration
	items      []domain.Notification
}

// NewNotifier creates a notifier with the given visibility durations.
func NewNotifier(settings domain.NotificationSettings) *Notifier {
	n := &Notifier{now: time.Now}
	n.SetDurations(settings)
	return n
}

// SetDurations updates visibility durations for future notifications.
func (n *Notifier) SetDurations(settings domain.NotificationSettings) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errorTTL = settings.ErrorDuration
	if n.errorTTL <= 0 {
		n.errorTTL = domain.DefaultErrorDuration
	}
	n.successTTL = settings.SuccessDuration
	if n.successTTL <= 0 {
		n.successTTL = domain.DefaultSuccessDuration
	}
}

// Push adds a notification and returns it.
func (n *Notifier) Push(level domain.NotificationLevel, message string) domain.Notification {
	n.mu.Lock()
	now := n.now()
	ttl := n.successTTL
	if level == domain.NotifyError {
		ttl = n.errorTTL
	}
	item := domain.Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	n.items = append(n.items, item)
	n.mu.Unlock()
	return item
}

// Success pushes a success notification.
func (n *Notifier) Success(message string) domain.Notification {
	return n.Push(domain.NotifySuccess, message)
}

// Error pushes an error notification with the user message of err.
func (n *Notifier) Error(err error) domain.Notification {
	return n.Push(domain.NotifyError, domain.UserMessage(err))
}

// Active returns unexpired notifications, oldest first.
func (n *Notifier) Active() []domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	now := n.now()
	kept := n.items[:0]
	for _, item := range n.items {
		if !item.Expired(now) {
			kept = append(kept, item)
		}
	}
	n.items = kept
	out := make([]domain.Notification, len(kept))
	copy(out, kept)
	return out
}

// Dismiss removes the notification with id.
func (n *Notifier) Dismiss(id string) {
	n.mu.Lock()
	for i, item := range n.items {
		if item.ID == id {
			n.items = append(n.items[:i], n.items[i+1:]...)
			break
		}
	}
	n.mu.Unlock()
}

// DismissAll removes every notification.
func (n *Notifier) DismissAll() {
	n.mu.Lock()
	n.items = nil
	n.mu.Unlock()
}
