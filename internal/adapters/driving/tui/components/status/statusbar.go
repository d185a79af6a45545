// Package status provides the notification and hint line for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/userdir-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/userdir-cli/internal/core/domain"
)

// Bar displays the newest notification on the left and keybinding
// hints on the right.
type Bar struct {
	styles        *styles.Styles
	bindings      []key.Binding
	notifications []domain.Notification
	busy          string
	width         int
}

// NewBar creates a new status bar.
func NewBar(s *styles.Styles) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Bar{styles: s, width: 80}
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	padding := b.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}
	return b.styles.StatusBar.Render(left + strings.Repeat(" ", padding) + right)
}

func (b *Bar) renderLeft() string {
	if n := len(b.notifications); n > 0 {
		latest := b.notifications[n-1]
		text := latest.Message
		if n > 1 {
			text = fmt.Sprintf("%s (+%d)", text, n-1)
		}
		if latest.Level == domain.NotifyError {
			return b.styles.Error.Render("✗ " + text)
		}
		return b.styles.Success.Render("✓ " + text)
	}
	if b.busy != "" {
		return b.styles.Muted.Render(b.busy)
	}
	return ""
}

func (b *Bar) renderRight() string {
	hints := make([]string, 0, len(b.bindings))
	for _, binding := range b.bindings {
		h := binding.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Help.Render(strings.Join(hints, " | "))
}

// SetNotifications replaces the notifications shown, oldest first.
func (b *Bar) SetNotifications(n []domain.Notification) {
	b.notifications = n
}

// Notifications returns the notifications shown.
func (b *Bar) Notifications() []domain.Notification {
	return b.notifications
}

// SetBusy shows an activity message while no notification is visible.
// An empty message clears it.
func (b *Bar) SetBusy(message string) {
	b.busy = message
}

// SetBindings sets the keybinding hints.
func (b *Bar) SetBindings(bindings []key.Binding) {
	b.bindings = bindings
}

// Bindings returns the keybinding hints.
func (b *Bar) Bindings() []key.Binding {
	return b.bindings
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Width returns the current width.
func (b *Bar) Width() int {
	return b.width
}
