// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/userdir-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/userdir-cli/internal/core/domain"
)

// EntryList displays directory entries with a movable selection.
type EntryList struct {
	entries  []domain.Entry
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewEntryList creates an empty entry list.
func NewEntryList(s *styles.Styles) *EntryList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &EntryList{styles: s, width: 80, height: 10}
}

// SetEntries replaces the entries. The selection keeps its index,
// clamped to the new length, so deleting the selected row selects
// its successor.
func (l *EntryList) SetEntries(entries []domain.Entry) {
	l.entries = entries
	if l.selected >= len(entries) {
		l.selected = len(entries) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

// Entries returns the displayed entries.
func (l *EntryList) Entries() []domain.Entry {
	return l.entries
}

// MoveUp moves the selection up.
func (l *EntryList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves the selection down.
func (l *EntryList) MoveDown() {
	if l.selected < len(l.entries)-1 {
		l.selected++
	}
}

// Selected returns the selected index.
func (l *EntryList) Selected() int {
	return l.selected
}

// SelectedEntry returns the selected entry, or nil when the list is empty.
func (l *EntryList) SelectedEntry() *domain.Entry {
	if len(l.entries) == 0 {
		return nil
	}
	e := l.entries[l.selected]
	return &e
}

// SetDimensions sets the list size.
func (l *EntryList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// View renders the visible window of entries.
func (l *EntryList) View() string {
	if len(l.entries) == 0 {
		return l.styles.Muted.Render("No users found")
	}

	visible := l.height
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := min(start+visible, len(l.entries))

	nameWidth := 24
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		e := l.entries[i]
		name := e.FullName()
		if len(name) > nameWidth {
			name = name[:nameWidth-1] + "…"
		}
		row := fmt.Sprintf("%4d  %-*s  %s", e.ID, nameWidth, name, e.Email)
		if i == l.selected {
			lines = append(lines, l.styles.Selected.Render("> "+row))
		} else {
			lines = append(lines, l.styles.Normal.Render("  "+row))
		}
	}
	return strings.Join(lines, "\n")
}
