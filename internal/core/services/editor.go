package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/userdir-cli/internal/core/domain"
	"github.com/custodia-labs/userdir-cli/internal/core/ports/driven"
	"github.com/custodia-labs/userdir-cli/internal/core/ports/driving"
	"github.com/custodia-labs/userdir-cli/internal/logger"
)

// Ensure EditorService implements the interface.
var _ driving.EntryEditor = (*EditorService)(nil)

// Editor messages.
const (
	msgUserNotFound   = "User not found"
	msgLoadUserFailed = "Failed to load user data"
	msgUpdateFailed   = "Failed to update user"
	msgUpdated        = "User updated successfully!"
)

// EditorService resolves one entry, validates edits and submits them.
//
// State machine: idle -> resolving -> editing -> submitting, then
// success (navigates back to the source page) or back to editing on
// failure. Resolution failures return to idle.
type EditorService struct {
	client    driven.DirectoryClient
	navigator driven.Navigator
	notifier  *Notifier
	bound     func() int
	confirm   func(string) string

	mu         sync.Mutex
	state      domain.EditorState
	entry      domain.Entry
	sourcePage int
}

// NewEditorService creates an editor. bound returns the page bound used
// when scanning for an entry without a hint.
func NewEditorService(
	client driven.DirectoryClient,
	navigator driven.Navigator,
	notifier *Notifier,
	bound func() int,
) *EditorService {
	if navigator == nil {
		navigator = driven.NopNavigator{}
	}
	return &EditorService{
		client:    client,
		navigator: navigator,
		notifier:  notifier,
		bound:     bound,
		confirm:   func(s string) string { return s },
		state:     domain.EditorIdle,
	}
}

// SetNavigator replaces the navigation layer.
func (e *EditorService) SetNavigator(n driven.Navigator) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if n == nil {
		n = driven.NopNavigator{}
	}
	e.navigator = n
}

// SetMockBackend qualifies confirmations when the remote service does
// not persist writes.
func (e *EditorService) SetMockBackend(mock bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.confirm = confirmation(mock)
}

// Open resolves the entry for edit. A hint is used directly; otherwise
// pages 1..bound are scanned sequentially and scanning stops at the first
// page containing the id.
func (e *EditorService) Open(ctx context.Context, edit domain.EditContext) (domain.Entry, error) {
	e.mu.Lock()
	e.state = domain.EditorResolving
	e.entry = domain.Entry{}
	e.sourcePage = 0
	e.mu.Unlock()

	if edit.Hint != nil {
		entry := edit.Hint.Entry
		if entry.ID == 0 {
			entry.ID = edit.ID
		}
		source := edit.Hint.SourcePage
		if source < 1 {
			source = 1
		}
		logger.Debug("Editing entry %d from hint (source page %d)", entry.ID, source)
		return e.editing(entry, source), nil
	}

	logger.Debug("Resolving entry %d by page scan", edit.ID)
	var (
		found  domain.Entry
		source int
	)
	ok, err := scanPages(ctx, e.client, e.bound(), func(p domain.Page) bool {
		if entry, hit := p.Find(edit.ID); hit {
			found = entry
			source = p.Number
			return true
		}
		return false
	})
	if err != nil {
		return domain.Entry{}, e.fail(wrapOp(err, domain.ErrFetch, fmt.Sprintf("resolve %d", edit.ID), msgLoadUserFailed))
	}
	if !ok {
		return domain.Entry{}, e.fail(domain.NewOpError(domain.ErrNotFound, fmt.Sprintf("resolve %d", edit.ID), msgUserNotFound, nil))
	}
	if source < 1 {
		source = 1
	}
	return e.editing(found, source), nil
}

func (e *EditorService) editing(entry domain.Entry, source int) domain.Entry {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.entry = entry
	e.sourcePage = source
	e.state = domain.EditorEditing
	return entry
}

func (e *EditorService) fail(err error) error {
	e.mu.Lock()
	e.state = domain.EditorIdle
	e.mu.Unlock()
	e.notifier.Error(err)
	return err
}

// Submit validates fields locally, sends them to the remote service and
// merges the echoed fields into the held entry. Validation failures never
// reach the network.
func (e *EditorService) Submit(ctx context.Context, fields domain.EntryFields) (domain.Entry, error) {
	e.mu.Lock()
	if e.state != domain.EditorEditing {
		e.mu.Unlock()
		return domain.Entry{}, ErrNotEditing
	}
	if err := fields.Validate(); err != nil {
		e.mu.Unlock()
		e.notifier.Error(err)
		return domain.Entry{}, err
	}
	e.state = domain.EditorSubmitting
	held := e.entry
	source := e.sourcePage
	e.mu.Unlock()

	logger.Debug("Updating entry %d", held.ID)
	patch := fields.Patch()
	echo, err := e.client.UpdateEntry(ctx, held.ID, patch)
	if err != nil {
		e.mu.Lock()
		e.state = domain.EditorEditing
		e.mu.Unlock()
		err = wrapOp(err, domain.ErrWrite, fmt.Sprintf("update %d", held.ID), msgUpdateFailed)
		e.notifier.Error(err)
		return domain.Entry{}, err
	}

	merged := held.Apply(echo)
	e.mu.Lock()
	e.entry = merged
	e.state = domain.EditorSucceeded
	nav := e.navigator
	confirm := e.confirm
	e.mu.Unlock()

	if echo.UpdatedAt != nil {
		logger.Debug("Entry %d updated at %s", merged.ID, echo.UpdatedAt.Format(time.RFC3339))
	}
	e.notifier.Success(confirm(msgUpdated))
	nav.GoToUsers(source)
	return merged, nil
}

// Cancel abandons the edit and returns to the source page.
func (e *EditorService) Cancel() {
	e.mu.Lock()
	source := e.sourcePage
	wasOpen := e.state != domain.EditorIdle
	e.state = domain.EditorIdle
	e.entry = domain.Entry{}
	e.sourcePage = 0
	nav := e.navigator
	e.mu.Unlock()
	if wasOpen {
		nav.GoToUsers(source)
	}
}

// State returns the editor state.
func (e *EditorService) State() domain.EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Entry returns the entry being edited.
func (e *EditorService) Entry() domain.Entry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.entry
}

// SourcePage is the listing page to return to after saving.
func (e *EditorService) SourcePage() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sourcePage
}
