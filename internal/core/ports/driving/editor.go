package driving

import (
	"context"

	"github.com/custodia-labs/userdir-cli/internal/core/domain"
)

// EntryEditor resolves a single entry and submits updates to it.
type EntryEditor interface {
	// Open consumes an edit context. With a hint the entry is used directly;
	// otherwise pages are scanned until the id is found.
	Open(ctx context.Context, edit domain.EditContext) (domain.Entry, error)

	// Submit validates fields and sends them to the remote service.
	// On success the echoed fields are merged into the held entry and
	// navigation returns to the source page.
	Submit(ctx context.Context, fields domain.EntryFields) (domain.Entry, error)

	// Cancel abandons the edit context.
	Cancel()

	// State returns the editor state.
	State() domain.EditorState

	// Entry returns the entry being edited.
	Entry() domain.Entry

	// SourcePage is the listing page to return to after saving.
	SourcePage() int
}
