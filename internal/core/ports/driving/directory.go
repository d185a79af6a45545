package driving

import (
	"context"

	"github.com/custodia-labs/userdir-cli/internal/core/domain"
)

// DirectoryView is the user-facing listing: paginated browsing, debounced
// search across all pages, and deletes reconciled into every local collection.
type DirectoryView interface {
	// SetPage loads page n, clamped into [1, totalPages].
	SetPage(ctx context.Context, n int) error

	// NextPage and PrevPage move one page, stopping at the boundaries.
	NextPage(ctx context.Context) error
	PrevPage(ctx context.Context) error

	// Reload re-fetches the current page, keeping its entries visible meanwhile.
	Reload(ctx context.Context) error

	// SetQuery schedules a debounced search. An empty query (after
	// trimming) returns to paginated browsing immediately.
	SetQuery(ctx context.Context, query string)

	// Search aggregates query across all pages without debouncing
	// and waits for the result.
	Search(ctx context.Context, query string) error

	// Delete removes the entry remotely and, only on success, from
	// every local collection.
	Delete(ctx context.Context, id int) error

	// State returns the derived view.
	State() domain.ViewState

	// Changes signals (coalesced) whenever State may have changed.
	Changes() <-chan struct{}
}
