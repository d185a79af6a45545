package driven

import (
	"context"

	"github.com/custodia-labs/userdir-cli/internal/core/domain"
)

// DirectoryClient is the remote user-directory service.
// Implementations are stateless: they own no domain state and perform no
// retries. Every failure is returned as a *domain.OpError whose kind is
// ErrAuth, ErrFetch or ErrWrite depending on the operation.
type DirectoryClient interface {
	// Authenticate exchanges credentials for an opaque session token.
	Authenticate(ctx context.Context, email, password string) (string, error)

	// ListPage fetches one page of entries. page is 1-indexed.
	ListPage(ctx context.Context, page int) (domain.Page, error)

	// UpdateEntry submits fields for the entry and returns the fields
	// the server echoed back. Unechoed fields are nil in the result.
	UpdateEntry(ctx context.Context, id int, fields domain.EntryPatch) (domain.EntryPatch, error)

	// DeleteEntry removes the entry. The remote may not persist the removal.
	DeleteEntry(ctx context.Context, id int) error
}
