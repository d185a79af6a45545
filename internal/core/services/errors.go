package services

import (
	"errors"

	"github.com/custodia-labs/userdir-cli/internal/core/domain"
)

// ErrNotEditing is returned by Submit when no entry has been opened.
var ErrNotEditing = errors.New("no entry is open for editing")

// wrapOp wraps err as an OpError of kind with a user-facing message.
// Stale results pass through unwrapped.
func wrapOp(err, kind error, op, message string) error {
	if err == nil || errors.Is(err, domain.ErrStale) {
		return err
	}
	return domain.NewOpError(kind, op, message, err)
}
