package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/userdir-cli/internal/core/domain"
	"github.com/custodia-labs/userdir-cli/internal/core/ports/driven"
	"github.com/custodia-labs/userdir-cli/internal/core/ports/driving"
	"github.com/custodia-labs/userdir-cli/internal/logger"
)

// Ensure DirectoryService implements the interface.
var _ driving.DirectoryView = (*DirectoryService)(nil)

// Delete messages.
const (
	msgDeleted      = "User deleted successfully!"
	msgDeleteFailed = "Failed to delete user. Please try again."
)

// DirectoryService composes the page cache and the search aggregator
// into the displayed listing, and reconciles deletes into both.
//
// A delete is applied locally only after the remote delete succeeds. The
// id is then tombstoned and removed from every local collection, so later
// or in-flight fetches cannot bring it back.
type DirectoryService struct {
	client     driven.DirectoryClient
	notifier   *Notifier
	pages      *PageCache
	search     *SearchAggregator
	tombstones *Tombstones
	removers   []entryRemover
	feed       *changeFeed
	confirm    func(string) string
}

// NewDirectoryService wires a page cache and search aggregator over client.
func NewDirectoryService(
	client driven.DirectoryClient,
	notifier *Notifier,
	settings domain.DirectorySettings,
) *DirectoryService {
	tombstones := NewTombstones()
	pages := NewPageCache(client, settings.TotalPages, tombstones)
	search := NewSearchAggregator(client, pages.TotalPages, settings.SearchDebounce, tombstones)

	s := &DirectoryService{
		client:     client,
		notifier:   notifier,
		pages:      pages,
		search:     search,
		tombstones: tombstones,
		removers:   []entryRemover{pages, search},
		feed:       newChangeFeed(),
		confirm:    confirmation(settings.MockBackend),
	}
	pages.onChange = s.feed.notify
	search.onChange = s.feed.notify
	search.onError = func(err error) { notifier.Error(err) }
	return s
}

// SetAfterFunc replaces the debounce scheduler.
func (s *DirectoryService) SetAfterFunc(f AfterFunc) {
	s.search.SetAfterFunc(f)
}

// TotalPages returns the current page bound.
func (s *DirectoryService) TotalPages() int {
	return s.pages.TotalPages()
}

// SetPage loads page n, clamped into [1, totalPages].
func (s *DirectoryService) SetPage(ctx context.Context, n int) error {
	return s.settle(s.pages.SetPage(ctx, n))
}

// NextPage loads the following page, stopping at the last page.
func (s *DirectoryService) NextPage(ctx context.Context) error {
	return s.SetPage(ctx, s.pages.Number()+1)
}

// PrevPage loads the preceding page, stopping at page 1.
func (s *DirectoryService) PrevPage(ctx context.Context) error {
	return s.SetPage(ctx, s.pages.Number()-1)
}

// Reload re-fetches the current page.
func (s *DirectoryService) Reload(ctx context.Context) error {
	return s.settle(s.pages.Reload(ctx))
}

// settle notifies page load failures and hides superseded results.
func (s *DirectoryService) settle(err error) error {
	if err == nil || errors.Is(err, domain.ErrStale) {
		return nil
	}
	s.notifier.Error(err)
	return err
}

// SetQuery schedules a debounced search.
func (s *DirectoryService) SetQuery(ctx context.Context, query string) {
	s.search.SetQuery(ctx, query)
}

// Search aggregates query immediately. Failures are notified by the aggregator.
func (s *DirectoryService) Search(ctx context.Context, query string) error {
	err := s.search.Search(ctx, query)
	if errors.Is(err, domain.ErrStale) {
		return nil
	}
	return err
}

// Delete removes id remotely and, on success, from every local collection.
// Deleting an id that is no longer held locally is a no-op for local state.
func (s *DirectoryService) Delete(ctx context.Context, id int) error {
	logger.Debug("Deleting entry %d", id)
	if err := s.client.DeleteEntry(ctx, id); err != nil {
		err = wrapOp(err, domain.ErrWrite, fmt.Sprintf("delete %d", id), msgDeleteFailed)
		s.notifier.Error(err)
		return err
	}

	if s.tombstones.Add(id) {
		for _, r := range s.removers {
			r.RemoveEntry(id)
		}
	}
	s.notifier.Success(s.confirm(msgDeleted))
	s.feed.notify()
	return nil
}

// State derives the displayed view.
func (s *DirectoryService) State() domain.ViewState {
	return domain.Derive(s.pages.State(), s.search.State())
}

// Changes signals whenever State may have changed.
func (s *DirectoryService) Changes() <-chan struct{} {
	return s.feed.C()
}

// Close abandons pending searches.
func (s *DirectoryService) Close() {
	s.search.Stop()
}
