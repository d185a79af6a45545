package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/userdir-cli/internal/core/domain"
	"github.com/custodia-labs/userdir-cli/internal/core/ports/driven"
	"github.com/custodia-labs/userdir-cli/internal/logger"
)

// Message shown when a page cannot be loaded.
const msgLoadFailed = "Failed to load users. Please try again."

// PageCache holds the currently visible page of entries.
//
// Every fetch carries a generation number; a response whose generation
// has been superseded is discarded, so the cache always reflects the
// most recently requested page. A failed load keeps the last successfully
// loaded page visible.
type PageCache struct {
	client     driven.DirectoryClient
	tombstones *Tombstones
	onChange   func()

	mu         sync.Mutex
	number     int
	totalPages int
	entries    []domain.Entry
	status     domain.LoadStatus
	err        error
	gen        uint64

	// Last successful load, restored when a fetch fails.
	loaded      bool
	goodNumber  int
	goodEntries []domain.Entry
}

// NewPageCache creates a page cache positioned before page 1.
// totalPages is the initial page bound; it is replaced by the
// server-reported total after the first successful load.
func NewPageCache(client driven.DirectoryClient, totalPages int, tombstones *Tombstones) *PageCache {
	if totalPages < 1 {
		totalPages = domain.DefaultTotalPages
	}
	return &PageCache{
		client:     client,
		tombstones: tombstones,
		onChange:   func() {},
		number:     1,
		totalPages: totalPages,
		status:     domain.LoadIdle,
	}
}

// SetPage loads page n, clamped into [1, totalPages]. Requesting the page
// that is already loaded or loading is a no-op. It returns domain.ErrStale
// when a newer request superseded this one before its response arrived.
func (c *PageCache) SetPage(ctx context.Context, n int) error {
	c.mu.Lock()
	n = domain.ClampPage(n, c.totalPages)
	if n == c.number && (c.status == domain.LoadReady || c.status == domain.LoadLoading) {
		c.mu.Unlock()
		return nil
	}
	return c.fetchLocked(ctx, n)
}

// Reload re-fetches the current page. Its entries stay visible meanwhile.
func (c *PageCache) Reload(ctx context.Context) error {
	c.mu.Lock()
	return c.fetchLocked(ctx, c.number)
}

// fetchLocked must be called with c.mu held; it releases the lock.
func (c *PageCache) fetchLocked(ctx context.Context, n int) error {
	c.gen++
	gen := c.gen
	if n != c.number {
		c.entries = nil
	}
	c.number = n
	c.status = domain.LoadLoading
	c.err = nil
	c.mu.Unlock()
	c.onChange()

	logger.Debug("Loading page %d (generation %d)", n, gen)
	page, err := c.client.ListPage(ctx, n)

	c.mu.Lock()
	defer func() {
		c.mu.Unlock()
		c.onChange()
	}()

	if gen != c.gen {
		logger.Debug("Discarding page %d response: generation %d superseded by %d", n, gen, c.gen)
		return domain.ErrStale
	}

	if err != nil {
		c.status = domain.LoadError
		c.err = wrapOp(err, domain.ErrFetch, fmt.Sprintf("list page %d", n), msgLoadFailed)
		if c.loaded {
			c.number = c.goodNumber
			c.entries = c.goodEntries
		} else {
			c.entries = nil
		}
		logger.Warn("Page %d failed to load: %v", n, err)
		return c.err
	}

	entries := c.tombstones.Filter(page.Entries)
	c.entries = entries
	c.status = domain.LoadReady
	if page.TotalPages > 0 {
		c.totalPages = page.TotalPages
	}
	c.loaded = true
	c.goodNumber = n
	c.goodEntries = entries
	logger.Debug("Page %d loaded: %d entries, %d total pages", n, len(entries), c.totalPages)
	return nil
}

// RemoveEntry drops id from the visible and last-good entries.
func (c *PageCache) RemoveEntry(id int) {
	c.mu.Lock()
	c.entries = domain.WithoutID(c.entries, id)
	c.goodEntries = domain.WithoutID(c.goodEntries, id)
	c.mu.Unlock()
	c.onChange()
}

// TotalPages returns the current page bound.
func (c *PageCache) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPages
}

// Number returns the current page number.
func (c *PageCache) Number() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.number
}

// State returns a snapshot of the cache. The returned slice must not be modified.
func (c *PageCache) State() domain.PageState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.PageState{
		Number:     c.number,
		TotalPages: c.totalPages,
		Entries:    c.entries,
		Status:     c.status,
		Err:        c.err,
	}
}
