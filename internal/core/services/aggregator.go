package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/userdir-cli/internal/core/domain"
	"github.com/custodia-labs/userdir-cli/internal/core/ports/driven"
	"github.com/custodia-labs/userdir-cli/internal/logger"
)

// Message shown when a search aggregation fails.
const msgSearchFailed = "Search failed. Please try again."

// SearchAggregator runs debounced searches across every page.
//
// A query is aggregated only after it has been stable for the debounce
// window. Each query change bumps a generation number, stops the pending
// timer and cancels the in-flight aggregation; any result carrying an
// older generation is discarded.
type SearchAggregator struct {
	client     driven.DirectoryClient
	tombstones *Tombstones
	bound      func() int
	debounce   time.Duration
	afterFunc  AfterFunc
	onChange   func()
	onError    func(error)

	mu       sync.Mutex
	active   bool
	query    string
	all      []domain.Entry
	filtered []domain.Entry
	status   domain.LoadStatus
	err      error
	gen      uint64
	timer    Timer
	cancel   context.CancelFunc
}

// NewSearchAggregator creates an aggregator. bound returns the current
// page bound used for the fetch-all-pages loop.
func NewSearchAggregator(
	client driven.DirectoryClient,
	bound func() int,
	debounce time.Duration,
	tombstones *Tombstones,
) *SearchAggregator {
	return &SearchAggregator{
		client:     client,
		tombstones: tombstones,
		bound:      bound,
		debounce:   debounce,
		afterFunc:  realAfterFunc,
		onChange:   func() {},
		onError:    func(error) {},
		status:     domain.LoadIdle,
	}
}

// SetAfterFunc replaces the scheduler used for the debounce window.
func (a *SearchAggregator) SetAfterFunc(f AfterFunc) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.afterFunc = f
}

// SetQuery records a query change. The query is trimmed; an empty query
// ends the search session immediately, anything else is aggregated once
// the debounce window passes without another change.
func (a *SearchAggregator) SetQuery(ctx context.Context, query string) {
	query = strings.TrimSpace(query)

	a.mu.Lock()
	gen := a.supersedeLocked()
	if query == "" {
		a.clearLocked()
		a.mu.Unlock()
		a.onChange()
		return
	}

	// An active session tracks the pending query so the view never
	// reports a superseded one as loading.
	pending := a.active
	if pending {
		a.query = query
		a.status = domain.LoadLoading
		a.err = nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.timer = a.afterFunc(a.debounce, func() {
		_ = a.run(runCtx, gen, query)
	})
	a.mu.Unlock()
	logger.Debug("Search %q scheduled in %s (generation %d)", query, a.debounce, gen)
	if pending {
		a.onChange()
	}
}

// Search aggregates query immediately and waits for the result.
// An empty query ends the search session.
func (a *SearchAggregator) Search(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)

	a.mu.Lock()
	gen := a.supersedeLocked()
	if query == "" {
		a.clearLocked()
		a.mu.Unlock()
		a.onChange()
		return nil
	}
	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.mu.Unlock()

	defer cancel()
	return a.run(runCtx, gen, query)
}

// supersedeLocked starts a new generation and abandons pending work.
func (a *SearchAggregator) supersedeLocked() uint64 {
	a.gen++
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	return a.gen
}

func (a *SearchAggregator) clearLocked() {
	a.active = false
	a.query = ""
	a.all = nil
	a.filtered = nil
	a.status = domain.LoadIdle
	a.err = nil
}

func (a *SearchAggregator) run(ctx context.Context, gen uint64, query string) error {
	a.mu.Lock()
	if gen != a.gen {
		a.mu.Unlock()
		return domain.ErrStale
	}
	a.timer = nil
	a.active = true
	a.query = query
	a.status = domain.LoadLoading
	a.err = nil
	a.mu.Unlock()
	a.onChange()

	logger.Section("Search Aggregation")
	logger.Debug("Query: %q (generation %d)", query, gen)

	var all []domain.Entry
	_, err := scanPages(ctx, a.client, a.bound(), func(p domain.Page) bool {
		if a.superseded(gen) {
			return true
		}
		all = append(all, p.Entries...)
		return false
	})

	a.mu.Lock()
	if gen != a.gen {
		latest := a.gen
		a.mu.Unlock()
		logger.Debug("Discarding search %q: generation %d superseded by %d", query, gen, latest)
		return domain.ErrStale
	}
	if err != nil {
		a.status = domain.LoadError
		a.err = wrapOp(err, domain.ErrSearch, "search "+query, msgSearchFailed)
		a.all = nil
		a.filtered = nil
		opErr := a.err
		a.mu.Unlock()
		logger.Warn("Search %q failed: %v", query, err)
		a.onError(opErr)
		a.onChange()
		return opErr
	}

	all = a.tombstones.Filter(all)
	a.all = all
	a.filtered = domain.FilterByQuery(all, query)
	a.status = domain.LoadReady
	matched := len(a.filtered)
	a.mu.Unlock()

	logger.Debug("Search %q: %d of %d entries matched", query, matched, len(all))
	a.onChange()
	return nil
}

func (a *SearchAggregator) superseded(gen uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return gen != a.gen
}

// RemoveEntry drops id from the aggregated and filtered results.
func (a *SearchAggregator) RemoveEntry(id int) {
	a.mu.Lock()
	a.all = domain.WithoutID(a.all, id)
	a.filtered = domain.WithoutID(a.filtered, id)
	a.mu.Unlock()
	a.onChange()
}

// State returns a snapshot of the search session. The returned slices must not be modified.
func (a *SearchAggregator) State() domain.SearchState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return domain.SearchState{
		Active:   a.active,
		Query:    a.query,
		All:      a.all,
		Filtered: a.filtered,
		Status:   a.status,
		Err:      a.err,
	}
}

// Stop abandons any pending or in-flight aggregation.
func (a *SearchAggregator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.supersedeLocked()
}
