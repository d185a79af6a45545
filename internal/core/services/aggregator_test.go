package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/userdir-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/userdir-cli/internal/core/domain"
)

func newTestAggregator(dir *memory.Directory) (*SearchAggregator, *manualScheduler) {
	sched := &manualScheduler{}
	agg := NewSearchAggregator(dir, func() int { return 3 }, 500*time.Millisecond, NewTombstones())
	agg.SetAfterFunc(sched.AfterFunc)
	return agg, sched
}

func TestSearchAggregator_DebounceRunsOnlyLastQuery(t *testing.T) {
	dir := memory.NewDirectory()
	agg, sched := newTestAggregator(dir)
	ctx := context.Background()

	agg.SetQuery(ctx, "b")
	agg.SetQuery(ctx, "bl")
	assert.Equal(t, 1, sched.Live())
	assert.False(t, agg.State().Active, "session starts only after the debounce window")

	sched.FireAll()

	assert.Equal(t, []int{1, 2, 3}, dir.ListCalls(), "exactly one aggregation")
	state := agg.State()
	assert.True(t, state.Active)
	assert.Equal(t, "bl", state.Query)
	assert.Equal(t, domain.LoadReady, state.Status)
	assert.Len(t, state.All, 18)
	assert.Equal(t, []int{1, 13, 14}, ids(state.Filtered))
}

func TestSearchAggregator_ScheduledWithDebounceWindow(t *testing.T) {
	dir := memory.NewDirectory()
	agg, sched := newTestAggregator(dir)

	agg.SetQuery(context.Background(), "emma")
	require.Len(t, sched.pending, 1)
	assert.Equal(t, 500*time.Millisecond, sched.pending[0].d)
}

func TestSearchAggregator_EmptyQueryDeactivatesImmediately(t *testing.T) {
	dir := memory.NewDirectory()
	agg, sched := newTestAggregator(dir)
	ctx := context.Background()

	agg.SetQuery(ctx, "wong")
	sched.FireAll()
	require.True(t, agg.State().Active)

	agg.SetQuery(ctx, "   ")
	state := agg.State()
	assert.False(t, state.Active)
	assert.Empty(t, state.Query)
	assert.Empty(t, state.All)
	assert.Empty(t, state.Filtered)
	assert.Equal(t, 0, sched.Live())
}

func TestSearchAggregator_ClearCancelsPendingQuery(t *testing.T) {
	dir := memory.NewDirectory()
	agg, sched := newTestAggregator(dir)
	ctx := context.Background()

	agg.SetQuery(ctx, "funke")
	agg.SetQuery(ctx, "")
	sched.FireAll()

	assert.Empty(t, dir.ListCalls())
	assert.False(t, agg.State().Active)
}

func TestSearchAggregator_QueryIsTrimmedAndCaseInsensitive(t *testing.T) {
	dir := memory.NewDirectory()
	agg, _ := newTestAggregator(dir)

	require.NoError(t, agg.Search(context.Background(), "  GEORGE  "))
	state := agg.State()
	assert.Equal(t, "GEORGE", state.Query)
	assert.Equal(t, []int{1, 11}, ids(state.Filtered))
}

func TestSearchAggregator_FailureShowsNoPartialResults(t *testing.T) {
	dir := memory.NewDirectory()
	dir.FailPage(2, errors.New("502 bad gateway"))
	agg, sched := newTestAggregator(dir)

	var reported error
	agg.onError = func(err error) { reported = err }

	agg.SetQuery(context.Background(), "george")
	sched.FireAll()

	state := agg.State()
	assert.True(t, state.Active)
	assert.Equal(t, domain.LoadError, state.Status)
	assert.Empty(t, state.All)
	assert.Empty(t, state.Filtered)
	assert.ErrorIs(t, state.Err, domain.ErrSearch)
	assert.Equal(t, "Search failed. Please try again.", domain.UserMessage(state.Err))
	assert.Equal(t, []int{1, 2}, dir.ListCalls(), "aggregation stops at the failing page")
	assert.Equal(t, state.Err, reported)
}

func TestSearchAggregator_SupersededSearchIsDiscarded(t *testing.T) {
	dir := memory.NewDirectory()
	agg, _ := newTestAggregator(dir)
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	first := true
	dir.OnList(func(page int) {
		if page == 2 && first {
			first = false
			close(entered)
			<-release
		}
	})

	done := make(chan error, 1)
	go func() { done <- agg.Search(ctx, "george") }()
	<-entered

	require.NoError(t, agg.Search(ctx, "tracey"))
	close(release)

	assert.ErrorIs(t, <-done, domain.ErrStale)
	state := agg.State()
	assert.Equal(t, "tracey", state.Query)
	assert.Equal(t, []int{6}, ids(state.Filtered))
}

func TestSearchAggregator_RemoveEntry(t *testing.T) {
	dir := memory.NewDirectory()
	agg, _ := newTestAggregator(dir)
	require.NoError(t, agg.Search(context.Background(), "bluth"))
	require.Equal(t, []int{1, 13, 14}, ids(agg.State().Filtered))

	agg.RemoveEntry(13)

	state := agg.State()
	assert.Equal(t, []int{1, 14}, ids(state.Filtered))
	assert.Len(t, state.All, 17)
}

func TestSearchAggregator_StopAbandonsPending(t *testing.T) {
	dir := memory.NewDirectory()
	agg, sched := newTestAggregator(dir)

	agg.SetQuery(context.Background(), "holt")
	agg.Stop()
	sched.FireAll()

	assert.Empty(t, dir.ListCalls())
}

func TestSearchAggregator_PendingQueryReplacesInFlightOne(t *testing.T) {
	dir := memory.NewDirectory()
	agg, sched := newTestAggregator(dir)
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	first := true
	dir.OnList(func(page int) {
		if page == 2 && first {
			first = false
			close(entered)
			<-release
		}
	})

	done := make(chan error, 1)
	go func() { done <- agg.Search(ctx, "george") }()
	<-entered

	agg.SetQuery(ctx, "tracey")
	state := agg.State()
	assert.True(t, state.Active)
	assert.Equal(t, "tracey", state.Query)
	assert.Equal(t, domain.LoadLoading, state.Status)

	close(release)
	assert.ErrorIs(t, <-done, domain.ErrStale)
	assert.Equal(t, "tracey", agg.State().Query, "discarded result keeps the pending query")

	sched.FireAll()
	state = agg.State()
	assert.Equal(t, domain.LoadReady, state.Status)
	assert.Equal(t, []int{6}, ids(state.Filtered))
}

func TestSearchAggregator_FirstQueryWaitsForDebounce(t *testing.T) {
	dir := memory.NewDirectory()
	agg, _ := newTestAggregator(dir)

	agg.SetQuery(context.Background(), "tracey")

	state := agg.State()
	assert.False(t, state.Active)
	assert.Empty(t, state.Query)
	assert.Equal(t, domain.LoadIdle, state.Status)
}
