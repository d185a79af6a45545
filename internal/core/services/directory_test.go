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

func newTestDirectory(dir *memory.Directory, mock bool) (*DirectoryService, *Notifier, *manualScheduler) {
	notifier := testNotifier()
	settings := domain.DefaultSettings().Directory
	settings.MockBackend = mock
	svc := NewDirectoryService(dir, notifier, settings)
	sched := &manualScheduler{}
	svc.SetAfterFunc(sched.AfterFunc)
	return svc, notifier, sched
}

func TestDirectoryService_DeleteReconcilesPage(t *testing.T) {
	dir := memory.NewDirectory()
	svc, notifier, _ := newTestDirectory(dir, false)
	ctx := context.Background()

	require.NoError(t, svc.SetPage(ctx, 1))
	require.Len(t, svc.State().Displayed, 6)

	require.NoError(t, svc.Delete(ctx, 2))

	state := svc.State()
	assert.Equal(t, []int{1, 3, 4, 5, 6}, ids(state.Displayed))
	assert.NotContains(t, ids(state.Displayed), 2)
	assert.Equal(t, []string{"User deleted successfully!"}, messages(notifier))
}

func TestDirectoryService_DeleteIsIdempotent(t *testing.T) {
	dir := memory.NewDirectory()
	svc, _, _ := newTestDirectory(dir, false)
	ctx := context.Background()

	require.NoError(t, svc.SetPage(ctx, 1))
	require.NoError(t, svc.Delete(ctx, 2))
	before := ids(svc.State().Displayed)

	require.NoError(t, svc.Delete(ctx, 2))
	assert.Equal(t, before, ids(svc.State().Displayed))
}

func TestDirectoryService_DeleteFailureLeavesCollections(t *testing.T) {
	dir := memory.NewDirectory()
	svc, notifier, _ := newTestDirectory(dir, false)
	ctx := context.Background()

	require.NoError(t, svc.SetPage(ctx, 1))
	dir.FailDelete(errors.New("503"))

	err := svc.Delete(ctx, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrWrite)
	assert.Len(t, svc.State().Displayed, 6)
	assert.Equal(t, []string{"Failed to delete user. Please try again."}, messages(notifier))
}

func TestDirectoryService_DeletedEntryStaysGoneAfterReload(t *testing.T) {
	dir := memory.NewDirectory()
	svc, _, _ := newTestDirectory(dir, false)
	ctx := context.Background()

	require.NoError(t, svc.SetPage(ctx, 1))
	require.NoError(t, svc.Delete(ctx, 4))

	// The backend does not persist deletes; the entry must not come back.
	require.NoError(t, svc.Reload(ctx))
	assert.NotContains(t, ids(svc.State().Displayed), 4)
}

func TestDirectoryService_InFlightFetchDoesNotResurrect(t *testing.T) {
	dir := memory.NewDirectory()
	svc, _, _ := newTestDirectory(dir, false)
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	blocked := false
	dir.OnList(func(page int) {
		if page == 2 && !blocked {
			blocked = true
			close(entered)
			<-release
		}
	})

	done := make(chan error, 1)
	go func() { done <- svc.SetPage(ctx, 2) }()
	<-entered

	require.NoError(t, svc.Delete(ctx, 8))
	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, []int{7, 9, 10, 11, 12}, ids(svc.State().Displayed))
}

func TestDirectoryService_DeleteDuringSearch(t *testing.T) {
	dir := memory.NewDirectory()
	svc, _, _ := newTestDirectory(dir, false)
	ctx := context.Background()

	require.NoError(t, svc.SetPage(ctx, 1))
	require.NoError(t, svc.Search(ctx, "bluth"))
	require.Equal(t, []int{1, 13, 14}, ids(svc.State().Displayed))

	require.NoError(t, svc.Delete(ctx, 1))
	assert.Equal(t, []int{13, 14}, ids(svc.State().Displayed))

	// Leaving search shows the page cache, which was reconciled too.
	svc.SetQuery(ctx, "")
	state := svc.State()
	assert.Equal(t, domain.ModePaginated, state.Mode)
	assert.Equal(t, []int{2, 3, 4, 5, 6}, ids(state.Displayed))
}

func TestDirectoryService_SearchModeHidesPagination(t *testing.T) {
	dir := memory.NewDirectory()
	svc, _, sched := newTestDirectory(dir, false)
	ctx := context.Background()

	require.NoError(t, svc.SetPage(ctx, 2))
	state := svc.State()
	assert.True(t, state.ShowPagination())
	assert.True(t, state.CanPrev())
	assert.True(t, state.CanNext())

	svc.SetQuery(ctx, "george")
	sched.FireAll()

	state = svc.State()
	assert.Equal(t, domain.ModeSearch, state.Mode)
	assert.False(t, state.ShowPagination())
	assert.Equal(t, []int{1, 11}, ids(state.Displayed))
	assert.Equal(t, 2, state.Page, "page cache is untouched by search")
}

func TestDirectoryService_NextPrevStopAtBounds(t *testing.T) {
	dir := memory.NewDirectory()
	svc, _, _ := newTestDirectory(dir, false)
	ctx := context.Background()

	require.NoError(t, svc.SetPage(ctx, 1))
	require.NoError(t, svc.PrevPage(ctx))
	assert.Equal(t, 1, svc.State().Page)

	require.NoError(t, svc.NextPage(ctx))
	require.NoError(t, svc.NextPage(ctx))
	require.NoError(t, svc.NextPage(ctx))
	state := svc.State()
	assert.Equal(t, 3, state.Page)
	assert.False(t, state.CanNext())
	assert.Equal(t, []int{1, 2, 3}, dir.ListCalls())
}

func TestDirectoryService_PageFailureNotifies(t *testing.T) {
	dir := memory.NewDirectory()
	dir.FailPage(1, errors.New("timeout"))
	svc, notifier, _ := newTestDirectory(dir, false)

	err := svc.SetPage(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrFetch)
	assert.Equal(t, []string{"Failed to load users. Please try again."}, messages(notifier))
}

func TestDirectoryService_SearchFailureNotifies(t *testing.T) {
	dir := memory.NewDirectory()
	dir.FailPage(3, errors.New("timeout"))
	svc, notifier, sched := newTestDirectory(dir, false)

	svc.SetQuery(context.Background(), "ramos")
	sched.FireAll()

	assert.Equal(t, []string{"Search failed. Please try again."}, messages(notifier))
	assert.Empty(t, svc.State().Displayed)
}

func TestDirectoryService_MockBackendQualifiesConfirmation(t *testing.T) {
	dir := memory.NewDirectory()
	svc, notifier, _ := newTestDirectory(dir, true)

	require.NoError(t, svc.Delete(context.Background(), 5))
	assert.Equal(t, []string{"User deleted (remote service does not persist changes)"}, messages(notifier))
}

func TestDirectoryService_ChangesSignal(t *testing.T) {
	dir := memory.NewDirectory()
	svc, _, _ := newTestDirectory(dir, false)

	require.NoError(t, svc.SetPage(context.Background(), 1))

	select {
	case <-svc.Changes():
	case <-time.After(time.Second):
		t.Fatal("expected a change signal")
	}
}
