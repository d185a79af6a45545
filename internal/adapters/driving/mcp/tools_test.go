package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/userdir-cli/internal/core/domain"
)

func TestServer_handleListUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to page 1", func(t *testing.T) {
		f := newFixture(t, false)
		_, out, err := f.server.handleListUsers(ctx, nil, ListUsersInput{})
		require.NoError(t, err)
		assert.Equal(t, 1, out.Page)
		assert.Equal(t, 3, out.TotalPages)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, userIDs(out.Users))
		assert.Equal(t, 6, out.Count)
	})

	t.Run("clamps past the last page", func(t *testing.T) {
		f := newFixture(t, false)
		_, out, err := f.server.handleListUsers(ctx, nil, ListUsersInput{Page: 9})
		require.NoError(t, err)
		assert.Equal(t, 3, out.Page)
		assert.Equal(t, []int{13, 14, 15, 16, 17, 18}, userIDs(out.Users))
	})

	t.Run("ends an active search", func(t *testing.T) {
		f := newFixture(t, false)
		_, _, err := f.server.handleListUsers(ctx, nil, ListUsersInput{Page: 2})
		require.NoError(t, err)
		_, found, err := f.server.handleSearchUsers(ctx, nil, SearchUsersInput{Query: "bluth"})
		require.NoError(t, err)
		require.Equal(t, []int{1, 13, 14}, userIDs(found.Users))

		_, out, err := f.server.handleListUsers(ctx, nil, ListUsersInput{Page: 3})
		require.NoError(t, err)
		assert.Equal(t, 3, out.Page)
		assert.Equal(t, []int{13, 14, 15, 16, 17, 18}, userIDs(out.Users))
		assert.Equal(t, domain.ModePaginated, f.server.ports.Directory.State().Mode)
	})

	t.Run("returns error on fetch failure", func(t *testing.T) {
		f := newFixture(t, false)
		f.directory.FailPage(2, errors.New("boom"))
		_, _, err := f.server.handleListUsers(ctx, nil, ListUsersInput{Page: 2})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrFetch)
		assert.Contains(t, err.Error(), "Failed to load users")
	})
}

func TestServer_handleSearchUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("matches across pages", func(t *testing.T) {
		f := newFixture(t, false)
		_, out, err := f.server.handleSearchUsers(ctx, nil, SearchUsersInput{Query: "bluth"})
		require.NoError(t, err)
		assert.Equal(t, "bluth", out.Query)
		assert.Equal(t, []int{1, 13, 14}, userIDs(out.Users))
		assert.Equal(t, []int{1, 2, 3}, f.directory.ListCalls())
	})

	t.Run("empty query is rejected", func(t *testing.T) {
		f := newFixture(t, false)
		_, _, err := f.server.handleSearchUsers(ctx, nil, SearchUsersInput{Query: "   "})
		assert.Error(t, err)
	})

	t.Run("page failure fails the search", func(t *testing.T) {
		f := newFixture(t, false)
		f.directory.FailPage(3, errors.New("boom"))
		_, _, err := f.server.handleSearchUsers(ctx, nil, SearchUsersInput{Query: "bluth"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrSearch)
	})
}

func TestServer_handleGetUser(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves user and its page", func(t *testing.T) {
		f := newFixture(t, false)
		_, out, err := f.server.handleGetUser(ctx, nil, UserIDInput{ID: 8})
		require.NoError(t, err)
		assert.Equal(t, "Lindsay", out.User.FirstName)
		assert.Equal(t, 2, out.Page)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture(t, false)
		_, _, err := f.server.handleGetUser(ctx, nil, UserIDInput{ID: 99})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, err.Error(), "User not found")
	})
}

func TestServer_handleUpdateUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	_, out, err := f.server.handleUpdateUser(ctx, nil, UpdateUserInput{ID: 2, FirstName: "Jan"})
	require.NoError(t, err)
	assert.Equal(t, "Jan", out.FirstName)
	assert.Equal(t, "Weaver", out.LastName)
	assert.Equal(t, "janet.weaver@reqres.in", out.Email)
	assert.Equal(t, []int{2}, f.directory.UpdateCalls())
}

func TestServer_handleUpdateUser_Failure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	f.directory.FailUpdate(errors.New("boom"))

	_, _, err := f.server.handleUpdateUser(ctx, nil, UpdateUserInput{ID: 2, Email: "j@example.com"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrWrite)

	// The edit context is abandoned, so the next update starts fresh.
	f.directory.FailUpdate(nil)
	_, out, err := f.server.handleUpdateUser(ctx, nil, UpdateUserInput{ID: 2, Email: "j@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "j@example.com", out.Email)
}

func TestServer_handleDeleteUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	_, _, err := f.server.handleListUsers(ctx, nil, ListUsersInput{Page: 1})
	require.NoError(t, err)

	_, del, err := f.server.handleDeleteUser(ctx, nil, UserIDInput{ID: 3})
	require.NoError(t, err)
	assert.True(t, del.Deleted)

	_, out, err := f.server.handleListUsers(ctx, nil, ListUsersInput{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 4, 5, 6}, userIDs(out.Users))

	// The remote still returns it; search must not bring it back.
	_, found, err := f.server.handleSearchUsers(ctx, nil, SearchUsersInput{Query: "emma"})
	require.NoError(t, err)
	assert.Empty(t, found.Users)
}

func TestServer_handleDeleteUser_Failure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	f.directory.FailDelete(errors.New("boom"))

	_, _, err := f.server.handleDeleteUser(ctx, nil, UserIDInput{ID: 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrWrite)
	assert.Contains(t, err.Error(), "Failed to delete user")
}

func TestServer_RequiresSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	_, _, err := f.server.handleListUsers(ctx, nil, ListUsersInput{})
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	_, _, err = f.server.handleDeleteUser(ctx, nil, UserIDInput{ID: 1})
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Empty(t, f.directory.DeleteCalls())

	f.login(t)
	_, out, err := f.server.handleListUsers(ctx, nil, ListUsersInput{})
	require.NoError(t, err)
	assert.Len(t, out.Users, 6)
}
