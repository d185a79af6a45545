package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/userdir-cli/internal/core/domain"
)

func TestUsersListCmd_DefaultPage(t *testing.T) {
	env := setupTestServices(t)
	env.login(t)

	out, err := executeCommand("users", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "Page 1 of 3")
	assert.Contains(t, out, "George Bluth")
	assert.Contains(t, out, "eve.holt@reqres.in")
	assert.NotContains(t, out, "Lindsay Ferguson")
}

func TestUsersListCmd_PageFlag(t *testing.T) {
	env := setupTestServices(t)
	env.login(t)

	out, err := executeCommand("users", "list", "--page", "2")

	require.NoError(t, err)
	assert.Contains(t, out, "Page 2 of 3")
	assert.Contains(t, out, "Lindsay Ferguson")
	assert.Equal(t, []int{2}, env.directory.ListCalls())
}

func TestUsersListCmd_ClampsPage(t *testing.T) {
	env := setupTestServices(t)
	env.login(t)

	out, err := executeCommand("users", "list", "-p", "99")

	require.NoError(t, err)
	assert.Contains(t, out, "Page 3 of 3")
}

func TestUsersListCmd_JSON(t *testing.T) {
	env := setupTestServices(t)
	env.login(t)

	out, err := executeCommand("users", "list", "--json")
	require.NoError(t, err)

	var got pageOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 3, got.TotalPages)
	require.Len(t, got.Users, 6)
	assert.Equal(t, "George", got.Users[0].FirstName)
}

func TestUsersListCmd_FetchError(t *testing.T) {
	env := setupTestServices(t)
	env.login(t)
	env.directory.FailPage(1, domain.ErrFetch)

	_, err := executeCommand("users", "list")

	require.Error(t, err)
	assert.Equal(t, "Failed to load users. Please try again.", ErrorMessage(err))
}

func TestUsersSearchCmd_AcrossPages(t *testing.T) {
	env := setupTestServices(t)
	env.login(t)

	out, err := executeCommand("users", "search", "bluth")

	require.NoError(t, err)
	assert.Contains(t, out, `Results: 3 users matching "bluth"`)
	assert.Contains(t, out, "George Bluth")
	assert.Contains(t, out, "Lucille Bluth")
	assert.Contains(t, out, "Oscar Bluth")
	assert.Equal(t, []int{1, 2, 3}, env.directory.ListCalls())
}

func TestUsersSearchCmd_TrimsAndIgnoresCase(t *testing.T) {
	env := setupTestServices(t)
	env.login(t)

	out, err := executeCommand("users", "search", "  GEORGE  ")

	require.NoError(t, err)
	assert.Contains(t, out, `Results: 2 users matching "GEORGE"`)
}

func TestUsersSearchCmd_EmptyQuery(t *testing.T) {
	env := setupTestServices(t)
	env.login(t)

	out, err := executeCommand("users", "search", "   ")

	require.NoError(t, err)
	assert.Contains(t, out, "Empty query.")
	assert.Empty(t, env.directory.ListCalls())
}

func TestUsersSearchCmd_NoMatches(t *testing.T) {
	env := setupTestServices(t)
	env.login(t)

	out, err := executeCommand("users", "search", "zzz")

	require.NoError(t, err)
	assert.Contains(t, out, "Results: 0 users")
	assert.Contains(t, out, "No users found.")
}

func TestUsersSearchCmd_JSON(t *testing.T) {
	env := setupTestServices(t)
	env.login(t)

	out, err := executeCommand("users", "search", "sitwell", "--json")
	require.NoError(t, err)

	var got pageOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "sitwell", got.Query)
	assert.Len(t, got.Users, 2)
}

func TestUsersShowCmd(t *testing.T) {
	env := setupTestServices(t)
	env.login(t)

	out, err := executeCommand("users", "show", "8")

	require.NoError(t, err)
	assert.Contains(t, out, "User 8")
	assert.Contains(t, out, "Lindsay Ferguson")
	assert.Contains(t, out, "Page:   2")
}

func TestUsersShowCmd_NotFound(t *testing.T) {
	env := setupTestServices(t)
	env.login(t)

	_, err := executeCommand("users", "show", "404")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "User not found", ErrorMessage(err))
}

func TestUsersShowCmd_InvalidID(t *testing.T) {
	env := setupTestServices(t)
	env.login(t)

	_, err := executeCommand("users", "show", "abc")

	assert.EqualError(t, err, `invalid user id "abc"`)
}

func TestUsersEditCmd_OverlaysFlags(t *testing.T) {
	env := setupTestServices(t)
	env.login(t)

	out, err := executeCommand("users", "edit", "2", "--first-name", "Jan", "--email", "jan@example.com")

	require.NoError(t, err)
	assert.Contains(t, out, "User updated successfully!")
	assert.Contains(t, out, "Jan Weaver")
	assert.Contains(t, out, "jan@example.com")
	assert.Equal(t, []int{2}, env.directory.UpdateCalls())
}

func TestUsersEditCmd_EmptyFieldRejectedLocally(t *testing.T) {
	env := setupTestServices(t)
	env.login(t)

	_, err := executeCommand("users", "edit", "2", "--last-name", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, env.directory.UpdateCalls())
}

func TestUsersEditCmd_RemoteFailure(t *testing.T) {
	env := setupTestServices(t)
	env.login(t)
	env.directory.FailUpdate(assert.AnError)

	_, err := executeCommand("users", "edit", "2", "--first-name", "Jan")

	require.Error(t, err)
	assert.Equal(t, "Failed to update user", ErrorMessage(err))
}

func TestUsersDeleteCmd(t *testing.T) {
	env := setupTestServices(t)
	env.login(t)

	out, err := executeCommand("users", "delete", "3", "4")

	require.NoError(t, err)
	assert.Contains(t, out, "Deleted user 3")
	assert.Contains(t, out, "Deleted user 4")
	assert.Contains(t, out, "User deleted successfully!")
	assert.Equal(t, []int{3, 4}, env.directory.DeleteCalls())
}

func TestUsersDeleteCmd_HiddenFromLaterListing(t *testing.T) {
	env := setupTestServices(t)
	env.login(t)

	_, err := executeCommand("users", "delete", "1")
	require.NoError(t, err)
	resetFlags(rootCmd)

	out, err := executeCommand("users", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "George Bluth")
}

func TestUsersDeleteCmd_Failure(t *testing.T) {
	env := setupTestServices(t)
	env.login(t)
	env.directory.FailDelete(assert.AnError)

	out, err := executeCommand("users", "delete", "3")

	require.Error(t, err)
	assert.NotContains(t, out, "Deleted user 3")
	assert.Equal(t, "Failed to delete user. Please try again.", ErrorMessage(err))
}

func TestUsersDeleteCmd_RequiresID(t *testing.T) {
	env := setupTestServices(t)
	env.login(t)

	_, err := executeCommand("users", "delete")

	assert.Error(t, err)
}
