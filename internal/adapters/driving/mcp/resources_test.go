package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractUserID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected int
	}{
		{name: "valid user URI", uri: "userdir://users/7", expected: 7},
		{name: "invalid prefix", uri: "file://users/7", expected: 0},
		{name: "not a number", uri: "userdir://users/abc", expected: 0},
		{name: "zero id", uri: "userdir://users/0", expected: 0},
		{name: "empty URI", uri: "", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractUserID(tt.uri))
		})
	}
}

func TestServer_handleUsersResource(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	_, _, err := f.server.handleListUsers(ctx, nil, ListUsersInput{Page: 2})
	require.NoError(t, err)

	result, err := f.server.handleUsersResource(ctx, readRequest("userdir://users"))
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)

	var info viewInfo
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &info))
	assert.Equal(t, "paginated", string(info.Mode))
	assert.Equal(t, 2, info.Page)
	assert.Equal(t, []int{7, 8, 9, 10, 11, 12}, userIDs(info.Users))
}

func TestServer_handleUserResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns user", func(t *testing.T) {
		f := newFixture(t, false)
		result, err := f.server.handleUserResource(ctx, readRequest("userdir://users/4"))
		require.NoError(t, err)

		var user UserOutput
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &user))
		assert.Equal(t, "Eve", user.FirstName)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		f := newFixture(t, false)
		_, err := f.server.handleUserResource(ctx, readRequest("userdir://users/99"))
		assert.Error(t, err)
	})

	t.Run("malformed URI is not found", func(t *testing.T) {
		f := newFixture(t, false)
		_, err := f.server.handleUserResource(ctx, readRequest("userdir://users/x"))
		assert.Error(t, err)
		assert.Empty(t, f.directory.ListCalls())
	})
}
