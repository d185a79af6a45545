package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/userdir-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/userdir-cli/internal/core/domain"
	"github.com/custodia-labs/userdir-cli/internal/core/services"
)

type fixture struct {
	server    *Server
	directory *memory.Directory
	auth      *services.AuthService
}

func newFixture(t *testing.T, withAuth bool) *fixture {
	t.Helper()
	dir := memory.NewDirectory()
	notifier := services.NewNotifier(domain.NotificationSettings{})
	view := services.NewDirectoryService(dir, notifier, domain.DirectorySettings{
		TotalPages:     domain.DefaultTotalPages,
		SearchDebounce: time.Millisecond,
	})
	t.Cleanup(view.Close)
	editor := services.NewEditorService(dir, nil, notifier, view.TotalPages)

	f := &fixture{directory: dir}
	ports := &Ports{Directory: view, Editor: editor}
	if withAuth {
		f.auth = services.NewAuthService(dir, memory.NewSessionStore())
		ports.Auth = f.auth
	}
	server, err := NewServer(ports)
	require.NoError(t, err)
	f.server = server
	return f
}

func (f *fixture) login(t *testing.T) {
	t.Helper()
	_, err := f.auth.Login(context.Background(), domain.Credentials{Email: "eve.holt@reqres.in", Password: "cityslicka"})
	require.NoError(t, err)
}

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func userIDs(users []UserOutput) []int {
	ids := make([]int, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}
