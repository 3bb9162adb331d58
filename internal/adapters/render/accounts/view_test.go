package accounts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prenaissance/steam-desktop-authenticator/internal/domain"
)

func TestRenderMarksActiveAccount(t *testing.T) {
	output, err := Render(domain.AccountSnapshot{
		Accounts: []domain.Account{
			{Username: "alice"},
			{Username: "bob"},
		},
		ActiveAccountName: "bob",
	}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "accounts: 2")
	assert.Contains(t, output, "alice")
	assert.Contains(t, output, "* ")

	// the marker sits on bob's line, not alice's
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, "alice") {
			assert.NotContains(t, line, "*")
		}
	}
}

func TestRenderEmptyRegistry(t *testing.T) {
	output, err := Render(domain.AccountSnapshot{}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "accounts: 0")
	assert.Contains(t, output, "No accounts registered")
}

func TestRenderAvatarsOptIn(t *testing.T) {
	snapshot := domain.AccountSnapshot{
		Accounts:          []domain.Account{{Username: "alice", AvatarURL: "https://avatars.example/a.jpg"}},
		ActiveAccountName: "alice",
	}

	plain, err := Render(snapshot, RenderOptions{})
	require.NoError(t, err)
	assert.NotContains(t, plain, "avatars.example")

	withAvatars, err := Render(snapshot, RenderOptions{ShowAvatars: true})
	require.NoError(t, err)
	assert.Contains(t, withAvatars, "avatars.example")
}
