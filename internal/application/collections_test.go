package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prenaissance/steam-desktop-authenticator/internal/domain"
	"github.com/prenaissance/steam-desktop-authenticator/internal/ports/bridgefake"
)

func TestSessionCacheServesUntilInvalidated(t *testing.T) {
	bridge := bridgefake.New()
	bridge.Sessions = []domain.AuthSession{{ClientID: "1"}}
	cache := NewSessionCache(bridge)

	_, err := cache.Get(context.Background(), false)
	require.NoError(t, err)
	_, err = cache.Get(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, bridge.CallCount("GetSessions"))

	cache.Invalidate()
	_, err = cache.Get(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, bridge.CallCount("GetSessions"))
}

func TestSessionCacheForceAlwaysFetches(t *testing.T) {
	bridge := bridgefake.New()
	cache := NewSessionCache(bridge)

	_, err := cache.Get(context.Background(), false)
	require.NoError(t, err)
	_, err = cache.Get(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 2, bridge.CallCount("GetSessions"))
}

func TestConfirmationCacheFetchFailureKeepsCacheInvalid(t *testing.T) {
	bridge := bridgefake.New()
	bridge.GetConfirmationsFn = func(ctx context.Context) ([]domain.Confirmation, error) {
		return nil, &domain.BridgeError{Kind: domain.KindUnauthorized}
	}
	cache := NewConfirmationCache(bridge)

	_, err := cache.Get(context.Background(), false)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))

	bridge.GetConfirmationsFn = nil
	bridge.Confirmations = []domain.Confirmation{{ID: "A"}}
	confirmations, err := cache.Get(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, confirmations, 1, "cache retries after a failed fetch")
}

func TestSelectionOrderAndClear(t *testing.T) {
	selection := NewSelection()
	selection.Add(domain.ConfirmationRef{ID: "B", Nonce: "b"})
	selection.Add(domain.ConfirmationRef{ID: "A", Nonce: "a"})
	selection.Add(domain.ConfirmationRef{ID: "B", Nonce: "b2"})

	refs := selection.Refs()
	require.Len(t, refs, 2)
	assert.Equal(t, "B", refs[0].ID)
	assert.Equal(t, "b2", refs[0].Nonce, "re-adding updates the nonce in place")
	assert.Equal(t, "A", refs[1].ID)

	selection.Remove("B")
	assert.False(t, selection.Has("B"))
	assert.Equal(t, 1, selection.Len())

	selection.Clear()
	assert.Zero(t, selection.Len())
	assert.Empty(t, selection.Refs())
}
