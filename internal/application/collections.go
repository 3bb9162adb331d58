package application

import (
	"context"
	"sync"

	"github.com/prenaissance/steam-desktop-authenticator/internal/domain"
	"github.com/prenaissance/steam-desktop-authenticator/internal/ports"
)

// SessionCache is a fetch-through cache over the backend's pending sign-in
// list. Independent of the account registry cache: approving a sign-in must
// not force an account refetch.
type SessionCache struct {
	bridge ports.Bridge

	mu       sync.Mutex
	sessions []domain.AuthSession
	valid    bool
}

func NewSessionCache(bridge ports.Bridge) *SessionCache {
	return &SessionCache{bridge: bridge}
}

func (c *SessionCache) Get(ctx context.Context, force bool) ([]domain.AuthSession, error) {
	c.mu.Lock()
	if c.valid && !force {
		sessions := make([]domain.AuthSession, len(c.sessions))
		copy(sessions, c.sessions)
		c.mu.Unlock()
		return sessions, nil
	}
	c.mu.Unlock()

	sessions, err := c.bridge.GetSessions(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.sessions = sessions
	c.valid = true
	c.mu.Unlock()
	return sessions, nil
}

func (c *SessionCache) Invalidate() {
	c.mu.Lock()
	c.sessions = nil
	c.valid = false
	c.mu.Unlock()
}

// ConfirmationCache is the same fetch-through cache for pending trade/market
// confirmations.
type ConfirmationCache struct {
	bridge ports.Bridge

	mu            sync.Mutex
	confirmations []domain.Confirmation
	valid         bool
}

func NewConfirmationCache(bridge ports.Bridge) *ConfirmationCache {
	return &ConfirmationCache{bridge: bridge}
}

func (c *ConfirmationCache) Get(ctx context.Context, force bool) ([]domain.Confirmation, error) {
	c.mu.Lock()
	if c.valid && !force {
		confirmations := make([]domain.Confirmation, len(c.confirmations))
		copy(confirmations, c.confirmations)
		c.mu.Unlock()
		return confirmations, nil
	}
	c.mu.Unlock()

	confirmations, err := c.bridge.GetConfirmations(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.confirmations = confirmations
	c.valid = true
	c.mu.Unlock()
	return confirmations, nil
}

func (c *ConfirmationCache) Invalidate() {
	c.mu.Lock()
	c.confirmations = nil
	c.valid = false
	c.mu.Unlock()
}
