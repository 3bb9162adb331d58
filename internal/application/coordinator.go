package application

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/prenaissance/steam-desktop-authenticator/internal/domain"
	"github.com/prenaissance/steam-desktop-authenticator/internal/ports"
)

// MutationKind names one backend write operation for in-flight tracking.
type MutationKind string

const (
	MutationSwitchAccount      MutationKind = "switch-account"
	MutationAddAccount         MutationKind = "add-account"
	MutationRemoveAccount      MutationKind = "remove-account"
	MutationApproveSession     MutationKind = "approve-session"
	MutationDenySession        MutationKind = "deny-session"
	MutationAcceptConfirmation MutationKind = "accept-confirmation"
	MutationDenyConfirmation   MutationKind = "deny-confirmation"
	MutationBulkAccept         MutationKind = "bulk-accept"
	MutationBulkDeny           MutationKind = "bulk-deny"
)

type mutationKey struct {
	kind   MutationKind
	target string
}

// Coordinator wraps every backend write with at-most-one-in-flight-per-key
// semantics and targeted cache invalidation. A second request for a key that
// is still outstanding is rejected locally with domain.ErrDuplicateRequest and
// never reaches the backend. Failed mutations leave every cache untouched;
// retry is a user decision, which is safe precisely because of the dedup.
type Coordinator struct {
	bridge        ports.Bridge
	registry      *Registry
	sessions      *SessionCache
	confirmations *ConfirmationCache
	selection     *Selection

	mu       sync.Mutex
	inflight map[mutationKey]struct{}
}

func NewCoordinator(bridge ports.Bridge, registry *Registry, sessions *SessionCache, confirmations *ConfirmationCache, selection *Selection) *Coordinator {
	return &Coordinator{
		bridge:        bridge,
		registry:      registry,
		sessions:      sessions,
		confirmations: confirmations,
		selection:     selection,
		inflight:      make(map[mutationKey]struct{}),
	}
}

func (c *Coordinator) begin(kind MutationKind, target string) (func(), error) {
	key := mutationKey{kind: kind, target: target}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.inflight[key]; ok {
		return nil, fmt.Errorf("%s %q: %w", kind, target, domain.ErrDuplicateRequest)
	}
	c.inflight[key] = struct{}{}
	return func() {
		c.mu.Lock()
		delete(c.inflight, key)
		c.mu.Unlock()
	}, nil
}

// SwitchAccount routes through the registry, which owns the snapshot cache.
// Session and confirmation caches are untouched: they track the backend's
// notion of the active account, which these commands re-fetch anyway.
func (c *Coordinator) SwitchAccount(ctx context.Context, username string) error {
	release, err := c.begin(MutationSwitchAccount, username)
	if err != nil {
		return err
	}
	defer release()
	return c.registry.SetActive(ctx, username)
}

func (c *Coordinator) AddAccount(ctx context.Context, req domain.LoginRequest) error {
	release, err := c.begin(MutationAddAccount, req.Username)
	if err != nil {
		return err
	}
	defer release()
	return c.registry.Add(ctx, req)
}

func (c *Coordinator) RemoveAccount(ctx context.Context, username string) error {
	release, err := c.begin(MutationRemoveAccount, username)
	if err != nil {
		return err
	}
	defer release()
	return c.registry.Remove(ctx, username)
}

func (c *Coordinator) ApproveSession(ctx context.Context, approval domain.SessionApproval) error {
	release, err := c.begin(MutationApproveSession, approval.ClientID)
	if err != nil {
		return err
	}
	defer release()
	if err := c.bridge.ApproveSession(ctx, approval); err != nil {
		return err
	}
	c.sessions.Invalidate()
	return nil
}

func (c *Coordinator) DenySession(ctx context.Context, clientID string) error {
	release, err := c.begin(MutationDenySession, clientID)
	if err != nil {
		return err
	}
	defer release()
	if err := c.bridge.DenySession(ctx, clientID); err != nil {
		return err
	}
	c.sessions.Invalidate()
	return nil
}

func (c *Coordinator) AcceptConfirmation(ctx context.Context, ref domain.ConfirmationRef) error {
	release, err := c.begin(MutationAcceptConfirmation, ref.ID)
	if err != nil {
		return err
	}
	defer release()
	if err := c.bridge.AcceptConfirmation(ctx, ref); err != nil {
		return err
	}
	c.confirmations.Invalidate()
	c.selection.Remove(ref.ID)
	return nil
}

func (c *Coordinator) DenyConfirmation(ctx context.Context, ref domain.ConfirmationRef) error {
	release, err := c.begin(MutationDenyConfirmation, ref.ID)
	if err != nil {
		return err
	}
	defer release()
	if err := c.bridge.DenyConfirmation(ctx, ref); err != nil {
		return err
	}
	c.confirmations.Invalidate()
	c.selection.Remove(ref.ID)
	return nil
}

// AcceptConfirmations is atomic from the caller's perspective: either the
// backend processed the whole batch (cache invalidated, selection cleared)
// or the batch counts as failed and the selection survives for retry.
func (c *Coordinator) AcceptConfirmations(ctx context.Context, refs []domain.ConfirmationRef) error {
	return c.bulk(ctx, MutationBulkAccept, refs, c.bridge.AcceptConfirmations)
}

func (c *Coordinator) DenyConfirmations(ctx context.Context, refs []domain.ConfirmationRef) error {
	return c.bulk(ctx, MutationBulkDeny, refs, c.bridge.DenyConfirmations)
}

func (c *Coordinator) bulk(ctx context.Context, kind MutationKind, refs []domain.ConfirmationRef, call func(context.Context, []domain.ConfirmationRef) error) error {
	release, err := c.begin(kind, bulkTarget(refs))
	if err != nil {
		return err
	}
	defer release()
	if err := call(ctx, refs); err != nil {
		return err
	}
	c.confirmations.Invalidate()
	c.selection.Clear()
	return nil
}

func bulkTarget(refs []domain.ConfirmationRef) string {
	ids := make([]string, len(refs))
	for i, ref := range refs {
		ids[i] = ref.ID
	}
	return strings.Join(ids, ",")
}
