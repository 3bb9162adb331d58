package application

import (
	"context"
	"sync"

	"github.com/prenaissance/steam-desktop-authenticator/internal/domain"
	"github.com/prenaissance/steam-desktop-authenticator/internal/ports"
)

type fetchState int

const (
	fetchUninitialized fetchState = iota
	fetchLoading
	fetchReady
)

// FetchError wraps a failed account snapshot fetch. The previous snapshot,
// if any, is retained.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return "fetch accounts: " + e.Err.Error() }
func (e *FetchError) Unwrap() error { return e.Err }

// SwitchError wraps a backend rejection of a set-active request. Local state
// is left unchanged.
type SwitchError struct {
	Username string
	Err      error
}

func (e *SwitchError) Error() string {
	return "switch to account " + e.Username + ": " + e.Err.Error()
}
func (e *SwitchError) Unwrap() error { return e.Err }

// flight is one in-progress initial fetch shared by every coalesced caller.
type flight struct {
	done     chan struct{}
	snapshot domain.AccountSnapshot
	err      error
}

// Registry is the process-wide source of truth for which accounts exist and
// which is active. It owns the cached snapshot exclusively: every mutation
// goes through the backend first and the cache is replaced wholesale, so
// readers see either the old or the new snapshot, never a partial mix.
type Registry struct {
	bridge ports.Bridge

	mu       sync.Mutex
	state    fetchState
	snapshot domain.AccountSnapshot
	inflight *flight
}

func NewRegistry(bridge ports.Bridge) *Registry {
	return &Registry{bridge: bridge}
}

// Fetch returns the account snapshot. Without force, the first call performs
// the backend fetch and concurrent callers coalesce onto it; once a fetch has
// completed for this process lifetime the cache is served directly. force
// bypasses the latch and always hits the backend. A failed fetch never erases
// an already-cached snapshot.
func (r *Registry) Fetch(ctx context.Context, force bool) (domain.AccountSnapshot, error) {
	if force {
		return r.refresh(ctx)
	}

	r.mu.Lock()
	if r.state == fetchReady {
		snapshot := r.snapshot.Clone()
		r.mu.Unlock()
		return snapshot, nil
	}
	if r.inflight != nil {
		f := r.inflight
		r.mu.Unlock()
		select {
		case <-f.done:
			if f.err != nil {
				return domain.AccountSnapshot{}, f.err
			}
			return f.snapshot.Clone(), nil
		case <-ctx.Done():
			return domain.AccountSnapshot{}, ctx.Err()
		}
	}

	f := &flight{done: make(chan struct{})}
	r.inflight = f
	r.state = fetchLoading
	r.mu.Unlock()

	f.snapshot, f.err = r.refresh(ctx)
	close(f.done)

	r.mu.Lock()
	r.inflight = nil
	if r.state == fetchLoading {
		// refresh marks fetchReady on success; reopen the latch on failure
		// so the next caller retries.
		r.state = fetchUninitialized
	}
	r.mu.Unlock()

	return f.snapshot, f.err
}

func (r *Registry) refresh(ctx context.Context) (domain.AccountSnapshot, error) {
	snapshot, err := r.bridge.GetAccounts(ctx)
	if err != nil {
		return domain.AccountSnapshot{}, &FetchError{Err: err}
	}

	r.mu.Lock()
	r.snapshot = snapshot.Clone()
	r.state = fetchReady
	r.mu.Unlock()

	return snapshot, nil
}

// Snapshot returns the cached snapshot without touching the backend. ok is
// false until an initial fetch has completed.
func (r *Registry) Snapshot() (domain.AccountSnapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != fetchReady {
		return domain.AccountSnapshot{}, false
	}
	return r.snapshot.Clone(), true
}

// ActiveAccount derives the active account from the cached snapshot. A stale
// active-account name yields ok=false, never an error.
func (r *Registry) ActiveAccount() (domain.Account, bool) {
	snapshot, ok := r.Snapshot()
	if !ok {
		return domain.Account{}, false
	}
	return snapshot.ActiveAccount()
}

// SetActive asks the backend to persist the new selection, then moves the
// local active-name pointer. The account list is not refetched: switching
// does not change which accounts exist. Membership is not pre-validated;
// rejection of an unknown username is the backend's call and surfaces as a
// *SwitchError.
func (r *Registry) SetActive(ctx context.Context, username string) error {
	if err := r.bridge.SetActiveAccount(ctx, username); err != nil {
		return &SwitchError{Username: username, Err: err}
	}

	r.mu.Lock()
	r.snapshot.ActiveAccountName = username
	r.mu.Unlock()
	return nil
}

// Add submits credentials through the backend login call and then forces a
// full refetch so the new account (and any backend-side profile metadata)
// appears before Add returns. Validation failures never reach the bridge.
func (r *Registry) Add(ctx context.Context, req domain.LoginRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if err := r.bridge.Login(ctx, req); err != nil {
		return err
	}
	_, err := r.Fetch(ctx, true)
	return err
}

// Remove deletes the account on the backend and forces a refetch. If the
// removed account was active, the backend's post-removal choice of active
// account is authoritative; no local fallback is guessed.
func (r *Registry) Remove(ctx context.Context, username string) error {
	if err := r.bridge.RemoveAccount(ctx, username); err != nil {
		return err
	}
	_, err := r.Fetch(ctx, true)
	return err
}
