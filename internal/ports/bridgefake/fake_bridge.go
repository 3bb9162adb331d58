package bridgefake

import (
	"context"
	"sync"

	"github.com/prenaissance/steam-desktop-authenticator/internal/domain"
	"github.com/prenaissance/steam-desktop-authenticator/internal/ports"
)

var _ ports.Bridge = (*FakeBridge)(nil)

// FakeBridge is an in-memory stand-in for the external authenticator backend.
// It keeps real backend-side state (stored accounts, pending sessions and
// confirmations) so tests can observe state transitions through re-fetches,
// and exposes per-call hooks for error injection plus call counters for
// asserting how often the boundary was crossed.
type FakeBridge struct {
	mu sync.Mutex

	Accounts      []domain.Account
	ActiveAccount string
	Code          string
	Sessions      []domain.AuthSession
	Confirmations []domain.Confirmation

	Calls map[string]int

	// Optional hooks; a non-nil hook runs instead of the default behavior.
	GetAccountsFn      func(ctx context.Context) (domain.AccountSnapshot, error)
	LoginFn            func(ctx context.Context, req domain.LoginRequest) error
	RemoveAccountFn    func(ctx context.Context, username string) error
	SetActiveFn        func(ctx context.Context, username string) error
	ApproveSessionFn   func(ctx context.Context, approval domain.SessionApproval) error
	DenySessionFn      func(ctx context.Context, clientID string) error
	AcceptFn           func(ctx context.Context, ref domain.ConfirmationRef) error
	DenyFn             func(ctx context.Context, ref domain.ConfirmationRef) error
	BulkAcceptFn       func(ctx context.Context, refs []domain.ConfirmationRef) error
	BulkDenyFn         func(ctx context.Context, refs []domain.ConfirmationRef) error
	GetSessionsFn      func(ctx context.Context) ([]domain.AuthSession, error)
	GetConfirmationsFn func(ctx context.Context) ([]domain.Confirmation, error)
	GetCodeFn          func(ctx context.Context) (string, error)
}

func New() *FakeBridge {
	return &FakeBridge{Calls: make(map[string]int)}
}

func (b *FakeBridge) record(call string) {
	b.mu.Lock()
	b.Calls[call]++
	b.mu.Unlock()
}

// CallCount returns how many times the named bridge call was made.
func (b *FakeBridge) CallCount(call string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.Calls[call]
}

func (b *FakeBridge) GetAccounts(ctx context.Context) (domain.AccountSnapshot, error) {
	b.record("GetAccounts")
	if b.GetAccountsFn != nil {
		return b.GetAccountsFn(ctx)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	accounts := make([]domain.Account, len(b.Accounts))
	copy(accounts, b.Accounts)
	return domain.AccountSnapshot{Accounts: accounts, ActiveAccountName: b.ActiveAccount}, nil
}

func (b *FakeBridge) Login(ctx context.Context, req domain.LoginRequest) error {
	b.record("Login")
	if b.LoginFn != nil {
		return b.LoginFn(ctx, req)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, account := range b.Accounts {
		if account.Username == req.Username {
			return nil
		}
	}
	b.Accounts = append(b.Accounts, domain.Account{Username: req.Username})
	if b.ActiveAccount == "" {
		b.ActiveAccount = req.Username
	}
	return nil
}

func (b *FakeBridge) RemoveAccount(ctx context.Context, username string) error {
	b.record("RemoveAccount")
	if b.RemoveAccountFn != nil {
		return b.RemoveAccountFn(ctx, username)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, account := range b.Accounts {
		if account.Username == username {
			b.Accounts = append(b.Accounts[:i], b.Accounts[i+1:]...)
			break
		}
	}
	if b.ActiveAccount == username {
		b.ActiveAccount = ""
		if len(b.Accounts) > 0 {
			b.ActiveAccount = b.Accounts[0].Username
		}
	}
	return nil
}

func (b *FakeBridge) SetActiveAccount(ctx context.Context, username string) error {
	b.record("SetActiveAccount")
	if b.SetActiveFn != nil {
		return b.SetActiveFn(ctx, username)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, account := range b.Accounts {
		if account.Username == username {
			b.ActiveAccount = username
			return nil
		}
	}
	return &domain.BridgeError{Kind: domain.KindUnknown, Message: "no account named " + username}
}

func (b *FakeBridge) GetCode(ctx context.Context) (string, error) {
	b.record("GetCode")
	if b.GetCodeFn != nil {
		return b.GetCodeFn(ctx)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ActiveAccount == "" {
		return "", nil
	}
	return b.Code, nil
}

func (b *FakeBridge) GetSessions(ctx context.Context) ([]domain.AuthSession, error) {
	b.record("GetSessions")
	if b.GetSessionsFn != nil {
		return b.GetSessionsFn(ctx)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	sessions := make([]domain.AuthSession, len(b.Sessions))
	copy(sessions, b.Sessions)
	return sessions, nil
}

func (b *FakeBridge) ApproveSession(ctx context.Context, approval domain.SessionApproval) error {
	b.record("ApproveSession")
	if b.ApproveSessionFn != nil {
		return b.ApproveSessionFn(ctx, approval)
	}
	return b.dropSession(approval.ClientID)
}

func (b *FakeBridge) DenySession(ctx context.Context, clientID string) error {
	b.record("DenySession")
	if b.DenySessionFn != nil {
		return b.DenySessionFn(ctx, clientID)
	}
	return b.dropSession(clientID)
}

func (b *FakeBridge) dropSession(clientID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, session := range b.Sessions {
		if session.ClientID == clientID {
			b.Sessions = append(b.Sessions[:i], b.Sessions[i+1:]...)
			return nil
		}
	}
	return &domain.BridgeError{Kind: domain.KindExpired}
}

func (b *FakeBridge) GetConfirmations(ctx context.Context) ([]domain.Confirmation, error) {
	b.record("GetConfirmations")
	if b.GetConfirmationsFn != nil {
		return b.GetConfirmationsFn(ctx)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	confirmations := make([]domain.Confirmation, len(b.Confirmations))
	copy(confirmations, b.Confirmations)
	return confirmations, nil
}

func (b *FakeBridge) AcceptConfirmation(ctx context.Context, ref domain.ConfirmationRef) error {
	b.record("AcceptConfirmation")
	if b.AcceptFn != nil {
		return b.AcceptFn(ctx, ref)
	}
	return b.dropConfirmations([]domain.ConfirmationRef{ref})
}

func (b *FakeBridge) DenyConfirmation(ctx context.Context, ref domain.ConfirmationRef) error {
	b.record("DenyConfirmation")
	if b.DenyFn != nil {
		return b.DenyFn(ctx, ref)
	}
	return b.dropConfirmations([]domain.ConfirmationRef{ref})
}

func (b *FakeBridge) AcceptConfirmations(ctx context.Context, refs []domain.ConfirmationRef) error {
	b.record("AcceptConfirmations")
	if b.BulkAcceptFn != nil {
		return b.BulkAcceptFn(ctx, refs)
	}
	return b.dropConfirmations(refs)
}

func (b *FakeBridge) DenyConfirmations(ctx context.Context, refs []domain.ConfirmationRef) error {
	b.record("DenyConfirmations")
	if b.BulkDenyFn != nil {
		return b.BulkDenyFn(ctx, refs)
	}
	return b.dropConfirmations(refs)
}

func (b *FakeBridge) dropConfirmations(refs []domain.ConfirmationRef) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ref := range refs {
		found := false
		for i, confirmation := range b.Confirmations {
			if confirmation.ID == ref.ID {
				b.Confirmations = append(b.Confirmations[:i], b.Confirmations[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			return &domain.BridgeError{Kind: domain.KindAPIError, Message: "no confirmation with id " + ref.ID}
		}
	}
	return nil
}
