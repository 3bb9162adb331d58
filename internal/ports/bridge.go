package ports

import (
	"context"

	"github.com/prenaissance/steam-desktop-authenticator/internal/domain"
)

// Bridge is the request/response boundary to the external authenticator
// backend. All cryptography, Steam session handling and network retry live
// on the far side; failures surface as *domain.BridgeError tagged by kind.
type Bridge interface {
	// GetAccounts returns the full stored-accounts snapshot.
	GetAccounts(ctx context.Context) (domain.AccountSnapshot, error)
	// Login submits credentials for a new (or re-authenticated) account.
	Login(ctx context.Context, req domain.LoginRequest) error
	// RemoveAccount deletes a stored account by username.
	RemoveAccount(ctx context.Context, username string) error
	// SetActiveAccount persists which account is active.
	SetActiveAccount(ctx context.Context, username string) error

	// GetCode returns the current one-time password for the active account,
	// or "" when there is no active account or no code yet.
	GetCode(ctx context.Context) (string, error)

	GetSessions(ctx context.Context) ([]domain.AuthSession, error)
	ApproveSession(ctx context.Context, approval domain.SessionApproval) error
	DenySession(ctx context.Context, clientID string) error

	GetConfirmations(ctx context.Context) ([]domain.Confirmation, error)
	AcceptConfirmation(ctx context.Context, ref domain.ConfirmationRef) error
	DenyConfirmation(ctx context.Context, ref domain.ConfirmationRef) error
	AcceptConfirmations(ctx context.Context, refs []domain.ConfirmationRef) error
	DenyConfirmations(ctx context.Context, refs []domain.ConfirmationRef) error
}
