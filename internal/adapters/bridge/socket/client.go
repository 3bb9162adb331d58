package socket

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/prenaissance/steam-desktop-authenticator/internal/domain"
	"github.com/prenaissance/steam-desktop-authenticator/internal/ports"
)

var _ ports.Bridge = (*Client)(nil)

// DefaultTimeout bounds a single exchange when the caller's context carries
// no deadline. Backend calls that reach Steam can be slow; local-only calls
// are instant.
const DefaultTimeout = 30 * time.Second

// Client talks to the authenticator backend over a local stream socket, one
// connection per call. Transport failures surface as KindNetworkFailure;
// malformed responses as KindDeserializationError; everything else is the
// backend's own tagged error.
type Client struct {
	network string
	address string
	timeout time.Duration
}

// New returns a client for the backend listening at address on the given
// network ("unix" in production; tests may use "tcp").
func New(network, address string) *Client {
	return &Client{network: network, address: address, timeout: DefaultTimeout}
}

func (c *Client) call(ctx context.Context, command string, payload any, result any) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, c.network, c.address)
	if err != nil {
		return networkFailure(command, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return networkFailure(command, err)
		}
	}

	req := request{Command: command}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%s: encode payload: %w", command, err)
		}
		req.Payload = raw
	}

	log.Debug().Str("command", command).Msg("dispatching bridge call")

	if err := writeMessage(conn, req); err != nil {
		return networkFailure(command, err)
	}

	var resp response
	if err := readMessage(conn, &resp); err != nil {
		return networkFailure(command, err)
	}

	if resp.Error != nil {
		bridgeErr := resp.Error.toDomain()
		log.Debug().Str("command", command).Str("kind", string(bridgeErr.Kind)).Msg("bridge call failed")
		return fmt.Errorf("%s: %w", command, bridgeErr)
	}

	if result != nil {
		if err := json.Unmarshal(resp.Result, result); err != nil {
			return fmt.Errorf("%s: %w", command, &domain.BridgeError{
				Kind:    domain.KindDeserializationError,
				Message: err.Error(),
			})
		}
	}
	return nil
}

func networkFailure(command string, err error) error {
	return fmt.Errorf("%s: %w", command, &domain.BridgeError{
		Kind:    domain.KindNetworkFailure,
		Message: err.Error(),
	})
}

func (c *Client) GetAccounts(ctx context.Context) (domain.AccountSnapshot, error) {
	var snapshot wireSnapshot
	if err := c.call(ctx, cmdGetAccounts, nil, &snapshot); err != nil {
		return domain.AccountSnapshot{}, err
	}
	return snapshot.toDomain(), nil
}

func (c *Client) Login(ctx context.Context, req domain.LoginRequest) error {
	payload := wireLoginRequest{
		Username:       req.Username,
		Password:       req.Password,
		SharedSecret:   req.SharedSecret,
		IdentitySecret: req.IdentitySecret,
	}
	return c.call(ctx, cmdLogin, payload, nil)
}

func (c *Client) RemoveAccount(ctx context.Context, username string) error {
	return c.call(ctx, cmdRemoveAccount, wireUsername{Username: username}, nil)
}

func (c *Client) SetActiveAccount(ctx context.Context, username string) error {
	return c.call(ctx, cmdSetActiveAccount, wireUsername{Username: username}, nil)
}

func (c *Client) GetCode(ctx context.Context) (string, error) {
	var code *string
	if err := c.call(ctx, cmdGetCode, nil, &code); err != nil {
		return "", err
	}
	if code == nil {
		return "", nil
	}
	return *code, nil
}

func (c *Client) GetSessions(ctx context.Context) ([]domain.AuthSession, error) {
	var wireSessions []wireSession
	if err := c.call(ctx, cmdGetSessions, nil, &wireSessions); err != nil {
		return nil, err
	}
	sessions := make([]domain.AuthSession, len(wireSessions))
	for i, session := range wireSessions {
		sessions[i] = session.toDomain()
	}
	return sessions, nil
}

func (c *Client) ApproveSession(ctx context.Context, approval domain.SessionApproval) error {
	payload := wireApproval{
		ClientID:    approval.ClientID,
		Persistence: string(approval.Persistence),
	}
	return c.call(ctx, cmdApproveSession, payload, nil)
}

func (c *Client) DenySession(ctx context.Context, clientID string) error {
	return c.call(ctx, cmdDenySession, wireClientID{ClientID: clientID}, nil)
}

func (c *Client) GetConfirmations(ctx context.Context) ([]domain.Confirmation, error) {
	var wireConfirmations []wireConfirmation
	if err := c.call(ctx, cmdGetConfirmations, nil, &wireConfirmations); err != nil {
		return nil, err
	}
	confirmations := make([]domain.Confirmation, len(wireConfirmations))
	for i, confirmation := range wireConfirmations {
		confirmations[i] = confirmation.toDomain()
	}
	return confirmations, nil
}

func (c *Client) AcceptConfirmation(ctx context.Context, ref domain.ConfirmationRef) error {
	return c.call(ctx, cmdAcceptConfirmation, wireConfirmationRef{ID: ref.ID, Nonce: ref.Nonce}, nil)
}

func (c *Client) DenyConfirmation(ctx context.Context, ref domain.ConfirmationRef) error {
	return c.call(ctx, cmdDenyConfirmation, wireConfirmationRef{ID: ref.ID, Nonce: ref.Nonce}, nil)
}

func (c *Client) AcceptConfirmations(ctx context.Context, refs []domain.ConfirmationRef) error {
	return c.call(ctx, cmdAcceptConfirmations, toWireRefs(refs), nil)
}

func (c *Client) DenyConfirmations(ctx context.Context, refs []domain.ConfirmationRef) error {
	return c.call(ctx, cmdDenyConfirmations, toWireRefs(refs), nil)
}
