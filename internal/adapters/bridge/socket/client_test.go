package socket

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prenaissance/steam-desktop-authenticator/internal/domain"
)

// handler produces the response envelope for one scripted command.
type handler func(payload json.RawMessage) response

// startBackend runs a scripted backend on a loopback listener, serving one
// request per connection the way the real backend does.
func startBackend(t *testing.T, handlers map[string]handler) *Client {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = listener.Close() })

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				var req request
				if err := readMessage(conn, &req); err != nil {
					return
				}
				h, ok := handlers[req.Command]
				if !ok {
					_ = writeMessage(conn, response{Error: &wireError{Type: "unknown", Message: "no such command"}})
					return
				}
				_ = writeMessage(conn, h(req.Payload))
			}(conn)
		}
	}()

	return New("tcp", listener.Addr().String())
}

func resultResponse(t *testing.T, v any) response {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return response{Result: raw}
}

func TestGetAccountsRoundTrip(t *testing.T) {
	client := startBackend(t, map[string]handler{
		cmdGetAccounts: func(json.RawMessage) response {
			return resultResponse(t, wireSnapshot{
				Accounts: []wireAccount{
					{Username: "alice", AvatarURL: "https://avatars.example/alice.jpg"},
					{Username: "bob"},
				},
				ActiveAccountName: "alice",
			})
		},
	})

	snapshot, err := client.GetAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot.Accounts, 2)
	assert.Equal(t, "alice", snapshot.ActiveAccountName)
	assert.Equal(t, "https://avatars.example/alice.jpg", snapshot.Accounts[0].AvatarURL)

	active, ok := snapshot.ActiveAccount()
	require.True(t, ok)
	assert.Equal(t, "alice", active.Username)
}

func TestLoginSendsCamelCasePayload(t *testing.T) {
	var got map[string]string
	client := startBackend(t, map[string]handler{
		cmdLogin: func(payload json.RawMessage) response {
			if err := json.Unmarshal(payload, &got); err != nil {
				return response{Error: &wireError{Type: "deserialization-error"}}
			}
			return resultResponse(t, struct{}{})
		},
	})

	err := client.Login(context.Background(), domain.LoginRequest{
		Username:       "alice",
		Password:       "hunter2",
		SharedSecret:   "AAAAAAAAAAAAAAAAAAAAAAAAAAA=",
		IdentitySecret: "AAAAAAAAAAAAAAAAAAAAAAAAAAA=",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", got["username"])
	assert.Contains(t, got, "sharedSecret")
	assert.Contains(t, got, "identitySecret")
}

func TestBackendErrorMapsToTaggedKind(t *testing.T) {
	tests := []struct {
		name     string
		wireType string
		want     domain.ErrorKind
	}{
		{name: "wrong credentials", wireType: "wrong-credentials", want: domain.KindWrongCredentials},
		{name: "expired", wireType: "expired", want: domain.KindExpired},
		{name: "duplicate request", wireType: "duplicate-request", want: domain.KindDuplicateRequest},
		{name: "api error", wireType: "api-error", want: domain.KindAPIError},
		{name: "unrecognized tag degrades", wireType: "ice-cream-machine-broken", want: domain.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := startBackend(t, map[string]handler{
				cmdApproveSession: func(json.RawMessage) response {
					return response{Error: &wireError{Type: tt.wireType, Message: "nope"}}
				},
			})

			err := client.ApproveSession(context.Background(), domain.SessionApproval{ClientID: "1"})
			require.Error(t, err)
			assert.Equal(t, tt.want, domain.KindOf(err))
		})
	}
}

func TestUnreachableBackendIsNetworkFailure(t *testing.T) {
	client := New("tcp", "127.0.0.1:1") // nothing listens here

	_, err := client.GetAccounts(context.Background())
	require.Error(t, err)
	assert.Equal(t, domain.KindNetworkFailure, domain.KindOf(err))
}

func TestGetCodeNullMeansNoCode(t *testing.T) {
	client := startBackend(t, map[string]handler{
		cmdGetCode: func(json.RawMessage) response {
			return response{Result: json.RawMessage("null")}
		},
	})

	code, err := client.GetCode(context.Background())
	require.NoError(t, err)
	assert.Empty(t, code)
}

func TestGetConfirmationsMapsTypesAndTimes(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	client := startBackend(t, map[string]handler{
		cmdGetConfirmations: func(json.RawMessage) response {
			return resultResponse(t, []wireConfirmation{
				{
					Type:         "market-sell",
					TypeName:     "Market Listing",
					ID:           "123",
					CreatorID:    "456",
					Nonce:        "789",
					CreationTime: created,
					Headline:     "Sell - Mann Co. Supply Crate Key",
					Summary:      []string{"You will receive 2,49€"},
					Multi:        false,
				},
				{Type: "hyperspace-bypass", ID: "124"},
			})
		},
	})

	confirmations, err := client.GetConfirmations(context.Background())
	require.NoError(t, err)
	require.Len(t, confirmations, 2)
	assert.Equal(t, domain.ConfirmationMarketSell, confirmations[0].Type)
	assert.True(t, created.Equal(confirmations[0].CreationTime))
	assert.Equal(t, domain.ConfirmationUnknown, confirmations[1].Type, "unrecognized type degrades to unknown")
}

func TestBulkAcceptSendsAllRefs(t *testing.T) {
	var got []wireConfirmationRef
	client := startBackend(t, map[string]handler{
		cmdAcceptConfirmations: func(payload json.RawMessage) response {
			if err := json.Unmarshal(payload, &got); err != nil {
				return response{Error: &wireError{Type: "deserialization-error"}}
			}
			return resultResponse(t, struct{}{})
		},
	})

	err := client.AcceptConfirmations(context.Background(), []domain.ConfirmationRef{
		{ID: "A", Nonce: "a"},
		{ID: "B", Nonce: "b"},
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, wireConfirmationRef{ID: "A", Nonce: "a"}, got[0])
}

func TestMalformedResultIsDeserializationError(t *testing.T) {
	client := startBackend(t, map[string]handler{
		cmdGetSessions: func(json.RawMessage) response {
			return response{Result: json.RawMessage(`{"not":"a list"}`)}
		},
	})

	_, err := client.GetSessions(context.Background())
	require.Error(t, err)
	assert.Equal(t, domain.KindDeserializationError, domain.KindOf(err))
}

func TestContextCancellationAborts(t *testing.T) {
	client := startBackend(t, map[string]handler{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetAccounts(ctx)
	require.Error(t, err)
}
