package cmd

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rpcRequest struct {
	Command string          `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type rpcError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result any       `json:"result,omitempty"`
	Error  *rpcError `json:"error,omitempty"`
}

// startBackend serves scripted responses over the same length-prefixed JSON
// framing the real backend speaks, one request per connection.
func startBackend(t *testing.T, handlers map[string]func(payload json.RawMessage) rpcResponse) string {
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

				var header [4]byte
				if _, err := io.ReadFull(conn, header[:]); err != nil {
					return
				}
				body := make([]byte, binary.BigEndian.Uint32(header[:]))
				if _, err := io.ReadFull(conn, body); err != nil {
					return
				}

				var req rpcRequest
				if err := json.Unmarshal(body, &req); err != nil {
					return
				}

				resp := rpcResponse{Error: &rpcError{Type: "unknown", Message: "no such command"}}
				if h, ok := handlers[req.Command]; ok {
					resp = h(req.Payload)
				}

				data, err := json.Marshal(resp)
				if err != nil {
					return
				}
				binary.BigEndian.PutUint32(header[:], uint32(len(data)))
				if _, err := conn.Write(header[:]); err != nil {
					return
				}
				_, _ = conn.Write(data)
			}(conn)
		}
	}()

	return listener.Addr().String()
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func useBackend(t *testing.T, handlers map[string]func(json.RawMessage) rpcResponse) {
	t.Helper()
	t.Setenv("SDA_BRIDGE_NETWORK", "tcp")
	t.Setenv("SDA_BRIDGE_ADDRESS", startBackend(t, handlers))
}

func accountsResult(active string, usernames ...string) rpcResponse {
	type account struct {
		Username  string `json:"username"`
		AvatarURL string `json:"avatarUrl,omitempty"`
	}
	accounts := make([]account, len(usernames))
	for i, username := range usernames {
		accounts[i] = account{Username: username}
	}

	return rpcResponse{Result: map[string]any{
		"accounts":          accounts,
		"activeAccountName": active,
	}}
}

func TestAccountsListShowsActiveMarker(t *testing.T) {
	useBackend(t, map[string]func(json.RawMessage) rpcResponse{
		"get_stored_accounts": func(json.RawMessage) rpcResponse {
			return accountsResult("bob", "alice", "bob")
		},
	})

	stdout, _, err := executeCLI(t, t.TempDir(), "accounts", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "accounts: 2")
	assert.Contains(t, stdout, "alice")
	assert.Contains(t, stdout, "bob")
	assert.Contains(t, stdout, "*")
}

func TestAccountsAddRequiresCredentialFlags(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "accounts", "add", "--username", "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s)")
}

func TestAccountsAddRejectsMalformedSecretLocally(t *testing.T) {
	// no backend configured on purpose: validation must fail first
	_, _, err := executeCLI(t, t.TempDir(),
		"accounts", "add",
		"--username", "alice",
		"--password", "hunter2",
		"--shared-secret", "not-base64!",
		"--identity-secret", "AAAAAAAAAAAAAAAAAAAAAAAAAAA=",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sharedSecret")
}

func TestAccountsSwitchReportsBackendError(t *testing.T) {
	useBackend(t, map[string]func(json.RawMessage) rpcResponse{
		"set_active_account": func(json.RawMessage) rpcResponse {
			return rpcResponse{Error: &rpcError{Type: "api-error", Message: "no account named mallory"}}
		},
	})

	_, _, err := executeCLI(t, t.TempDir(), "accounts", "switch", "mallory")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no account named mallory")
}

func TestCodeOncePrintsCode(t *testing.T) {
	useBackend(t, map[string]func(json.RawMessage) rpcResponse{
		"get_current_code": func(json.RawMessage) rpcResponse {
			return rpcResponse{Result: "B2C3D"}
		},
	})

	stdout, _, err := executeCLI(t, t.TempDir(), "code", "--once")
	require.NoError(t, err)
	assert.Equal(t, "B2C3D\n", stdout)
}

func TestCodeOnceWithoutActiveAccount(t *testing.T) {
	useBackend(t, map[string]func(json.RawMessage) rpcResponse{
		"get_current_code": func(json.RawMessage) rpcResponse {
			return rpcResponse{Result: nil}
		},
	})

	_, _, err := executeCLI(t, t.TempDir(), "code", "--once")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no active account")
}

func TestSessionsListRendersRequests(t *testing.T) {
	useBackend(t, map[string]func(json.RawMessage) rpcResponse{
		"get_auth_sessions": func(json.RawMessage) rpcResponse {
			return rpcResponse{Result: []map[string]any{
				{
					"clientId":           "17281",
					"deviceFriendlyName": "Galaxy S23",
					"city":               "Rotterdam",
					"country":            "Netherlands",
				},
			}}
		},
	})

	stdout, _, err := executeCLI(t, t.TempDir(), "sessions", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "sessions: 1")
	assert.Contains(t, stdout, "Galaxy S23")
	assert.Contains(t, stdout, "Rotterdam, Netherlands")
}

func TestSessionsApprovePersistentFlag(t *testing.T) {
	var approval map[string]string
	useBackend(t, map[string]func(json.RawMessage) rpcResponse{
		"approve_auth_session": func(payload json.RawMessage) rpcResponse {
			if err := json.Unmarshal(payload, &approval); err != nil {
				return rpcResponse{Error: &rpcError{Type: "deserialization-error"}}
			}
			return rpcResponse{Result: map[string]any{}}
		},
		"get_auth_sessions": func(json.RawMessage) rpcResponse {
			return rpcResponse{Result: []map[string]any{}}
		},
	})

	stdout, _, err := executeCLI(t, t.TempDir(), "sessions", "approve", "17281", "--persistent")
	require.NoError(t, err)
	assert.Contains(t, stdout, "session 17281 approved")
	assert.Equal(t, "17281", approval["clientId"])
	assert.Equal(t, "persistent", approval["persistence"])
}

func TestConfirmationsAcceptLooksUpNonce(t *testing.T) {
	var accepted map[string]string
	useBackend(t, map[string]func(json.RawMessage) rpcResponse{
		"get_confirmations": func(json.RawMessage) rpcResponse {
			return rpcResponse{Result: []map[string]any{
				{"type": "market-sell", "id": "4411", "nonce": "n-1"},
			}}
		},
		"accept_confirmation": func(payload json.RawMessage) rpcResponse {
			if err := json.Unmarshal(payload, &accepted); err != nil {
				return rpcResponse{Error: &rpcError{Type: "deserialization-error"}}
			}
			return rpcResponse{Result: map[string]any{}}
		},
	})

	stdout, _, err := executeCLI(t, t.TempDir(), "confirmations", "accept", "4411")
	require.NoError(t, err)
	assert.Contains(t, stdout, "confirmation 4411 accepted")
	assert.Equal(t, "n-1", accepted["nonce"])
}

func TestConfirmationsDenyAll(t *testing.T) {
	var denied []map[string]string
	useBackend(t, map[string]func(json.RawMessage) rpcResponse{
		"get_confirmations": func(json.RawMessage) rpcResponse {
			return rpcResponse{Result: []map[string]any{
				{"type": "trade", "id": "1", "nonce": "a"},
				{"type": "trade", "id": "2", "nonce": "b"},
			}}
		},
		"deny_confirmations": func(payload json.RawMessage) rpcResponse {
			if err := json.Unmarshal(payload, &denied); err != nil {
				return rpcResponse{Error: &rpcError{Type: "deserialization-error"}}
			}
			return rpcResponse{Result: map[string]any{}}
		},
	})

	stdout, _, err := executeCLI(t, t.TempDir(), "confirmations", "deny", "--all")
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 confirmations denied")
	require.Len(t, denied, 2)
}

func TestConfirmationsAcceptUnknownID(t *testing.T) {
	useBackend(t, map[string]func(json.RawMessage) rpcResponse{
		"get_confirmations": func(json.RawMessage) rpcResponse {
			return rpcResponse{Result: []map[string]any{}}
		},
	})

	_, _, err := executeCLI(t, t.TempDir(), "confirmations", "accept", "9999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no pending confirmation with id 9999")
}

func TestConfigSetThenGet(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "config", "set", "log.level", "debug")
	require.NoError(t, err)
	assert.Contains(t, stdout, "log.level = debug")

	stdout, _, err = executeCLI(t, home, "config", "get", "log.level")
	require.NoError(t, err)
	assert.Equal(t, "debug\n", stdout)
}

func TestConfigGetListsAllKeys(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "config", "get")
	require.NoError(t, err)
	assert.Contains(t, stdout, "bridge.network = unix")
	assert.Contains(t, stdout, "log.level = info")
	assert.Contains(t, stdout, "refresh.tick = 1s")
}

func TestConfigSetRejectsUnknownKey(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "config", "set", "color.scheme", "dark")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown setting")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}
