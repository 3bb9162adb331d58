// Package socket implements ports.Bridge over a local stream socket to the
// authenticator backend process. Each call is one request/response exchange:
// a 4-byte big-endian length prefix followed by a JSON envelope.
package socket

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
)

// MaxMessageSize bounds a single envelope (64KB).
const MaxMessageSize = 65536

// request is the client-to-backend envelope: a command name plus an
// action-specific payload.
type request struct {
	Command string          `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// response is the backend-to-client envelope. Exactly one of Result and
// Error is set.
type response struct {
	Result json.RawMessage `json:"result,omitempty"`
	Error  *wireError      `json:"error,omitempty"`
}

type wireError struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
}

// writeMessage writes one length-prefixed JSON message.
func writeMessage(w io.Writer, msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("socket: marshal: %w", err)
	}
	if len(data) > MaxMessageSize {
		return fmt.Errorf("socket: message too large: %d bytes", len(data))
	}

	lenBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(lenBuf, uint32(len(data)))
	if _, err := w.Write(lenBuf); err != nil {
		return fmt.Errorf("socket: write length: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("socket: write payload: %w", err)
	}
	return nil
}

// readMessage reads one length-prefixed JSON message into out.
func readMessage(r io.Reader, out any) error {
	lenBuf := make([]byte, 4)
	if _, err := io.ReadFull(r, lenBuf); err != nil {
		return fmt.Errorf("socket: read length: %w", err)
	}
	length := binary.BigEndian.Uint32(lenBuf)
	if length > MaxMessageSize {
		return fmt.Errorf("socket: message too large: %d bytes", length)
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return fmt.Errorf("socket: read payload: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("socket: unmarshal: %w", err)
	}
	return nil
}
