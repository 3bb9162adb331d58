package domain

import "errors"

// ErrorKind is the machine-readable tag the backend attaches to failures.
// Values match the wire encoding of the backend's error envelopes.
type ErrorKind string

const (
	KindWrongCredentials     ErrorKind = "wrong-credentials"
	KindValidationError      ErrorKind = "validation-error"
	KindOtpError             ErrorKind = "otp-error"
	KindIOError              ErrorKind = "io-error"
	KindUnimplemented        ErrorKind = "unimplemented"
	KindUnauthorized         ErrorKind = "unauthorized"
	KindExpired              ErrorKind = "expired"
	KindDuplicateRequest     ErrorKind = "duplicate-request"
	KindAPIError             ErrorKind = "api-error"
	KindDeserializationError ErrorKind = "deserialization-error"
	KindNetworkFailure       ErrorKind = "network-failure"
	KindUnknown              ErrorKind = "unknown"
)

var (
	// ErrDuplicateRequest means a mutation with the same key is already in
	// flight. Raised locally; never sent to the backend.
	ErrDuplicateRequest = errors.New("an identical request is already in flight")

	// ErrNoActiveAccount means an operation needs an active account and the
	// registry has none.
	ErrNoActiveAccount = errors.New("no active account")
)

// BridgeError is a failure reported across the backend boundary, tagged by
// kind. The message is backend-provided and may be empty.
type BridgeError struct {
	Kind    ErrorKind
	Message string
}

func (e *BridgeError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Message
}

// Is lets errors.Is match two bridge errors by kind alone.
func (e *BridgeError) Is(target error) bool {
	var other *BridgeError
	if !errors.As(target, &other) {
		return false
	}
	return e.Kind == other.Kind
}

// KindOf extracts the error kind from any error in the chain. Errors that
// did not originate at the bridge report KindUnknown.
func KindOf(err error) ErrorKind {
	var bridgeErr *BridgeError
	if errors.As(err, &bridgeErr) {
		return bridgeErr.Kind
	}
	return KindUnknown
}
