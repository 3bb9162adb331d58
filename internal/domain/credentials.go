package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// steamSecretLength is the length of a base64-encoded Steam Guard secret
// (20 raw bytes, one padding character).
const steamSecretLength = 28

// LoginRequest carries the credentials submitted to the backend login call.
// Only the shape is validated client-side; whether the credentials actually
// work is the backend's verdict.
type LoginRequest struct {
	Username       string
	Password       string
	SharedSecret   string
	IdentitySecret string
}

// Validate checks the request shape before it is allowed near the bridge.
// Secrets are trimmed first, matching how users paste them from maFiles.
func (r *LoginRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.SharedSecret = strings.TrimSpace(r.SharedSecret)
	r.IdentitySecret = strings.TrimSpace(r.IdentitySecret)

	if r.Username == "" {
		return validationError("username must not be empty")
	}
	if r.Password == "" {
		return validationError("password must not be empty")
	}
	if err := validateSecret("sharedSecret", r.SharedSecret); err != nil {
		return err
	}
	return validateSecret("identitySecret", r.IdentitySecret)
}

func validateSecret(field, value string) error {
	if len(value) != steamSecretLength {
		return validationError(fmt.Sprintf("%s must be exactly %d characters, got %d", field, steamSecretLength, len(value)))
	}
	if _, err := base64.StdEncoding.DecodeString(value); err != nil {
		return validationError(fmt.Sprintf("%s is not valid base64", field))
	}
	return nil
}

func validationError(message string) error {
	return &BridgeError{Kind: KindValidationError, Message: message}
}
