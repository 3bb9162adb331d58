package domain

import "time"

// ConfirmationType classifies a pending Steam Guard confirmation. Values
// match the backend's kebab-case wire encoding.
type ConfirmationType string

const (
	ConfirmationTest              ConfirmationType = "test"
	ConfirmationTrade             ConfirmationType = "trade"
	ConfirmationMarketSell        ConfirmationType = "market-sell"
	ConfirmationFeatureOptOut     ConfirmationType = "feature-opt-out"
	ConfirmationPhoneNumberChange ConfirmationType = "phone-number-change"
	ConfirmationAccountRecovery   ConfirmationType = "account-recovery"
	ConfirmationAPIKeyCreation    ConfirmationType = "api-key-creation"
	ConfirmationJoinSteamFamily   ConfirmationType = "join-steam-family"
	ConfirmationUnknown           ConfirmationType = "unknown"
)

// Known reports whether the type is one the client understands. Unknown
// types still render; they just fall back to the backend-provided TypeName.
func (t ConfirmationType) Known() bool {
	switch t {
	case ConfirmationTest, ConfirmationTrade, ConfirmationMarketSell,
		ConfirmationFeatureOptOut, ConfirmationPhoneNumberChange,
		ConfirmationAccountRecovery, ConfirmationAPIKeyCreation,
		ConfirmationJoinSteamFamily:
		return true
	default:
		return false
	}
}

// Confirmation is one pending trade/market/account confirmation as reported
// by the backend.
type Confirmation struct {
	Type         ConfirmationType
	TypeName     string
	ID           string
	CreatorID    string // trade offer ID or market transaction ID
	Nonce        string
	CreationTime time.Time
	Cancel       string
	Accept       string
	Icon         string
	Multi        bool
	Headline     string
	Summary      []string
}

// Ref returns the (id, nonce) pair that identifies this confirmation in
// accept/deny calls.
func (c Confirmation) Ref() ConfirmationRef {
	return ConfirmationRef{ID: c.ID, Nonce: c.Nonce}
}

// ConfirmationRef is the payload for acting on a single confirmation.
type ConfirmationRef struct {
	ID    string
	Nonce string
}
