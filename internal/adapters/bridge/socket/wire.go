package socket

import (
	"time"

	"github.com/prenaissance/steam-desktop-authenticator/internal/domain"
)

// Command names understood by the backend.
const (
	cmdGetAccounts         = "get_stored_accounts"
	cmdLogin               = "login_full_credentials"
	cmdRemoveAccount       = "remove_account"
	cmdSetActiveAccount    = "set_active_account"
	cmdGetCode             = "get_current_code"
	cmdGetSessions         = "get_auth_sessions"
	cmdApproveSession      = "approve_auth_session"
	cmdDenySession         = "deny_auth_session"
	cmdGetConfirmations    = "get_confirmations"
	cmdAcceptConfirmation  = "accept_confirmation"
	cmdDenyConfirmation    = "deny_confirmation"
	cmdAcceptConfirmations = "accept_confirmations"
	cmdDenyConfirmations   = "deny_confirmations"
)

type wireAccount struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type wireSnapshot struct {
	Accounts          []wireAccount `json:"accounts"`
	ActiveAccountName string        `json:"activeAccountName,omitempty"`
}

func (s wireSnapshot) toDomain() domain.AccountSnapshot {
	accounts := make([]domain.Account, len(s.Accounts))
	for i, account := range s.Accounts {
		accounts[i] = domain.Account{Username: account.Username, AvatarURL: account.AvatarURL}
	}
	return domain.AccountSnapshot{Accounts: accounts, ActiveAccountName: s.ActiveAccountName}
}

type wireLoginRequest struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	SharedSecret   string `json:"sharedSecret"`
	IdentitySecret string `json:"identitySecret"`
}

type wireUsername struct {
	Username string `json:"username"`
}

type wireSession struct {
	ClientID                  string `json:"clientId"`
	IP                        string `json:"ip,omitempty"`
	Geoloc                    string `json:"geoloc,omitempty"`
	City                      string `json:"city,omitempty"`
	State                     string `json:"state,omitempty"`
	Country                   string `json:"country,omitempty"`
	DeviceFriendlyName        string `json:"deviceFriendlyName,omitempty"`
	DeviceUserAgent           string `json:"deviceUserAgent,omitempty"`
	Version                   int    `json:"version,omitempty"`
	HighUsageLogin            bool   `json:"highUsageLogin,omitempty"`
	RequestorLocationMismatch bool   `json:"requestorLocationMismatch,omitempty"`
	RequestedPersistence      string `json:"requestedPersistence,omitempty"`
}

func (s wireSession) toDomain() domain.AuthSession {
	return domain.AuthSession{
		ClientID:                  s.ClientID,
		IP:                        s.IP,
		Geoloc:                    s.Geoloc,
		City:                      s.City,
		State:                     s.State,
		Country:                   s.Country,
		DeviceFriendlyName:        s.DeviceFriendlyName,
		DeviceUserAgent:           s.DeviceUserAgent,
		Version:                   s.Version,
		HighUsageLogin:            s.HighUsageLogin,
		RequestorLocationMismatch: s.RequestorLocationMismatch,
		RequestedPersistence:      domain.Persistence(s.RequestedPersistence),
	}
}

type wireApproval struct {
	ClientID    string `json:"clientId"`
	Persistence string `json:"persistence"`
}

type wireClientID struct {
	ClientID string `json:"clientId"`
}

type wireConfirmation struct {
	Type         string    `json:"type"`
	TypeName     string    `json:"typeName"`
	ID           string    `json:"id"`
	CreatorID    string    `json:"creatorId"`
	Nonce        string    `json:"nonce"`
	CreationTime time.Time `json:"creationTime"`
	Cancel       string    `json:"cancel"`
	Accept       string    `json:"accept"`
	Icon         string    `json:"icon,omitempty"`
	Multi        bool      `json:"multi"`
	Headline     string    `json:"headline"`
	Summary      []string  `json:"summary"`
}

func (c wireConfirmation) toDomain() domain.Confirmation {
	confirmationType := domain.ConfirmationType(c.Type)
	if !confirmationType.Known() {
		confirmationType = domain.ConfirmationUnknown
	}
	return domain.Confirmation{
		Type:         confirmationType,
		TypeName:     c.TypeName,
		ID:           c.ID,
		CreatorID:    c.CreatorID,
		Nonce:        c.Nonce,
		CreationTime: c.CreationTime,
		Cancel:       c.Cancel,
		Accept:       c.Accept,
		Icon:         c.Icon,
		Multi:        c.Multi,
		Headline:     c.Headline,
		Summary:      c.Summary,
	}
}

type wireConfirmationRef struct {
	ID    string `json:"id"`
	Nonce string `json:"nonce"`
}

func toWireRefs(refs []domain.ConfirmationRef) []wireConfirmationRef {
	out := make([]wireConfirmationRef, len(refs))
	for i, ref := range refs {
		out[i] = wireConfirmationRef{ID: ref.ID, Nonce: ref.Nonce}
	}
	return out
}

// knownKinds is the closed set of error tags the backend emits. Anything
// else degrades to KindUnknown rather than trusting a garbled tag.
var knownKinds = map[domain.ErrorKind]struct{}{
	domain.KindWrongCredentials:     {},
	domain.KindValidationError:      {},
	domain.KindOtpError:             {},
	domain.KindIOError:              {},
	domain.KindUnimplemented:        {},
	domain.KindUnauthorized:         {},
	domain.KindExpired:              {},
	domain.KindDuplicateRequest:     {},
	domain.KindAPIError:             {},
	domain.KindDeserializationError: {},
	domain.KindNetworkFailure:       {},
}

func (e *wireError) toDomain() *domain.BridgeError {
	kind := domain.ErrorKind(e.Type)
	if _, ok := knownKinds[kind]; !ok {
		kind = domain.KindUnknown
	}
	return &domain.BridgeError{Kind: kind, Message: e.Message}
}
