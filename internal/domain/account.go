package domain

// Account identifies one configured Steam identity. Accounts are always
// backend-sourced; the client never synthesizes one locally.
type Account struct {
	Username  string
	AvatarURL string
}

// AccountSnapshot is the full registry state as reported by the backend:
// every stored account plus which one is currently active. The slice keeps
// backend order; uniqueness by username is the backend's job.
type AccountSnapshot struct {
	Accounts          []Account
	ActiveAccountName string
}

// ActiveAccount derives the active account from the snapshot. A stale
// ActiveAccountName that no longer matches a stored account yields
// (Account{}, false) rather than an error, so a removal racing a cached
// snapshot degrades to "no active account".
func (s AccountSnapshot) ActiveAccount() (Account, bool) {
	if s.ActiveAccountName == "" {
		return Account{}, false
	}
	for _, account := range s.Accounts {
		if account.Username == s.ActiveAccountName {
			return account, true
		}
	}
	return Account{}, false
}

// Clone returns a deep copy so cached snapshots can be handed to callers
// without sharing the backing slice.
func (s AccountSnapshot) Clone() AccountSnapshot {
	out := AccountSnapshot{ActiveAccountName: s.ActiveAccountName}
	if len(s.Accounts) > 0 {
		out.Accounts = make([]Account, len(s.Accounts))
		copy(out.Accounts, s.Accounts)
	}
	return out
}
