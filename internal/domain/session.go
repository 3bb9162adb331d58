package domain

// Persistence selects how long an approved sign-in should last.
type Persistence string

const (
	PersistenceEphemeral  Persistence = "ephemeral"
	PersistencePersistent Persistence = "persistent"
)

// AuthSession describes one pending remote sign-in request. Most fields are
// best-effort metadata Steam may or may not populate; ClientID is the only
// one guaranteed present. IDs are string-encoded 64-bit values on the wire.
type AuthSession struct {
	ClientID                  string
	IP                        string
	Geoloc                    string
	City                      string
	State                     string
	Country                   string
	DeviceFriendlyName        string
	DeviceUserAgent           string
	Version                   int
	HighUsageLogin            bool
	RequestorLocationMismatch bool
	RequestedPersistence      Persistence
}

// Location renders the best available human-readable origin of the request.
func (s AuthSession) Location() string {
	switch {
	case s.City != "" && s.Country != "":
		return s.City + ", " + s.Country
	case s.Country != "":
		return s.Country
	case s.IP != "":
		return s.IP
	default:
		return "unknown location"
	}
}

// SessionApproval is the payload for approving a pending sign-in.
type SessionApproval struct {
	ClientID    string
	Persistence Persistence
}
