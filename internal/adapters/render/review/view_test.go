package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prenaissance/steam-desktop-authenticator/internal/domain"
)

func TestRenderSessionsWithWarnings(t *testing.T) {
	output, err := RenderSessions([]domain.AuthSession{
		{
			ClientID:                  "17281",
			IP:                        "203.0.113.9",
			City:                      "Rotterdam",
			Country:                   "Netherlands",
			DeviceFriendlyName:        "Galaxy S23",
			RequestedPersistence:      domain.PersistencePersistent,
			RequestorLocationMismatch: true,
			HighUsageLogin:            true,
		},
	}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "sessions: 1")
	assert.Contains(t, output, "Galaxy S23")
	assert.Contains(t, output, "(17281)")
	assert.Contains(t, output, "Rotterdam, Netherlands")
	assert.Contains(t, output, "remembered sign-in")
	assert.Contains(t, output, "location differs")
	assert.Contains(t, output, "high-usage login")
}

func TestRenderSessionsEmpty(t *testing.T) {
	output, err := RenderSessions(nil, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "sessions: 0")
	assert.Contains(t, output, "No sign-in requests")
}

func TestRenderSessionUnknownDevice(t *testing.T) {
	output, err := RenderSessions([]domain.AuthSession{{ClientID: "5"}}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "unknown device")
	assert.NotContains(t, output, "from:")
}

func TestRenderConfirmations(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	output, err := RenderConfirmations([]domain.Confirmation{
		{
			Type:         domain.ConfirmationMarketSell,
			TypeName:     "Market Listing",
			ID:           "4411",
			Headline:     "Sell - Mann Co. Supply Crate Key",
			Summary:      []string{"You will receive 2,49€"},
			CreationTime: now.Add(-3 * time.Hour),
		},
		{
			Type: domain.ConfirmationUnknown,
			ID:   "4412",
		},
	}, RenderOptions{Now: now, SelectedIDs: map[string]bool{"4411": true}})

	require.NoError(t, err)
	assert.Contains(t, output, "confirmations: 2")
	assert.Contains(t, output, "Sell - Mann Co. Supply Crate Key")
	assert.Contains(t, output, "#4411")
	assert.Contains(t, output, "You will receive")
	assert.Contains(t, output, "Market Listing, 3h ago")
	assert.Contains(t, output, "> ")
	assert.Contains(t, output, "unrecognized confirmation type")
}

func TestRenderConfirmationsEmpty(t *testing.T) {
	output, err := RenderConfirmations(nil, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "confirmations: 0")
	assert.Contains(t, output, "Nothing waiting")
}

func TestFormatAge(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		createdAt time.Time
		want      string
	}{
		{name: "seconds", createdAt: now.Add(-20 * time.Second), want: "just now"},
		{name: "minutes", createdAt: now.Add(-12 * time.Minute), want: "12m ago"},
		{name: "hours", createdAt: now.Add(-5 * time.Hour), want: "5h ago"},
		{name: "days", createdAt: now.Add(-49 * time.Hour), want: "2d ago"},
		{name: "zero time", createdAt: time.Time{}, want: ""},
		{name: "future", createdAt: now.Add(time.Minute), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatAge(tt.createdAt, now))
		})
	}
}
