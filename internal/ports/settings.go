package ports

import (
	"context"

	"github.com/prenaissance/steam-desktop-authenticator/internal/domain"
)

// SettingsRepository persists client settings between runs.
type SettingsRepository interface {
	Load(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, settings domain.Settings) error
}
