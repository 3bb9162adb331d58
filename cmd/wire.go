package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/prenaissance/steam-desktop-authenticator/internal/adapters/bridge/socket"
	tomlrepo "github.com/prenaissance/steam-desktop-authenticator/internal/adapters/repo/toml"
	"github.com/prenaissance/steam-desktop-authenticator/internal/application"
	"github.com/prenaissance/steam-desktop-authenticator/internal/domain"
	"github.com/prenaissance/steam-desktop-authenticator/internal/ports"
)

type app struct {
	settings      domain.Settings
	settingsRepo  ports.SettingsRepository
	bridge        ports.Bridge
	registry      *application.Registry
	sessions      *application.SessionCache
	confirmations *application.ConfirmationCache
	selection     *application.Selection
	coordinator   *application.Coordinator
	clock         ports.Clock
}

func wireApp() (*app, error) {
	settingsRepo, err := tomlrepo.NewRepository(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire settings repository: %w", err)
	}

	settings, err := settingsRepo.Load(context.Background())
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	configureLogging(settings.LogLevel)

	bridge := socket.New(
		envOrDefault("SDA_BRIDGE_NETWORK", settings.BridgeNetwork),
		envOrDefault("SDA_BRIDGE_ADDRESS", settings.BridgeAddress),
	)

	registry := application.NewRegistry(bridge)
	sessions := application.NewSessionCache(bridge)
	confirmations := application.NewConfirmationCache(bridge)
	selection := application.NewSelection()

	return &app{
		settings:      settings,
		settingsRepo:  settingsRepo,
		bridge:        bridge,
		registry:      registry,
		sessions:      sessions,
		confirmations: confirmations,
		selection:     selection,
		coordinator:   application.NewCoordinator(bridge, registry, sessions, confirmations, selection),
		clock:         ports.SystemClock{},
	}, nil
}

func configureLogging(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(parsed)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
