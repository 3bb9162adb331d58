package toml

import (
	"fmt"
	"time"

	"github.com/prenaissance/steam-desktop-authenticator/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version int           `toml:"version"`
	Bridge  bridgeSchema  `toml:"bridge"`
	Log     logSchema     `toml:"log"`
	Refresh refreshSchema `toml:"refresh"`
}

type bridgeSchema struct {
	Network string `toml:"network,omitempty"`
	Address string `toml:"address,omitempty"`
}

type logSchema struct {
	Level string `toml:"level,omitempty"`
}

type refreshSchema struct {
	Tick string `toml:"tick,omitempty"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported settings schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

func toSchema(settings domain.Settings) fileSchema {
	file := fileSchema{
		Version: currentSchemaVersion,
		Bridge: bridgeSchema{
			Network: settings.BridgeNetwork,
			Address: settings.BridgeAddress,
		},
		Log: logSchema{Level: settings.LogLevel},
	}

	if settings.TickInterval > 0 {
		file.Refresh.Tick = settings.TickInterval.String()
	}

	return file
}

func fromSchema(file fileSchema) (domain.Settings, error) {
	settings := domain.Settings{
		BridgeNetwork: file.Bridge.Network,
		BridgeAddress: file.Bridge.Address,
		LogLevel:      file.Log.Level,
	}

	if file.Refresh.Tick != "" {
		tick, err := time.ParseDuration(file.Refresh.Tick)
		if err != nil {
			return domain.Settings{}, fmt.Errorf("parse refresh tick: %w", err)
		}
		settings.TickInterval = tick
	}

	return settings.WithDefaults(), nil
}
