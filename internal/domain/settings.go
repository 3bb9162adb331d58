package domain

import (
	"fmt"
	"time"
)

const (
	DefaultBridgeNetwork = "unix"
	DefaultLogLevel      = "info"
	DefaultTickInterval  = time.Second
)

// Settings is the locally persisted client configuration. The backend socket
// location and refresh granularity live here, account data never does.
type Settings struct {
	BridgeNetwork string
	BridgeAddress string
	LogLevel      string
	TickInterval  time.Duration
}

func (s Settings) WithDefaults() Settings {
	if s.BridgeNetwork == "" {
		s.BridgeNetwork = DefaultBridgeNetwork
	}
	if s.LogLevel == "" {
		s.LogLevel = DefaultLogLevel
	}
	if s.TickInterval <= 0 {
		s.TickInterval = DefaultTickInterval
	}
	return s
}

func (s Settings) Validate() error {
	switch s.BridgeNetwork {
	case "unix", "tcp":
	default:
		return fmt.Errorf("unsupported bridge network %q", s.BridgeNetwork)
	}

	if s.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", s.TickInterval)
	}

	return nil
}
