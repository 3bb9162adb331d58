package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/prenaissance/steam-desktop-authenticator/internal/domain"
)

const (
	keyBridgeNetwork = "bridge.network"
	keyBridgeAddress = "bridge.address"
	keyLogLevel      = "log.level"
	keyRefreshTick   = "refresh.tick"
)

func newConfigCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and change client settings",
	}

	cmd.AddCommand(
		newConfigGetCmd(app),
		newConfigSetCmd(app),
	)

	return cmd
}

func newConfigGetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Print one setting, or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := app.settingsRepo.Load(cmd.Context())
			if err != nil {
				return err
			}

			if len(args) == 1 {
				value, err := settingValue(settings, args[0])
				if err != nil {
					return err
				}

				_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
				return err
			}

			for _, key := range []string{keyBridgeNetwork, keyBridgeAddress, keyLogLevel, keyRefreshTick} {
				value, _ := settingValue(settings, key)
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

func newConfigSetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := app.settingsRepo.Load(cmd.Context())
			if err != nil {
				return err
			}

			settings, err = withSetting(settings, args[0], args[1])
			if err != nil {
				return err
			}

			if err := app.settingsRepo.Save(cmd.Context(), settings); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
			return err
		},
	}
}

func settingValue(settings domain.Settings, key string) (string, error) {
	switch key {
	case keyBridgeNetwork:
		return settings.BridgeNetwork, nil
	case keyBridgeAddress:
		return settings.BridgeAddress, nil
	case keyLogLevel:
		return settings.LogLevel, nil
	case keyRefreshTick:
		return settings.TickInterval.String(), nil
	default:
		return "", fmt.Errorf("unknown setting %q", key)
	}
}

func withSetting(settings domain.Settings, key, value string) (domain.Settings, error) {
	switch key {
	case keyBridgeNetwork:
		settings.BridgeNetwork = value
	case keyBridgeAddress:
		settings.BridgeAddress = value
	case keyLogLevel:
		settings.LogLevel = value
	case keyRefreshTick:
		tick, err := time.ParseDuration(value)
		if err != nil {
			return domain.Settings{}, fmt.Errorf("parse refresh tick: %w", err)
		}
		settings.TickInterval = tick
	default:
		return domain.Settings{}, fmt.Errorf("unknown setting %q", key)
	}

	return settings, nil
}
