package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	codeview "github.com/prenaissance/steam-desktop-authenticator/internal/adapters/render/code"
	"github.com/prenaissance/steam-desktop-authenticator/internal/domain"
)

func newCodeCmd(app *app) *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "code",
		Short: "Show the rolling Steam Guard code for the active account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fetch := func(ctx context.Context) (string, error) {
				return app.bridge.GetCode(ctx)
			}

			if once {
				code, err := fetch(cmd.Context())
				if err != nil {
					return err
				}
				if code == "" {
					return domain.ErrNoActiveAccount
				}

				_, err = fmt.Fprintln(cmd.OutOrStdout(), code)
				return err
			}

			return codeview.Run(cmd.Context(), fetch, codeview.Options{
				Account:     activeAccountName(cmd.Context(), app),
				Granularity: app.settings.TickInterval,
				Clock:       app.clock,
			})
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "print the current code and exit")

	return cmd
}

func activeAccountName(ctx context.Context, app *app) string {
	if _, err := app.registry.Fetch(ctx, false); err != nil {
		log.Warn().Err(err).Msg("could not resolve active account")
		return ""
	}

	account, ok := app.registry.ActiveAccount()
	if !ok {
		return ""
	}

	return account.Username
}
