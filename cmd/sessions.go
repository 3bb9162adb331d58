package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	reviewview "github.com/prenaissance/steam-desktop-authenticator/internal/adapters/render/review"
	"github.com/prenaissance/steam-desktop-authenticator/internal/domain"
)

func newSessionsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Review pending sign-in requests",
	}

	cmd.AddCommand(
		newSessionsListCmd(app),
		newSessionsApproveCmd(app),
		newSessionsDenyCmd(app),
	)

	return cmd
}

func newSessionsListCmd(app *app) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sign-in requests waiting for approval",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sessions, err := app.sessions.Get(cmd.Context(), refresh)
			if err != nil {
				return err
			}

			output, err := reviewview.RenderSessions(sessions, reviewview.RenderOptions{Now: app.clock.Now()})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
			return err
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cached list and ask the backend again")

	return cmd
}

func newSessionsApproveCmd(app *app) *cobra.Command {
	var persistent bool

	cmd := &cobra.Command{
		Use:   "approve <client-id>",
		Short: "Approve a sign-in request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			persistence := domain.PersistenceEphemeral
			if persistent {
				persistence = domain.PersistencePersistent
			}

			err := app.coordinator.ApproveSession(cmd.Context(), domain.SessionApproval{
				ClientID:    args[0],
				Persistence: persistence,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "session %s approved\n", args[0])
			return err
		},
	}

	cmd.Flags().BoolVar(&persistent, "persistent", false, "let the device stay signed in")

	return cmd
}

func newSessionsDenyCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "deny <client-id>",
		Short: "Deny a sign-in request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.coordinator.DenySession(cmd.Context(), args[0]); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "session %s denied\n", args[0])
			return err
		},
	}
}
