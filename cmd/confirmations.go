package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	reviewview "github.com/prenaissance/steam-desktop-authenticator/internal/adapters/render/review"
	"github.com/prenaissance/steam-desktop-authenticator/internal/domain"
)

func newConfirmationsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "confirmations",
		Short: "Review pending trade and market confirmations",
	}

	cmd.AddCommand(
		newConfirmationsListCmd(app),
		newConfirmationsActionCmd(app, "accept", "accepted", "Accept one or all pending confirmations",
			app.coordinator.AcceptConfirmation, app.coordinator.AcceptConfirmations),
		newConfirmationsActionCmd(app, "deny", "denied", "Deny one or all pending confirmations",
			app.coordinator.DenyConfirmation, app.coordinator.DenyConfirmations),
	)

	return cmd
}

func newConfirmationsListCmd(app *app) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pending confirmations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			confirmations, err := app.confirmations.Get(cmd.Context(), refresh)
			if err != nil {
				return err
			}

			selected := make(map[string]bool, app.selection.Len())
			for _, ref := range app.selection.Refs() {
				selected[ref.ID] = true
			}

			output, err := reviewview.RenderConfirmations(confirmations, reviewview.RenderOptions{
				Now:         app.clock.Now(),
				SelectedIDs: selected,
			})
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

func newConfirmationsActionCmd(
	app *app,
	verb string,
	past string,
	short string,
	single func(ctx context.Context, ref domain.ConfirmationRef) error,
	bulk func(ctx context.Context, refs []domain.ConfirmationRef) error,
) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   verb + " [confirmation-id]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				confirmations, err := app.confirmations.Get(cmd.Context(), true)
				if err != nil {
					return err
				}
				if len(confirmations) == 0 {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), "nothing to "+verb)
					return err
				}

				for _, confirmation := range confirmations {
					app.selection.Add(confirmation.Ref())
				}

				if err := bulk(cmd.Context(), app.selection.Refs()); err != nil {
					return err
				}

				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d confirmations %s\n", len(confirmations), past)
				return err
			}

			if len(args) == 0 {
				return fmt.Errorf("confirmation id required unless --all is set")
			}

			ref, err := findConfirmation(cmd, app, args[0])
			if err != nil {
				return err
			}

			if err := single(cmd.Context(), ref); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "confirmation %s %s\n", ref.ID, past)
			return err
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, verb+" every pending confirmation")

	return cmd
}

func findConfirmation(cmd *cobra.Command, app *app, id string) (domain.ConfirmationRef, error) {
	confirmations, err := app.confirmations.Get(cmd.Context(), false)
	if err != nil {
		return domain.ConfirmationRef{}, err
	}

	for _, confirmation := range confirmations {
		if confirmation.ID == id {
			return confirmation.Ref(), nil
		}
	}

	return domain.ConfirmationRef{}, fmt.Errorf("no pending confirmation with id %s", id)
}
