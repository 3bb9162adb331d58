package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	accountsview "github.com/prenaissance/steam-desktop-authenticator/internal/adapters/render/accounts"
	"github.com/prenaissance/steam-desktop-authenticator/internal/domain"
)

func newAccountsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage linked Steam accounts",
	}

	cmd.AddCommand(
		newAccountsListCmd(app),
		newAccountsAddCmd(app),
		newAccountsRemoveCmd(app),
		newAccountsSwitchCmd(app),
	)

	return cmd
}

func newAccountsListCmd(app *app) *cobra.Command {
	var showAvatars bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List linked accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			snapshot, err := app.registry.Fetch(cmd.Context(), false)
			if err != nil {
				return err
			}

			output, err := accountsview.Render(snapshot, accountsview.RenderOptions{ShowAvatars: showAvatars})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
			return err
		},
	}

	cmd.Flags().BoolVar(&showAvatars, "avatars", false, "include avatar URLs in the listing")

	return cmd
}

func newAccountsAddCmd(app *app) *cobra.Command {
	var req domain.LoginRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Link an account with full credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.coordinator.AddAccount(cmd.Context(), req); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "account %s linked\n", req.Username)
			return err
		},
	}

	cmd.Flags().StringVar(&req.Username, "username", "", "Steam account name")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password")
	cmd.Flags().StringVar(&req.SharedSecret, "shared-secret", "", "base64 Steam Guard shared secret")
	cmd.Flags().StringVar(&req.IdentitySecret, "identity-secret", "", "base64 Steam Guard identity secret")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("shared-secret")
	_ = cmd.MarkFlagRequired("identity-secret")

	return cmd
}

func newAccountsRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <username>",
		Short: "Unlink an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.coordinator.RemoveAccount(cmd.Context(), args[0]); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "account %s removed\n", args[0])
			return err
		},
	}
}

func newAccountsSwitchCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "switch <username>",
		Short: "Make another linked account the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.coordinator.SwitchAccount(cmd.Context(), args[0]); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "active account is now %s\n", args[0])
			return err
		},
	}
}
