package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sda",
		Short:         "Steam Desktop Authenticator (sda): codes, confirmations and sign-in approvals",
		Long:          "sda is the terminal companion for Steam Guard: it shows the rolling one-time code, approves or denies sign-in requests, and reviews pending trade and market confirmations for your linked accounts.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newAccountsCmd(app),
		newCodeCmd(app),
		newSessionsCmd(app),
		newConfirmationsCmd(app),
		newConfigCmd(app),
	)

	return rootCmd
}
