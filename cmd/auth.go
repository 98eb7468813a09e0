package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/slotwise/internal/google"
)

func newAuthCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "auth [auth-code]",
		Short: "Authorize a Google account for calendar access",
		Long: `Authorize slotwise to read a Google account's calendars.

Run without arguments to print the authorization URL. Visit it, grant
access, copy the code, and run the command again with the code as the
argument. Tokens are stored per account under the user cache directory.

Requires GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET in the environment.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				authURL, err := google.GetAuthURL()
				if err != nil {
					return err
				}
				fmt.Println("Visit the URL below, authorize access, and copy the code:")
				fmt.Println()
				fmt.Printf("  %s\n", authURL)
				fmt.Println()
				fmt.Printf("Then run: slotwise auth --account %s <code>\n", account)
				return nil
			}

			if err := google.SaveTokenForAccount(cmd.Context(), account, args[0]); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}
			fmt.Printf("Token saved for account %q.\n", account)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Account name to store the token under")

	return cmd
}
