package command

import (
	"fmt"

	"mealbridge/cmd/cli/authentication"
	"mealbridge/cmd/cli/command/client"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  `Store or clear the access token issued by the identity provider`,
}

var loginCmd = &cobra.Command{
	Use:   "login [token]",
	Short: "Store an access token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token := args[0]

		// Round-trip /api/me so a bad token is rejected up front.
		httpClient := client.NewHTTPClient(apiURL)
		httpClient.SetToken(token)
		profile, err := httpClient.Me()
		if err != nil {
			return fmt.Errorf("token rejected by server: %w", err)
		}

		if err := authentication.StoreTokens(&authentication.StoredCredentials{
			AccessToken: token,
			UserID:      profile.ID,
		}); err != nil {
			return fmt.Errorf("failed to store token: %w", err)
		}

		color.Green("Logged in as %s", profile.DisplayName)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := authentication.DeleteTokens(); err != nil {
			return fmt.Errorf("failed to clear token: %w", err)
		}
		fmt.Println("Logged out.")
		return nil
	},
}

// authedClient builds an HTTP client with the stored token, or errors if the
// user never logged in.
func authedClient() (*client.HTTPClient, error) {
	creds, err := authentication.GetTokens()
	if err != nil {
		return nil, fmt.Errorf("not logged in, please run 'mealbridge auth login <token>'")
	}
	httpClient := client.NewHTTPClient(apiURL)
	httpClient.SetToken(creds.AccessToken)
	return httpClient, nil
}

func init() {
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(authCmd)
}
