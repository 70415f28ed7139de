package command

// root.go defines the root command for the mealbridge CLI.

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var apiURL string // global flag for the API server URL

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mealbridge",
	Short: "mealbridge - food sharing from the terminal",
	Long: `mealbridge talks to a MealBridge API server. With it you can:
- Browse the donation board with filters and sorting
- Request, approve, decline and complete reservations
- Read your notifications
- Work the moderation queue (moderators only)

Use "mealbridge <command> -h" to see all available commands.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "http://localhost:8080", "API server URL")
}
