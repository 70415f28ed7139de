package command

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var notifUnreadOnly bool

var notificationCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Read your notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := authedClient()
		if err != nil {
			return err
		}

		notifications, err := httpClient.Notifications(notifUnreadOnly)
		if err != nil {
			return fmt.Errorf("failed to list notifications: %w", err)
		}

		if len(notifications) == 0 {
			fmt.Println("No notifications.")
			return nil
		}

		for _, n := range notifications {
			if n.IsRead {
				fmt.Printf("%s\n", n.Title)
			} else {
				color.Yellow("%s", n.Title)
			}
			fmt.Printf("%s\n", n.Message)
			fmt.Printf("%s\n", n.CreatedAt.Format("Jan 2 15:04"))
			fmt.Println(strings.Repeat("-", 50))
		}
		return nil
	},
}

var markAllReadCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark every notification as read",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := authedClient()
		if err != nil {
			return err
		}

		if err := httpClient.MarkAllNotificationsRead(); err != nil {
			return fmt.Errorf("failed to mark notifications read: %w", err)
		}
		fmt.Println("All notifications marked as read.")
		return nil
	},
}

func init() {
	notificationCmd.Flags().BoolVar(&notifUnreadOnly, "unread", false, "unread only")
	notificationCmd.AddCommand(markAllReadCmd)
	rootCmd.AddCommand(notificationCmd)
}
