package command

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var flagStatusFilter string

var modCmd = &cobra.Command{
	Use:   "mod",
	Short: "Moderation commands (admin/ngo only)",
}

var modFlagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "List the flag queue",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := authedClient()
		if err != nil {
			return err
		}

		flags, err := httpClient.ListFlags(flagStatusFilter)
		if err != nil {
			return fmt.Errorf("failed to list flags: %w", err)
		}

		if len(flags) == 0 {
			fmt.Println("Queue is empty.")
			return nil
		}

		for _, f := range flags {
			color.Red("[%s] %s %s", f.Reason, f.TargetType, f.TargetID)
			fmt.Printf("Flag ID: %s\n", f.ID)
			fmt.Printf("Status: %s\n", f.Status)
			if f.Description != nil {
				fmt.Printf("Description: %s\n", *f.Description)
			}
			if f.Reporter != nil {
				fmt.Printf("Reported by: %s\n", f.Reporter.DisplayName)
			}
			fmt.Println(strings.Repeat("-", 50))
		}
		return nil
	},
}

var modResolveCmd = &cobra.Command{
	Use:   "resolve [flag-id] [reviewed|resolved]",
	Short: "Move a flag to reviewed or resolved",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := authedClient()
		if err != nil {
			return err
		}

		if err := httpClient.ResolveFlag(args[0], args[1]); err != nil {
			return fmt.Errorf("failed to update flag: %w", err)
		}
		fmt.Println("Flag updated.")
		return nil
	},
}

var modHideCmd = &cobra.Command{
	Use:   "hide [donation-id]",
	Short: "Hide a listing from the board",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := authedClient()
		if err != nil {
			return err
		}
		if err := httpClient.HideDonation(args[0]); err != nil {
			return fmt.Errorf("failed to hide donation: %w", err)
		}
		fmt.Println("Donation hidden.")
		return nil
	},
}

var modUnhideCmd = &cobra.Command{
	Use:   "unhide [donation-id]",
	Short: "Restore a hidden listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := authedClient()
		if err != nil {
			return err
		}
		if err := httpClient.UnhideDonation(args[0]); err != nil {
			return fmt.Errorf("failed to restore donation: %w", err)
		}
		fmt.Println("Donation restored.")
		return nil
	},
}

var modBanCmd = &cobra.Command{
	Use:   "ban [user-id]",
	Short: "Ban a user from write actions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := authedClient()
		if err != nil {
			return err
		}
		if err := httpClient.BanUser(args[0]); err != nil {
			return fmt.Errorf("failed to ban user: %w", err)
		}
		color.Red("User banned.")
		return nil
	},
}

var modUnbanCmd = &cobra.Command{
	Use:   "unban [user-id]",
	Short: "Lift a ban",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := authedClient()
		if err != nil {
			return err
		}
		if err := httpClient.UnbanUser(args[0]); err != nil {
			return fmt.Errorf("failed to unban user: %w", err)
		}
		fmt.Println("Ban lifted.")
		return nil
	},
}

var modStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the dashboard counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := authedClient()
		if err != nil {
			return err
		}

		stats, err := httpClient.AdminStats()
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}

		fmt.Printf("Profiles: %d\n", stats.TotalProfiles)
		fmt.Printf("Donations: %d (%d available)\n", stats.TotalDonations, stats.AvailableDonations)
		fmt.Printf("Pending flags: %d\n", stats.PendingFlags)
		return nil
	},
}

func init() {
	modFlagsCmd.Flags().StringVar(&flagStatusFilter, "status", "", "filter: pending, reviewed or resolved")

	modCmd.AddCommand(modFlagsCmd)
	modCmd.AddCommand(modResolveCmd)
	modCmd.AddCommand(modHideCmd)
	modCmd.AddCommand(modUnhideCmd)
	modCmd.AddCommand(modBanCmd)
	modCmd.AddCommand(modUnbanCmd)
	modCmd.AddCommand(modStatsCmd)
	rootCmd.AddCommand(modCmd)
}
