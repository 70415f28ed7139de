package command

import (
	"fmt"
	"strings"

	"mealbridge/cmd/cli/command/client"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	browseCategory string
	browseSealed   bool
	browseSort     string
	browseRadius   float64
	browseLat      float64
	browseLng      float64
	browsePage     int
)

var donationCmd = &cobra.Command{
	Use:   "donation",
	Short: "Donation board commands",
	Long:  `Browse the board, view a listing and see the requests on your own listings`,
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse available donations",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient := client.NewHTTPClient(apiURL)

		params := client.BrowseParams{
			Category: browseCategory,
			Sealed:   browseSealed,
			Sort:     browseSort,
			RadiusKm: browseRadius,
			Page:     browsePage,
		}
		if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng") {
			params.Lat = &browseLat
			params.Lng = &browseLng
		}

		page, err := httpClient.BrowseDonations(params)
		if err != nil {
			return fmt.Errorf("failed to browse donations: %w", err)
		}

		if len(page.Data) == 0 {
			fmt.Println("No donations found.")
			return nil
		}

		fmt.Printf("Page %d/%d (%d total):\n\n", page.Page, page.TotalPages, page.Total)
		for _, d := range page.Data {
			color.Cyan("%s", d.Title)
			fmt.Printf("ID: %s\n", d.ID)
			if d.Category != nil {
				fmt.Printf("Category: %s\n", d.Category.Name)
			}
			fmt.Printf("Quantity: %s\n", d.Quantity)
			fmt.Printf("Expires: %s\n", d.ExpiryDate)
			fmt.Printf("Pickup: %s\n", d.AddressText)
			if d.DistanceKm != nil {
				fmt.Printf("Distance: %.1f km\n", *d.DistanceKm)
			}
			fmt.Println(strings.Repeat("-", 50))
		}
		return nil
	},
}

var showDonationCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one donation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient := client.NewHTTPClient(apiURL)

		d, err := httpClient.GetDonation(args[0])
		if err != nil {
			return fmt.Errorf("failed to get donation: %w", err)
		}

		color.Cyan("%s", d.Title)
		fmt.Printf("Status: %s\n", d.Status)
		fmt.Printf("Description: %s\n", d.Description)
		fmt.Printf("Quantity: %s\n", d.Quantity)
		fmt.Printf("Condition: %s, storage: %s\n", d.Condition, d.StorageType)
		fmt.Printf("Expires: %s\n", d.ExpiryDate)
		fmt.Printf("Pickup window: %s - %s\n",
			d.PickupWindowStart.Format("Jan 2 15:04"), d.PickupWindowEnd.Format("Jan 2 15:04"))
		fmt.Printf("Address: %s\n", d.AddressText)
		if d.Donor != nil {
			fmt.Printf("Donor: %s (%.1f stars, %d ratings)\n",
				d.Donor.DisplayName, d.Donor.ReputationScore, d.Donor.ReputationCount)
		}
		return nil
	},
}

var donationRequestsCmd = &cobra.Command{
	Use:   "requests [donation-id]",
	Short: "List the reservation requests on your listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := authedClient()
		if err != nil {
			return err
		}

		reservations, err := httpClient.ListDonationReservations(args[0])
		if err != nil {
			return fmt.Errorf("failed to list requests: %w", err)
		}

		if len(reservations) == 0 {
			fmt.Println("No requests yet.")
			return nil
		}

		for _, r := range reservations {
			statusColor := color.New(color.FgYellow)
			switch r.Status {
			case "accepted", "completed":
				statusColor = color.New(color.FgGreen)
			case "declined", "canceled":
				statusColor = color.New(color.FgRed)
			}

			fmt.Printf("ID: %s\n", r.ID)
			statusColor.Printf("Status: %s\n", r.Status)
			if r.Recipient != nil {
				fmt.Printf("From: %s\n", r.Recipient.DisplayName)
			}
			if r.Message != nil {
				fmt.Printf("Message: %s\n", *r.Message)
			}
			fmt.Println(strings.Repeat("-", 50))
		}
		return nil
	},
}

func init() {
	browseCmd.Flags().StringVar(&browseCategory, "category", "", "filter by category name")
	browseCmd.Flags().BoolVar(&browseSealed, "sealed", false, "sealed items only")
	browseCmd.Flags().StringVar(&browseSort, "sort", "newest", "sort: newest, expiry or distance")
	browseCmd.Flags().Float64Var(&browseRadius, "radius", 0, "radius filter in km (needs --lat/--lng)")
	browseCmd.Flags().Float64Var(&browseLat, "lat", 0, "your latitude")
	browseCmd.Flags().Float64Var(&browseLng, "lng", 0, "your longitude")
	browseCmd.Flags().IntVar(&browsePage, "page", 1, "page number")

	donationCmd.AddCommand(browseCmd)
	donationCmd.AddCommand(showDonationCmd)
	donationCmd.AddCommand(donationRequestsCmd)
	rootCmd.AddCommand(donationCmd)
}
