package command

import (
	"fmt"
	"strings"

	"mealbridge/internal/httpapi/dto"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	reserveMessage  string
	decisionMessage string
)

var reservationCmd = &cobra.Command{
	Use:   "reservation",
	Short: "Reservation lifecycle commands",
	Long:  `Request donations, and as a donor approve, decline or complete requests`,
}

var reserveCmd = &cobra.Command{
	Use:   "request [donation-id]",
	Short: "Request a donation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := authedClient()
		if err != nil {
			return err
		}

		req := dto.CreateReservationDTO{DonationID: args[0]}
		if reserveMessage != "" {
			req.Message = &reserveMessage
		}

		reservation, err := httpClient.CreateReservation(req)
		if err != nil {
			return fmt.Errorf("failed to request donation: %w", err)
		}

		color.Green("Request sent (reservation %s). The donor will be notified.", reservation.ID)
		return nil
	},
}

var approveCmd = &cobra.Command{
	Use:   "approve [reservation-id]",
	Short: "Approve a pending request on your listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := authedClient()
		if err != nil {
			return err
		}

		if err := httpClient.ApproveReservation(args[0], dto.DecisionDTO{Message: decisionMessage}); err != nil {
			return fmt.Errorf("failed to approve: %w", err)
		}
		color.Green("Reservation approved. Other pending requests were declined.")
		return nil
	},
}

var declineCmd = &cobra.Command{
	Use:   "decline [reservation-id]",
	Short: "Decline a pending request on your listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := authedClient()
		if err != nil {
			return err
		}

		if err := httpClient.DeclineReservation(args[0], dto.DecisionDTO{Message: decisionMessage}); err != nil {
			return fmt.Errorf("failed to decline: %w", err)
		}
		fmt.Println("Reservation declined. The listing stays available.")
		return nil
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete [reservation-id]",
	Short: "Mark an accepted reservation as picked up",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := authedClient()
		if err != nil {
			return err
		}

		if err := httpClient.CompleteReservation(args[0]); err != nil {
			return fmt.Errorf("failed to complete: %w", err)
		}
		color.Green("Pickup confirmed. Both sides can now rate each other.")
		return nil
	},
}

var cancelReservationCmd = &cobra.Command{
	Use:   "cancel [reservation-id]",
	Short: "Withdraw your own reservation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := authedClient()
		if err != nil {
			return err
		}

		if err := httpClient.CancelReservation(args[0]); err != nil {
			return fmt.Errorf("failed to cancel: %w", err)
		}
		fmt.Println("Reservation canceled.")
		return nil
	},
}

var myReservationsCmd = &cobra.Command{
	Use:   "mine",
	Short: "List your reservations",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := authedClient()
		if err != nil {
			return err
		}

		reservations, err := httpClient.MyReservations()
		if err != nil {
			return fmt.Errorf("failed to list reservations: %w", err)
		}

		if len(reservations) == 0 {
			fmt.Println("No reservations yet.")
			return nil
		}

		for _, r := range reservations {
			fmt.Printf("ID: %s\n", r.ID)
			fmt.Printf("Status: %s\n", r.Status)
			if r.Donation != nil {
				fmt.Printf("Donation: %s\n", r.Donation.Title)
			}
			if r.PickupTime != nil {
				fmt.Printf("Pickup: %s\n", r.PickupTime.Format("Jan 2 15:04"))
			}
			fmt.Println(strings.Repeat("-", 50))
		}
		return nil
	},
}

func init() {
	reserveCmd.Flags().StringVar(&reserveMessage, "message", "", "message to the donor")
	approveCmd.Flags().StringVar(&decisionMessage, "message", "", "message to the recipient")
	declineCmd.Flags().StringVar(&decisionMessage, "message", "", "courtesy message to the recipient")

	reservationCmd.AddCommand(reserveCmd)
	reservationCmd.AddCommand(approveCmd)
	reservationCmd.AddCommand(declineCmd)
	reservationCmd.AddCommand(completeCmd)
	reservationCmd.AddCommand(cancelReservationCmd)
	reservationCmd.AddCommand(myReservationsCmd)
	rootCmd.AddCommand(reservationCmd)
}
