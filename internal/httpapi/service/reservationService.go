package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"mealbridge/internal/httpapi/dto"
	"mealbridge/internal/httpapi/models"
	"mealbridge/internal/httpapi/repository"

	"gorm.io/gorm"
)

const defaultAcceptMessage = "Your reservation has been accepted."

// ReservationService coordinates the reservation/listing state machines and
// their notification fan-out. Every multi-write operation runs inside a single
// transaction and starts with a conditional status flip, so a lost race rolls
// the whole operation back instead of leaving the listing half-updated.
type ReservationService interface {
	Create(ctx context.Context, recipientID string, req dto.CreateReservationDTO) (*dto.ReservationResponse, error)
	Approve(ctx context.Context, ownerID, reservationID string, decision dto.DecisionDTO) error
	Decline(ctx context.Context, ownerID, reservationID string, message string) error
	Complete(ctx context.Context, ownerID, reservationID string) error
	Cancel(ctx context.Context, recipientID, reservationID string) error
	ListForDonation(ctx context.Context, ownerID, donationID string) ([]dto.ReservationResponse, error)
	ListMine(ctx context.Context, recipientID string) ([]dto.ReservationResponse, error)
}

type reservationService struct {
	tx     repository.TxManager
	repos  repository.Repos
	logger *slog.Logger
}

func NewReservationService(tx repository.TxManager, repos repository.Repos, logger *slog.Logger) ReservationService {
	return &reservationService{tx: tx, repos: repos, logger: logger}
}

// Create inserts a pending reservation against an available listing and
// notifies the owner of the new request.
func (s *reservationService) Create(ctx context.Context, recipientID string, req dto.CreateReservationDTO) (*dto.ReservationResponse, error) {
	var created *models.Reservation

	err := s.tx.Do(ctx, func(r repository.Repos) error {
		donation, err := r.Donations.GetByID(ctx, req.DonationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if donation.IsHidden {
			return ErrNotFound
		}
		if donation.DonorID == recipientID {
			return fmt.Errorf("%w: cannot reserve your own donation", ErrValidation)
		}
		if donation.Status != models.DonationAvailable {
			return fmt.Errorf("%w: donation is not available", ErrConflict)
		}

		res := &models.Reservation{
			DonationID:  donation.ID,
			RecipientID: recipientID,
			Status:      models.ReservationPending,
			Message:     req.Message,
			PickupTime:  req.PickupTime,
		}
		if err := r.Reservations.Create(ctx, res); err != nil {
			if repository.IsUniqueViolation(err) {
				return fmt.Errorf("%w: you already requested this donation", ErrConflict)
			}
			return err
		}

		notif := &models.Notification{
			UserID:  donation.DonorID,
			Type:    models.NotifReservationRequest,
			Title:   "New reservation request",
			Message: fmt.Sprintf("Someone wants to reserve your %q", donation.Title),
		}
		if err := r.Notifications.Create(ctx, notif); err != nil {
			return err
		}

		created = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReservationResponse(created), nil
}

// Approve accepts one pending reservation, claims the listing, messages and
// notifies the winner, then declines and notifies every other pending
// suitor. The listing claim is conditional on it still being available, so
// two concurrent approvals cannot both win.
func (s *reservationService) Approve(ctx context.Context, ownerID, reservationID string, decision dto.DecisionDTO) error {
	return s.tx.Do(ctx, func(r repository.Repos) error {
		res, donation, err := s.loadForOwner(ctx, r, ownerID, reservationID)
		if err != nil {
			return err
		}
		if res.Status != models.ReservationPending {
			return fmt.Errorf("%w: reservation is not pending", ErrConflict)
		}

		claimed, err := r.Donations.UpdateStatusIf(ctx, donation.ID, models.DonationAvailable, models.DonationReserved)
		if err != nil {
			return err
		}
		if !claimed {
			return fmt.Errorf("%w: donation is no longer available", ErrConflict)
		}

		accepted, err := r.Reservations.UpdateStatusIf(ctx, res.ID, models.ReservationPending, models.ReservationAccepted, decision.PickupTime)
		if err != nil {
			return err
		}
		if !accepted {
			return fmt.Errorf("%w: reservation is not pending", ErrConflict)
		}

		content := strings.TrimSpace(decision.Message)
		if content == "" {
			content = defaultAcceptMessage
		}
		msg := &models.Message{
			DonationID:  donation.ID,
			SenderID:    ownerID,
			RecipientID: res.RecipientID,
			Content:     content,
		}
		if err := r.Messages.Create(ctx, msg); err != nil {
			return err
		}

		notif := &models.Notification{
			UserID:  res.RecipientID,
			Type:    models.NotifReservationAccepted,
			Title:   "Reservation accepted",
			Message: "Your reservation was accepted. Check messages for pickup details.",
		}
		if err := r.Notifications.Create(ctx, notif); err != nil {
			return err
		}

		siblings, err := r.Reservations.ListPendingSiblings(ctx, donation.ID, res.ID)
		if err != nil {
			return err
		}
		if len(siblings) == 0 {
			return nil
		}

		if _, err := r.Reservations.DeclinePendingSiblings(ctx, donation.ID, res.ID); err != nil {
			return err
		}

		declined := make([]models.Notification, 0, len(siblings))
		for _, sib := range siblings {
			declined = append(declined, models.Notification{
				UserID:  sib.RecipientID,
				Type:    models.NotifReservationDeclined,
				Title:   "Reservation unavailable",
				Message: "Another request was accepted for this donation.",
			})
		}
		return r.Notifications.CreateBatch(ctx, declined)
	})
}

// Decline rejects a single pending reservation. The listing stays available
// so the remaining requests can still be considered.
func (s *reservationService) Decline(ctx context.Context, ownerID, reservationID string, message string) error {
	return s.tx.Do(ctx, func(r repository.Repos) error {
		res, donation, err := s.loadForOwner(ctx, r, ownerID, reservationID)
		if err != nil {
			return err
		}

		declined, err := r.Reservations.UpdateStatusIf(ctx, res.ID, models.ReservationPending, models.ReservationDeclined, nil)
		if err != nil {
			return err
		}
		if !declined {
			return fmt.Errorf("%w: reservation is not pending", ErrConflict)
		}

		// Courtesy message only when the donor actually wrote one.
		if content := strings.TrimSpace(message); content != "" {
			msg := &models.Message{
				DonationID:  donation.ID,
				SenderID:    ownerID,
				RecipientID: res.RecipientID,
				Content:     content,
			}
			if err := r.Messages.Create(ctx, msg); err != nil {
				return err
			}
		}

		notif := &models.Notification{
			UserID:  res.RecipientID,
			Type:    models.NotifReservationDeclined,
			Title:   "Reservation declined",
			Message: "Your reservation request was declined.",
		}
		return r.Notifications.Create(ctx, notif)
	})
}

// Complete marks an accepted reservation as picked up. Terminal for both the
// reservation and the listing.
func (s *reservationService) Complete(ctx context.Context, ownerID, reservationID string) error {
	return s.tx.Do(ctx, func(r repository.Repos) error {
		res, donation, err := s.loadForOwner(ctx, r, ownerID, reservationID)
		if err != nil {
			return err
		}

		completed, err := r.Reservations.UpdateStatusIf(ctx, res.ID, models.ReservationAccepted, models.ReservationCompleted, nil)
		if err != nil {
			return err
		}
		if !completed {
			return fmt.Errorf("%w: reservation is not accepted", ErrConflict)
		}

		pickedUp, err := r.Donations.UpdateStatusIf(ctx, donation.ID, models.DonationReserved, models.DonationPickedUp)
		if err != nil {
			return err
		}
		if !pickedUp {
			return fmt.Errorf("%w: donation is not reserved", ErrConflict)
		}

		notif := &models.Notification{
			UserID:  res.RecipientID,
			Type:    models.NotifReservationCompleted,
			Title:   "Donation received",
			Message: "The donation was marked as received. Thank you!",
		}
		return r.Notifications.Create(ctx, notif)
	})
}

// Cancel lets a recipient withdraw their own pending or accepted
// reservation. Canceling an accepted reservation reopens the listing and
// tells the donor.
func (s *reservationService) Cancel(ctx context.Context, recipientID, reservationID string) error {
	return s.tx.Do(ctx, func(r repository.Repos) error {
		res, err := r.Reservations.GetByID(ctx, reservationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if res.RecipientID != recipientID {
			return ErrForbidden
		}

		switch res.Status {
		case models.ReservationPending:
			canceled, err := r.Reservations.UpdateStatusIf(ctx, res.ID, models.ReservationPending, models.ReservationCanceled, nil)
			if err != nil {
				return err
			}
			if !canceled {
				return fmt.Errorf("%w: reservation changed state", ErrConflict)
			}
			return nil

		case models.ReservationAccepted:
			canceled, err := r.Reservations.UpdateStatusIf(ctx, res.ID, models.ReservationAccepted, models.ReservationCanceled, nil)
			if err != nil {
				return err
			}
			if !canceled {
				return fmt.Errorf("%w: reservation changed state", ErrConflict)
			}
			// Reopen the listing for the other suitors.
			if _, err := r.Donations.UpdateStatusIf(ctx, res.DonationID, models.DonationReserved, models.DonationAvailable); err != nil {
				return err
			}

			donation, err := r.Donations.GetByID(ctx, res.DonationID)
			if err != nil {
				return err
			}
			notif := &models.Notification{
				UserID:  donation.DonorID,
				Type:    models.NotifReservationCanceled,
				Title:   "Reservation canceled",
				Message: fmt.Sprintf("The accepted reservation on %q was canceled by the recipient.", donation.Title),
			}
			return r.Notifications.Create(ctx, notif)

		default:
			return fmt.Errorf("%w: reservation is already settled", ErrConflict)
		}
	})
}

// ListForDonation returns every reservation on a listing to its owner.
func (s *reservationService) ListForDonation(ctx context.Context, ownerID, donationID string) ([]dto.ReservationResponse, error) {
	donation, err := s.repos.Donations.GetByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if donation.DonorID != ownerID {
		return nil, ErrForbidden
	}

	list, err := s.repos.Reservations.ListByDonation(ctx, donationID)
	if err != nil {
		return nil, err
	}
	return toReservationResponses(list), nil
}

func (s *reservationService) ListMine(ctx context.Context, recipientID string) ([]dto.ReservationResponse, error) {
	list, err := s.repos.Reservations.ListByRecipient(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	return toReservationResponses(list), nil
}

// loadForOwner resolves a reservation plus its donation and verifies the
// caller owns the donation.
func (s *reservationService) loadForOwner(ctx context.Context, r repository.Repos, ownerID, reservationID string) (*models.Reservation, *models.Donation, error) {
	res, err := r.Reservations.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	donation, err := r.Donations.GetByID(ctx, res.DonationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	if donation.DonorID != ownerID {
		return nil, nil, ErrForbidden
	}
	return res, donation, nil
}

func toReservationResponses(list []models.Reservation) []dto.ReservationResponse {
	out := make([]dto.ReservationResponse, 0, len(list))
	for i := range list {
		out = append(out, *dto.FromModelToReservationResponse(&list[i]))
	}
	return out
}
