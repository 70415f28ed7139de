package repository

import (
	"context"
	"fmt"
	"time"

	"mealbridge/internal/httpapi/models"

	"gorm.io/gorm"
)

type ReservationRepository interface {
	Create(ctx context.Context, res *models.Reservation) error
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	GetByDonationAndRecipient(ctx context.Context, donationID, recipientID string) (*models.Reservation, error)
	ListByDonation(ctx context.Context, donationID string) ([]models.Reservation, error)
	ListByRecipient(ctx context.Context, recipientID string) ([]models.Reservation, error)
	UpdateStatusIf(ctx context.Context, id, from, to string, pickupTime *time.Time) (bool, error)
	ListPendingSiblings(ctx context.Context, donationID, excludeID string) ([]models.Reservation, error)
	DeclinePendingSiblings(ctx context.Context, donationID, excludeID string) (int64, error)
	ExistsCompletedLink(ctx context.Context, donationID, userA, userB string) (bool, error)
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) Create(ctx context.Context, res *models.Reservation) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *reservationRepository) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	var res models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Donation").
		Preload("Recipient").
		Where("id = ?", id).
		First(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepository) GetByDonationAndRecipient(ctx context.Context, donationID, recipientID string) (*models.Reservation, error) {
	var res models.Reservation
	err := r.db.WithContext(ctx).
		Where("donation_id = ? AND recipient_id = ?", donationID, recipientID).
		First(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepository) ListByDonation(ctx context.Context, donationID string) ([]models.Reservation, error) {
	var list []models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Recipient").
		Where("donation_id = ?", donationID).
		Order("created_at asc").
		Find(&list).Error
	return list, err
}

func (r *reservationRepository) ListByRecipient(ctx context.Context, recipientID string) ([]models.Reservation, error) {
	var list []models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Donation").
		Preload("Donation.Donor").
		Where("recipient_id = ?", recipientID).
		Order("created_at desc").
		Find(&list).Error
	return list, err
}

// UpdateStatusIf flips a reservation from one status to another, optionally
// persisting an owner-supplied pickup time, and reports whether the row was
// still in the expected source status.
func (r *reservationRepository) UpdateStatusIf(ctx context.Context, id, from, to string, pickupTime *time.Time) (bool, error) {
	updates := map[string]interface{}{"status": to}
	if pickupTime != nil {
		updates["pickup_time"] = pickupTime
	}

	result := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, fmt.Errorf("update reservation status: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ListPendingSiblings returns the other pending reservations on a listing.
// The accepted reservation is excluded by id, so ordering with the approve
// flip does not matter for correctness.
func (r *reservationRepository) ListPendingSiblings(ctx context.Context, donationID, excludeID string) ([]models.Reservation, error) {
	var list []models.Reservation
	err := r.db.WithContext(ctx).
		Where("donation_id = ? AND status = ? AND id <> ?", donationID, models.ReservationPending, excludeID).
		Find(&list).Error
	return list, err
}

func (r *reservationRepository) DeclinePendingSiblings(ctx context.Context, donationID, excludeID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("donation_id = ? AND status = ? AND id <> ?", donationID, models.ReservationPending, excludeID).
		Update("status", models.ReservationDeclined)
	return result.RowsAffected, result.Error
}

// ExistsCompletedLink reports whether a completed reservation ties the two
// users to the donation (either direction); the rating service uses this as
// its eligibility gate.
func (r *reservationRepository) ExistsCompletedLink(ctx context.Context, donationID, userA, userB string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Joins("JOIN donations ON donations.id = reservations.donation_id").
		Where("reservations.donation_id = ? AND reservations.status = ?", donationID, models.ReservationCompleted).
		Where("(reservations.recipient_id = ? AND donations.donor_id = ?) OR (reservations.recipient_id = ? AND donations.donor_id = ?)",
			userA, userB, userB, userA).
		Count(&count).Error
	return count > 0, err
}
