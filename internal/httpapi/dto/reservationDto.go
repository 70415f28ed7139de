package dto

import (
	"time"

	"mealbridge/internal/httpapi/models"
)

// CreateReservationDTO used for POST /api/reservations
type CreateReservationDTO struct {
	DonationID string     `json:"donation_id" binding:"required,uuid"`
	Message    *string    `json:"message,omitempty"`
	PickupTime *time.Time `json:"pickup_time,omitempty"`
}

// DecisionDTO carries the donor's approve payload: an optional message to the
// recipient and an optional confirmed pickup time.
type DecisionDTO struct {
	Message    string     `json:"message,omitempty"`
	PickupTime *time.Time `json:"pickup_time,omitempty"`
}

type ReservationResponse struct {
	ID          string            `json:"id"`
	DonationID  string            `json:"donation_id"`
	Donation    *DonationResponse `json:"donation,omitempty"`
	RecipientID string            `json:"recipient_id"`
	Recipient   *ProfileCard      `json:"recipient,omitempty"`
	Status      string            `json:"status"`
	Message     *string           `json:"message,omitempty"`
	PickupTime  *time.Time        `json:"pickup_time,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func FromModelToReservationResponse(r *models.Reservation) *ReservationResponse {
	resp := &ReservationResponse{
		ID:          r.ID,
		DonationID:  r.DonationID,
		RecipientID: r.RecipientID,
		Status:      r.Status,
		Message:     r.Message,
		PickupTime:  r.PickupTime,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.Donation != nil {
		resp.Donation = FromModelToDonationResponse(r.Donation)
	}
	if r.Recipient != nil {
		resp.Recipient = FromModelToProfileCard(r.Recipient)
	}
	return resp
}
