package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reservation statuses. pending -> accepted|declined via owner decision,
// accepted -> completed|canceled. declined, completed and canceled are terminal.
const (
	ReservationPending   = "pending"
	ReservationAccepted  = "accepted"
	ReservationDeclined  = "declined"
	ReservationCompleted = "completed"
	ReservationCanceled  = "canceled"
)

type Reservation struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid"`
	DonationID  string     `json:"donation_id" gorm:"type:uuid;not null;index;uniqueIndex:uq_reservation_donation_recipient"`
	RecipientID string     `json:"recipient_id" gorm:"type:uuid;not null;index;uniqueIndex:uq_reservation_donation_recipient"`
	Status      string     `json:"status" gorm:"default:'pending';not null;index"`
	Message     *string    `json:"message,omitempty"`
	PickupTime  *time.Time `json:"pickup_time,omitempty"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Donation  *Donation `json:"donation,omitempty" gorm:"foreignKey:DonationID;constraint:OnDelete:CASCADE;"`
	Recipient *Profile  `json:"recipient,omitempty" gorm:"foreignKey:RecipientID"`
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

func (Reservation) TableName() string {
	return "reservations"
}
