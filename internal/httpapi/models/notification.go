package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification types emitted by lifecycle, rating and moderation transitions.
const (
	NotifReservationRequest   = "reservation_request"
	NotifReservationAccepted  = "reservation_accepted"
	NotifReservationDeclined  = "reservation_declined"
	NotifReservationCompleted = "reservation_completed"
	NotifReservationCanceled  = "reservation_canceled"
	NotifRatingReceived       = "rating_received"
	NotifListingHidden        = "listing_hidden"
)

type Notification struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	UserID      string    `json:"user_id" gorm:"type:uuid;not null;index"`
	Type        string    `json:"type" gorm:"not null"`
	Title       string    `json:"title" gorm:"not null"`
	Message     string    `json:"message" gorm:"not null"`
	IsRead      bool      `json:"is_read" gorm:"default:false;not null"`
	IsEmailSent bool      `json:"is_email_sent" gorm:"default:false;not null;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	User *Profile `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return
}

func (Notification) TableName() string {
	return "notifications"
}
