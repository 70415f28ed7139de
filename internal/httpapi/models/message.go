package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message belongs to a donation-scoped thread between the donor and one
// counterpart recipient.
type Message struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	DonationID  string    `json:"donation_id" gorm:"type:uuid;not null;index"`
	SenderID    string    `json:"sender_id" gorm:"type:uuid;not null;index"`
	RecipientID string    `json:"recipient_id" gorm:"type:uuid;not null;index"`
	Content     string    `json:"content" gorm:"not null;type:text"`
	IsRead      bool      `json:"is_read" gorm:"default:false;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	Donation *Donation `json:"donation,omitempty" gorm:"foreignKey:DonationID;constraint:OnDelete:CASCADE;"`
	Sender   *Profile  `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}

func (Message) TableName() string {
	return "messages"
}
