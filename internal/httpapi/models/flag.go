package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	FlagTargetDonation = "donation"
	FlagTargetUser     = "user"
)

const (
	FlagReasonSafety        = "safety"
	FlagReasonExpired       = "expired"
	FlagReasonSuspect       = "suspect"
	FlagReasonSpam          = "spam"
	FlagReasonInappropriate = "inappropriate"
)

const (
	FlagPending  = "pending"
	FlagReviewed = "reviewed"
	FlagResolved = "resolved"
)

// Flag is a moderation queue entry. Resolving a flag never mutates its target;
// hide/ban follow-ups are separate explicit moderator calls.
type Flag struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid"`
	ReporterID  string     `json:"reporter_id" gorm:"type:uuid;not null;index"`
	TargetType  string     `json:"target_type" gorm:"not null"`
	TargetID    string     `json:"target_id" gorm:"type:uuid;not null;index"`
	Reason      string     `json:"reason" gorm:"not null"`
	Description *string    `json:"description,omitempty"`
	Status      string     `json:"status" gorm:"default:'pending';not null;index"`
	ReviewedBy  *string    `json:"reviewed_by,omitempty" gorm:"type:uuid"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	Reporter *Profile `json:"reporter,omitempty" gorm:"foreignKey:ReporterID"`
}

func (f *Flag) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return
}

func (Flag) TableName() string {
	return "flags"
}
