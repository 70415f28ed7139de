package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating is a 1-5 score left after a completed reservation. The (donation,
// rater, rated) triple is unique and rater != rated; both are enforced in the
// schema as well as in the rating service.
type Rating struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid"`
	DonationID string    `json:"donation_id" gorm:"type:uuid;not null;index;uniqueIndex:uq_rating_triple"`
	RaterID    string    `json:"rater_id" gorm:"type:uuid;not null;uniqueIndex:uq_rating_triple"`
	RatedID    string    `json:"rated_id" gorm:"type:uuid;not null;index;uniqueIndex:uq_rating_triple"`
	Rating     int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment    *string   `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	Donation *Donation `json:"donation,omitempty" gorm:"foreignKey:DonationID;constraint:OnDelete:CASCADE;"`
	Rater    *Profile  `json:"rater,omitempty" gorm:"foreignKey:RaterID"`
}

func (r *Rating) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

func (Rating) TableName() string {
	return "ratings"
}
