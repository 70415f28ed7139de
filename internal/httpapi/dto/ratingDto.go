package dto

import (
	"time"

	"mealbridge/internal/httpapi/models"
)

// CreateRatingDTO used for POST /api/ratings
type CreateRatingDTO struct {
	DonationID string  `json:"donation_id" binding:"required,uuid"`
	RatedID    string  `json:"rated_id" binding:"required,uuid"`
	Rating     int     `json:"rating" binding:"required,min=1,max=5"`
	Comment    *string `json:"comment,omitempty" binding:"omitempty,max=2000"`
}

type RatingResponse struct {
	ID         string       `json:"id"`
	DonationID string       `json:"donation_id"`
	RaterID    string       `json:"rater_id"`
	Rater      *ProfileCard `json:"rater,omitempty"`
	RatedID    string       `json:"rated_id"`
	Rating     int          `json:"rating"`
	Comment    *string      `json:"comment,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

// EligibilityResponse answers "may this user still leave a review here".
type EligibilityResponse struct {
	Eligible      bool    `json:"eligible"`
	CounterpartID *string `json:"counterpart_id,omitempty"`
	AlreadyRated  bool    `json:"already_rated"`
}

func FromModelToRatingResponse(r *models.Rating) *RatingResponse {
	resp := &RatingResponse{
		ID:         r.ID,
		DonationID: r.DonationID,
		RaterID:    r.RaterID,
		RatedID:    r.RatedID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
	if r.Rater != nil {
		resp.Rater = FromModelToProfileCard(r.Rater)
	}
	return resp
}
