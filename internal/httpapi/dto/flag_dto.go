package dto

import (
	"time"

	"mealbridge/internal/httpapi/models"
)

// CreateFlagDTO used for POST /api/flags
type CreateFlagDTO struct {
	TargetType  string  `json:"target_type" binding:"required,oneof=donation user"`
	TargetID    string  `json:"target_id" binding:"required,uuid"`
	Reason      string  `json:"reason" binding:"required,oneof=safety expired suspect spam inappropriate"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=2000"`
}

type FlagResponse struct {
	ID          string       `json:"id"`
	ReporterID  string       `json:"reporter_id"`
	Reporter    *ProfileCard `json:"reporter,omitempty"`
	TargetType  string       `json:"target_type"`
	TargetID    string       `json:"target_id"`
	Reason      string       `json:"reason"`
	Description *string      `json:"description,omitempty"`
	Status      string       `json:"status"`
	ReviewedBy  *string      `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time   `json:"reviewed_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// AdminStats backs the moderation dashboard header counts.
type AdminStats struct {
	TotalProfiles      int64 `json:"total_profiles"`
	TotalDonations     int64 `json:"total_donations"`
	AvailableDonations int64 `json:"available_donations"`
	PendingFlags       int64 `json:"pending_flags"`
}

func FromModelToFlagResponse(f *models.Flag) *FlagResponse {
	resp := &FlagResponse{
		ID:          f.ID,
		ReporterID:  f.ReporterID,
		TargetType:  f.TargetType,
		TargetID:    f.TargetID,
		Reason:      f.Reason,
		Description: f.Description,
		Status:      f.Status,
		ReviewedBy:  f.ReviewedBy,
		ReviewedAt:  f.ReviewedAt,
		CreatedAt:   f.CreatedAt,
	}
	if f.Reporter != nil {
		resp.Reporter = FromModelToProfileCard(f.Reporter)
	}
	return resp
}
