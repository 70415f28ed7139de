package dto

import (
	"time"

	"mealbridge/internal/httpapi/models"
)

// ProfileCard is the public subset of a profile shown on listings, ratings
// and user pages.
type ProfileCard struct {
	ID              string  `json:"id"`
	DisplayName     string  `json:"display_name"`
	Role            string  `json:"role"`
	Neighborhood    *string `json:"neighborhood,omitempty"`
	AvatarURL       *string `json:"avatar_url,omitempty"`
	ReputationScore float64 `json:"reputation_score"`
	ReputationCount int     `json:"reputation_count"`
	IsVerified      bool    `json:"is_verified"`
}

// ProfileResponse is the owner's full view of their profile.
type ProfileResponse struct {
	ProfileCard
	Bio         *string   `json:"bio,omitempty"`
	LocationLat *float64  `json:"location_lat,omitempty"`
	LocationLng *float64  `json:"location_lng,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	IsBanned    bool      `json:"is_banned"`
	CreatedAt   time.Time `json:"created_at"`
}

// UpdateProfileDTO used for PUT /api/me (partial updates allowed)
type UpdateProfileDTO struct {
	DisplayName  *string  `json:"display_name,omitempty"`
	Bio          *string  `json:"bio,omitempty"`
	Neighborhood *string  `json:"neighborhood,omitempty"`
	Phone        *string  `json:"phone,omitempty"`
	AvatarURL    *string  `json:"avatar_url,omitempty"`
	LocationLat  *float64 `json:"location_lat,omitempty"`
	LocationLng  *float64 `json:"location_lng,omitempty"`
}

func (d UpdateProfileDTO) ApplyTo(p *models.Profile) {
	if d.DisplayName != nil {
		p.DisplayName = *d.DisplayName
	}
	if d.Bio != nil {
		p.Bio = d.Bio
	}
	if d.Neighborhood != nil {
		p.Neighborhood = d.Neighborhood
	}
	if d.Phone != nil {
		p.Phone = d.Phone
	}
	if d.AvatarURL != nil {
		p.AvatarURL = d.AvatarURL
	}
	if d.LocationLat != nil {
		p.LocationLat = d.LocationLat
	}
	if d.LocationLng != nil {
		p.LocationLng = d.LocationLng
	}
}

func FromModelToProfileCard(p *models.Profile) *ProfileCard {
	return &ProfileCard{
		ID:              p.ID,
		DisplayName:     p.DisplayName,
		Role:            p.Role,
		Neighborhood:    p.Neighborhood,
		AvatarURL:       p.AvatarURL,
		ReputationScore: p.ReputationScore,
		ReputationCount: p.ReputationCount,
		IsVerified:      p.IsVerified,
	}
}

func FromModelToProfileResponse(p *models.Profile) *ProfileResponse {
	return &ProfileResponse{
		ProfileCard: *FromModelToProfileCard(p),
		Bio:         p.Bio,
		LocationLat: p.LocationLat,
		LocationLng: p.LocationLng,
		Phone:       p.Phone,
		IsBanned:    p.IsBanned,
		CreatedAt:   p.CreatedAt,
	}
}
