package models

import "time"

// Profile rows share their id with the external auth identity, so there is no
// BeforeCreate hook here: the row is created with the id the identity provider
// issued.
type Profile struct {
	ID              string    `json:"id" gorm:"primaryKey;type:uuid"`
	DisplayName     string    `json:"display_name" gorm:"not null"`
	Role            string    `json:"role" gorm:"default:'recipient';not null"` // donor, recipient, ngo, admin (advisory for donate/reserve, binding for moderation)
	Bio             *string   `json:"bio,omitempty"`
	LocationLat     *float64  `json:"location_lat,omitempty"`
	LocationLng     *float64  `json:"location_lng,omitempty"`
	Neighborhood    *string   `json:"neighborhood,omitempty"`
	Phone           *string   `json:"phone,omitempty"`
	AvatarURL       *string   `json:"avatar_url,omitempty"`
	ReputationScore float64   `json:"reputation_score" gorm:"default:0;not null"`
	ReputationCount int       `json:"reputation_count" gorm:"default:0;not null"`
	IsVerified      bool      `json:"is_verified" gorm:"default:false;not null"`
	IsBanned        bool      `json:"is_banned" gorm:"default:false;not null"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

const (
	RoleDonor     = "donor"
	RoleRecipient = "recipient"
	RoleNGO       = "ngo"
	RoleAdmin     = "admin"
)

// IsModerator reports whether the profile may act on the moderation surface.
func (p *Profile) IsModerator() bool {
	return p.Role == RoleAdmin || p.Role == RoleNGO
}

func (Profile) TableName() string {
	return "profiles"
}
