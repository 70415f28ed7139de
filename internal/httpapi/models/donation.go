package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Donation lifecycle statuses. The happy path is available -> reserved ->
// picked_up; canceled and expired are reachable from available/reserved via
// owner action, moderation, or the expiry sweeper.
const (
	DonationAvailable = "available"
	DonationReserved  = "reserved"
	DonationPickedUp  = "picked_up"
	DonationCanceled  = "canceled"
	DonationExpired   = "expired"
)

const (
	ConditionSealed = "sealed"
	ConditionOpen   = "open"
)

const (
	StorageAmbient      = "ambient"
	StorageRefrigerated = "refrigerated"
	StorageFrozen       = "frozen"
)

type Donation struct {
	ID                string         `json:"id" gorm:"primaryKey;type:uuid"`
	DonorID           string         `json:"donor_id" gorm:"type:uuid;not null;index"`
	Title             string         `json:"title" gorm:"not null"`
	Description       string         `json:"description" gorm:"not null;type:text"`
	CategoryID        string         `json:"category_id" gorm:"type:uuid;not null;index"`
	Quantity          string         `json:"quantity" gorm:"not null"`
	ExpiryDate        time.Time      `json:"expiry_date" gorm:"type:date;not null;index"`
	PickupWindowStart time.Time      `json:"pickup_window_start" gorm:"not null"`
	PickupWindowEnd   time.Time      `json:"pickup_window_end" gorm:"not null"`
	Condition         string         `json:"condition" gorm:"default:'sealed';not null"`
	StorageType       string         `json:"storage_type" gorm:"default:'ambient';not null"`
	LocationLat       float64        `json:"location_lat" gorm:"not null"`
	LocationLng       float64        `json:"location_lng" gorm:"not null"`
	AddressText       string         `json:"address_text" gorm:"not null"`
	Status            string         `json:"status" gorm:"default:'available';not null;index"`
	Images            pq.StringArray `json:"images" gorm:"type:text[]"`
	IsHidden          bool           `json:"is_hidden" gorm:"default:false;not null"`
	CreatedAt         time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time      `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Donor    *Profile  `json:"donor,omitempty" gorm:"foreignKey:DonorID"`
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

func (d *Donation) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return
}

func (Donation) TableName() string {
	return "donations"
}
