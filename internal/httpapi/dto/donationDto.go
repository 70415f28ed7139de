package dto

import (
	"time"

	"mealbridge/internal/httpapi/models"
)

// CreateDonationDTO used for POST /api/donations
type CreateDonationDTO struct {
	Title             string    `json:"title" binding:"required"`
	Description       string    `json:"description" binding:"required"`
	CategoryID        string    `json:"category_id" binding:"required,uuid"`
	Quantity          string    `json:"quantity" binding:"required"`
	ExpiryDate        string    `json:"expiry_date" binding:"required"` // YYYY-MM-DD
	PickupWindowStart time.Time `json:"pickup_window_start" binding:"required"`
	PickupWindowEnd   time.Time `json:"pickup_window_end" binding:"required"`
	Condition         string    `json:"condition" binding:"omitempty,oneof=sealed open"`
	StorageType       string    `json:"storage_type" binding:"omitempty,oneof=ambient refrigerated frozen"`
	LocationLat       float64   `json:"location_lat" binding:"required"`
	LocationLng       float64   `json:"location_lng" binding:"required"`
	AddressText       string    `json:"address_text" binding:"required"`
	Images            []string  `json:"images" binding:"max=5"`
}

// UpdateDonationDTO used for PUT /api/donations/:id (partial updates allowed)
type UpdateDonationDTO struct {
	Title             *string    `json:"title,omitempty"`
	Description       *string    `json:"description,omitempty"`
	CategoryID        *string    `json:"category_id,omitempty" binding:"omitempty,uuid"`
	Quantity          *string    `json:"quantity,omitempty"`
	ExpiryDate        *string    `json:"expiry_date,omitempty"`
	PickupWindowStart *time.Time `json:"pickup_window_start,omitempty"`
	PickupWindowEnd   *time.Time `json:"pickup_window_end,omitempty"`
	Condition         *string    `json:"condition,omitempty" binding:"omitempty,oneof=sealed open"`
	StorageType       *string    `json:"storage_type,omitempty" binding:"omitempty,oneof=ambient refrigerated frozen"`
	LocationLat       *float64   `json:"location_lat,omitempty"`
	LocationLng       *float64   `json:"location_lng,omitempty"`
	AddressText       *string    `json:"address_text,omitempty"`
	Images            []string   `json:"images,omitempty" binding:"omitempty,max=5"`
}

// DonationResponse DTO for responses. DistanceKm is only set when the caller
// supplied a device coordinate.
type DonationResponse struct {
	ID                string       `json:"id"`
	DonorID           string       `json:"donor_id"`
	Donor             *ProfileCard `json:"donor,omitempty"`
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	Category          *CategoryDTO `json:"category,omitempty"`
	Quantity          string       `json:"quantity"`
	ExpiryDate        string       `json:"expiry_date"`
	PickupWindowStart time.Time    `json:"pickup_window_start"`
	PickupWindowEnd   time.Time    `json:"pickup_window_end"`
	Condition         string       `json:"condition"`
	StorageType       string       `json:"storage_type"`
	LocationLat       float64      `json:"location_lat"`
	LocationLng       float64      `json:"location_lng"`
	AddressText       string       `json:"address_text"`
	Status            string       `json:"status"`
	Images            []string     `json:"images"`
	IsHidden          bool         `json:"is_hidden"`
	DistanceKm        *float64     `json:"distance_km,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
}

type CategoryDTO struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Icon *string `json:"icon,omitempty"`
}

type PaginatedDonationResponse struct {
	Data       []DonationResponse `json:"data"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	Total      int64              `json:"total"`
	TotalPages int                `json:"total_pages"`
}

func NewPaginatedDonationResponse(data []DonationResponse, total int64, page, pageSize int) *PaginatedDonationResponse {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return &PaginatedDonationResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// FromModelToDonationResponse converts a model row to its response shape.
func FromModelToDonationResponse(d *models.Donation) *DonationResponse {
	resp := &DonationResponse{
		ID:                d.ID,
		DonorID:           d.DonorID,
		Title:             d.Title,
		Description:       d.Description,
		Quantity:          d.Quantity,
		ExpiryDate:        d.ExpiryDate.Format("2006-01-02"),
		PickupWindowStart: d.PickupWindowStart,
		PickupWindowEnd:   d.PickupWindowEnd,
		Condition:         d.Condition,
		StorageType:       d.StorageType,
		LocationLat:       d.LocationLat,
		LocationLng:       d.LocationLng,
		AddressText:       d.AddressText,
		Status:            d.Status,
		Images:            d.Images,
		IsHidden:          d.IsHidden,
		CreatedAt:         d.CreatedAt,
	}
	if d.Donor != nil {
		resp.Donor = FromModelToProfileCard(d.Donor)
	}
	if d.Category != nil {
		resp.Category = &CategoryDTO{ID: d.Category.ID, Name: d.Category.Name, Icon: d.Category.Icon}
	}
	return resp
}
