package dto

import (
	"time"

	"mealbridge/internal/httpapi/models"
)

// SendMessageDTO used for POST /api/donations/:id/messages
type SendMessageDTO struct {
	RecipientID string `json:"recipient_id" binding:"required,uuid"`
	Content     string `json:"content" binding:"required,max=4000"`
}

type MessageResponse struct {
	ID          string       `json:"id"`
	DonationID  string       `json:"donation_id"`
	SenderID    string       `json:"sender_id"`
	Sender      *ProfileCard `json:"sender,omitempty"`
	RecipientID string       `json:"recipient_id"`
	Content     string       `json:"content"`
	IsRead      bool         `json:"is_read"`
	CreatedAt   time.Time    `json:"created_at"`
}

func FromModelToMessageResponse(m *models.Message) *MessageResponse {
	resp := &MessageResponse{
		ID:          m.ID,
		DonationID:  m.DonationID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		IsRead:      m.IsRead,
		CreatedAt:   m.CreatedAt,
	}
	if m.Sender != nil {
		resp.Sender = FromModelToProfileCard(m.Sender)
	}
	return resp
}
