package repository

import (
	"context"

	"mealbridge/internal/httpapi/models"

	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	ListThread(ctx context.Context, donationID, userA, userB string) ([]models.Message, error)
	MarkThreadRead(ctx context.Context, donationID, readerID string) error
	CountUnread(ctx context.Context, userID string) (int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *models.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// ListThread returns the conversation between two users scoped to one
// donation, oldest first.
func (r *messageRepository) ListThread(ctx context.Context, donationID, userA, userB string) ([]models.Message, error) {
	var list []models.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("donation_id = ?", donationID).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userA, userB, userB, userA).
		Order("created_at asc").
		Find(&list).Error
	return list, err
}

func (r *messageRepository) MarkThreadRead(ctx context.Context, donationID, readerID string) error {
	return r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("donation_id = ? AND recipient_id = ? AND is_read = false", donationID, readerID).
		Update("is_read", true).Error
}

func (r *messageRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("recipient_id = ? AND is_read = false", userID).
		Count(&count).Error
	return count, err
}
