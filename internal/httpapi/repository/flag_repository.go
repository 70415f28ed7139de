package repository

import (
	"context"
	"time"

	"mealbridge/internal/httpapi/models"

	"gorm.io/gorm"
)

type FlagRepository interface {
	Create(ctx context.Context, f *models.Flag) error
	GetByID(ctx context.Context, id string) (*models.Flag, error)
	ListByStatus(ctx context.Context, status string) ([]models.Flag, error)
	UpdateStatus(ctx context.Context, id, status, reviewerID string, reviewedAt time.Time) (bool, error)
	CountPending(ctx context.Context) (int64, error)
}

type flagRepository struct {
	db *gorm.DB
}

func NewFlagRepository(db *gorm.DB) FlagRepository {
	return &flagRepository{db: db}
}

func (r *flagRepository) Create(ctx context.Context, f *models.Flag) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *flagRepository) GetByID(ctx context.Context, id string) (*models.Flag, error) {
	var f models.Flag
	if err := r.db.WithContext(ctx).Preload("Reporter").Where("id = ?", id).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *flagRepository) ListByStatus(ctx context.Context, status string) ([]models.Flag, error) {
	q := r.db.WithContext(ctx).Preload("Reporter")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var list []models.Flag
	err := q.Order("created_at asc").Find(&list).Error
	return list, err
}

// UpdateStatus transitions the queue entry and records who reviewed it and
// when. Only pending or reviewed flags can still move.
func (r *flagRepository) UpdateStatus(ctx context.Context, id, status, reviewerID string, reviewedAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Flag{}).
		Where("id = ? AND status <> ?", id, models.FlagResolved).
		Updates(map[string]interface{}{
			"status":      status,
			"reviewed_by": reviewerID,
			"reviewed_at": reviewedAt,
		})
	return result.RowsAffected > 0, result.Error
}

func (r *flagRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Flag{}).
		Where("status = ?", models.FlagPending).
		Count(&count).Error
	return count, err
}
