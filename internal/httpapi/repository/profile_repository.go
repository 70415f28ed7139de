package repository

import (
	"context"

	"mealbridge/internal/httpapi/models"

	"gorm.io/gorm"
)

type ProfileRepository interface {
	Create(ctx context.Context, p *models.Profile) error
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	Update(ctx context.Context, p *models.Profile) error
	SetBanned(ctx context.Context, id string, banned bool) error
	UpdateReputation(ctx context.Context, id string, score float64, count int64) error
	Count(ctx context.Context) (int64, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, p *models.Profile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	var p models.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Update(ctx context.Context, p *models.Profile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *profileRepository) SetBanned(ctx context.Context, id string, banned bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", id).
		Update("is_banned", banned)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *profileRepository) UpdateReputation(ctx context.Context, id string, score float64, count int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reputation_score": score,
			"reputation_count": count,
		}).Error
}

func (r *profileRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Profile{}).Count(&count).Error
	return count, err
}
