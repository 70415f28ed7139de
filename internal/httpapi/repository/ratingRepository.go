package repository

import (
	"context"

	"mealbridge/internal/httpapi/models"

	"gorm.io/gorm"
)

type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	Exists(ctx context.Context, donationID, raterID, ratedID string) (bool, error)
	ListByDonation(ctx context.Context, donationID string) ([]models.Rating, error)
	ListForUser(ctx context.Context, ratedID string, page, pageSize int) ([]models.Rating, int64, error)
	AverageForUser(ctx context.Context, ratedID string) (float64, int64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Create inserts the rating; a unique violation on the (donation, rater,
// rated) triple surfaces unchanged so the service can map it to a conflict.
func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *ratingRepository) Exists(ctx context.Context, donationID, raterID, ratedID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Where("donation_id = ? AND rater_id = ? AND rated_id = ?", donationID, raterID, ratedID).
		Count(&count).Error
	return count > 0, err
}

func (r *ratingRepository) ListByDonation(ctx context.Context, donationID string) ([]models.Rating, error) {
	var list []models.Rating
	err := r.db.WithContext(ctx).
		Preload("Rater").
		Where("donation_id = ?", donationID).
		Order("created_at desc").
		Find(&list).Error
	return list, err
}

func (r *ratingRepository) ListForUser(ctx context.Context, ratedID string, page, pageSize int) ([]models.Rating, int64, error) {
	var list []models.Rating
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Rating{}).Where("rated_id = ?", ratedID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.WithContext(ctx).
		Preload("Rater").
		Where("rated_id = ?", ratedID).
		Order("created_at desc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// AverageForUser returns the reputation aggregate for a user.
func (r *ratingRepository) AverageForUser(ctx context.Context, ratedID string) (float64, int64, error) {
	var agg struct {
		Average float64
		Count   int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("COALESCE(AVG(rating), 0) as average, COUNT(*) as count").
		Where("rated_id = ?", ratedID).
		Scan(&agg).Error
	if err != nil {
		return 0, 0, err
	}
	return agg.Average, agg.Count, nil
}
