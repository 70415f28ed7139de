package repository

import (
	"context"
	"fmt"
	"time"

	"mealbridge/internal/httpapi/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// distanceExpr computes the great-circle distance in km between the caller's
// coordinate and a donation row, using the spherical law of cosines (same
// result as the haversine used on the Go side, and cheap enough for Postgres).
// Argument order: lat, lng, lat.
const distanceExpr = "6371 * acos(least(1.0, " +
	"cos(radians(?)) * cos(radians(donations.location_lat)) * " +
	"cos(radians(donations.location_lng) - radians(?)) + " +
	"sin(radians(?)) * sin(radians(donations.location_lat))))"

// Discovery sort keys.
const (
	SortNewest   = "newest"
	SortExpiry   = "expiry"
	SortDistance = "distance"
)

// DonationFilter is the complete discovery predicate. Every field is applied
// in SQL so filtering composes with pagination.
type DonationFilter struct {
	Category   string // category name, "" or "all" means no filter
	SealedOnly bool
	Sort       string
	RadiusKm   float64
	Lat        *float64 // both nil when the caller has no device location
	Lng        *float64
	Page       int
	PageSize   int
}

type DonationRepository interface {
	Create(ctx context.Context, d *models.Donation) error
	GetByID(ctx context.Context, id string) (*models.Donation, error)
	Update(ctx context.Context, d *models.Donation) error
	Delete(ctx context.Context, id string) error
	ListVisible(ctx context.Context, f DonationFilter) ([]models.Donation, int64, error)
	ListByDonor(ctx context.Context, donorID string) ([]models.Donation, error)
	UpdateStatusIf(ctx context.Context, id, from, to string) (bool, error)
	SetHidden(ctx context.Context, id string, hidden bool) error
	ExpireBefore(ctx context.Context, cutoff time.Time) (int64, error)
	ListExpiredWithPending(ctx context.Context) ([]models.Donation, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type donationRepository struct {
	db *gorm.DB
}

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) Create(ctx context.Context, d *models.Donation) error {
	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		return fmt.Errorf("create donation: %w", err)
	}
	return nil
}

func (r *donationRepository) GetByID(ctx context.Context, id string) (*models.Donation, error) {
	var d models.Donation
	err := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("Category").
		Where("id = ?", id).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *donationRepository) Update(ctx context.Context, d *models.Donation) error {
	if err := r.db.WithContext(ctx).Save(d).Error; err != nil {
		return fmt.Errorf("update donation: %w", err)
	}
	return nil
}

func (r *donationRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Donation{})
	if result.Error != nil {
		return fmt.Errorf("delete donation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListVisible returns the discovery result set: available, not hidden, not
// past expiry, with the optional category/sealed/radius predicates and the
// requested sort, paginated.
func (r *donationRepository) ListVisible(ctx context.Context, f DonationFilter) ([]models.Donation, int64, error) {
	hasCoord := f.Lat != nil && f.Lng != nil

	q := r.db.WithContext(ctx).Model(&models.Donation{}).
		Where("donations.is_hidden = false").
		Where("donations.status = ?", models.DonationAvailable).
		Where("donations.expiry_date >= current_date")

	if f.Category != "" && f.Category != "all" {
		q = q.Joins("JOIN categories ON categories.id = donations.category_id").
			Where("categories.name = ?", f.Category)
	}
	if f.SealedOnly {
		q = q.Where("donations.condition = ?", models.ConditionSealed)
	}
	if hasCoord && f.RadiusKm > 0 {
		q = q.Where(distanceExpr+" <= ?", *f.Lat, *f.Lng, *f.Lat, f.RadiusKm)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count donations: %w", err)
	}

	switch f.Sort {
	case SortExpiry:
		q = q.Order("donations.expiry_date asc")
	case SortDistance:
		if hasCoord {
			q = q.Order(clause.OrderBy{Expression: gorm.Expr(distanceExpr+" asc", *f.Lat, *f.Lng, *f.Lat)})
		} else {
			// distance sort without a coordinate degrades to newest
			q = q.Order("donations.created_at desc")
		}
	default:
		q = q.Order("donations.created_at desc")
	}

	offset := (f.Page - 1) * f.PageSize

	var list []models.Donation
	err := q.Preload("Donor").
		Preload("Category").
		Limit(f.PageSize).
		Offset(offset).
		Find(&list).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list donations: %w", err)
	}
	return list, total, nil
}

func (r *donationRepository) ListByDonor(ctx context.Context, donorID string) ([]models.Donation, error) {
	var list []models.Donation
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("donor_id = ?", donorID).
		Order("created_at desc").
		Find(&list).Error
	return list, err
}

// UpdateStatusIf performs the conditional status flip used by the lifecycle
// manager. It reports whether a row actually changed, so callers can detect a
// lost race without a separate read.
func (r *donationRepository) UpdateStatusIf(ctx context.Context, id, from, to string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Donation{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *donationRepository) SetHidden(ctx context.Context, id string, hidden bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.Donation{}).
		Where("id = ?", id).
		Update("is_hidden", hidden)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ExpireBefore flips available donations whose expiry date passed to expired.
func (r *donationRepository) ExpireBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Donation{}).
		Where("status = ? AND expiry_date < ?", models.DonationAvailable, cutoff.Format("2006-01-02")).
		Update("status", models.DonationExpired)
	return result.RowsAffected, result.Error
}

// ListExpiredWithPending returns expired donations that still carry pending
// reservations, so the sweeper can cancel and notify them. Once cleaned, a
// donation stops matching and drops out of later sweeps.
func (r *donationRepository) ListExpiredWithPending(ctx context.Context) ([]models.Donation, error) {
	var list []models.Donation
	err := r.db.WithContext(ctx).
		Distinct("donations.*").
		Joins("JOIN reservations ON reservations.donation_id = donations.id").
		Where("donations.status = ?", models.DonationExpired).
		Where("reservations.status = ?", models.ReservationPending).
		Find(&list).Error
	return list, err
}

func (r *donationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Donation{}).Count(&count).Error
	return count, err
}

func (r *donationRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Donation{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
