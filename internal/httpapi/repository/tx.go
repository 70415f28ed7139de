package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repos bundles one repository per table so that multi-table workflows (the
// reservation lifecycle in particular) can run every write against the same
// transaction handle.
type Repos struct {
	Profiles      ProfileRepository
	Categories    CategoryRepository
	Donations     DonationRepository
	Reservations  ReservationRepository
	Messages      MessageRepository
	Ratings       RatingRepository
	Notifications NotificationRepository
	Flags         FlagRepository
}

func NewRepos(db *gorm.DB) Repos {
	return Repos{
		Profiles:      NewProfileRepository(db),
		Categories:    NewCategoryRepository(db),
		Donations:     NewDonationRepository(db),
		Reservations:  NewReservationRepository(db),
		Messages:      NewMessageRepository(db),
		Ratings:       NewRatingRepository(db),
		Notifications: NewNotificationRepository(db),
		Flags:         NewFlagRepository(db),
	}
}

// TxManager runs a function with transaction-scoped repositories. The whole
// function either commits or rolls back as one unit.
type TxManager interface {
	Do(ctx context.Context, fn func(r Repos) error) error
}

type gormTxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

func (m *gormTxManager) Do(ctx context.Context, fn func(r Repos) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepos(tx))
	})
}

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
