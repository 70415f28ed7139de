package service

import (
	"context"
	"time"

	"mealbridge/internal/httpapi/models"
	"mealbridge/internal/httpapi/repository"

	"github.com/stretchr/testify/mock"
)

// fakeTxManager runs the function against the supplied repos with no real
// transaction, so the service logic can be tested against mocks.
type fakeTxManager struct {
	repos repository.Repos
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(r repository.Repos) error) error {
	return fn(f.repos)
}

// MockDonationRepository mocks the DonationRepository interface
type MockDonationRepository struct {
	mock.Mock
}

func (m *MockDonationRepository) Create(ctx context.Context, d *models.Donation) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDonationRepository) GetByID(ctx context.Context, id string) (*models.Donation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Donation), args.Error(1)
}

func (m *MockDonationRepository) Update(ctx context.Context, d *models.Donation) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDonationRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDonationRepository) ListVisible(ctx context.Context, f repository.DonationFilter) ([]models.Donation, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Donation), args.Get(1).(int64), args.Error(2)
}

func (m *MockDonationRepository) ListByDonor(ctx context.Context, donorID string) ([]models.Donation, error) {
	args := m.Called(ctx, donorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Donation), args.Error(1)
}

func (m *MockDonationRepository) UpdateStatusIf(ctx context.Context, id, from, to string) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockDonationRepository) SetHidden(ctx context.Context, id string, hidden bool) error {
	args := m.Called(ctx, id, hidden)
	return args.Error(0)
}

func (m *MockDonationRepository) ExpireBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDonationRepository) ListExpiredWithPending(ctx context.Context) ([]models.Donation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Donation), args.Error(1)
}

func (m *MockDonationRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDonationRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockReservationRepository mocks the ReservationRepository interface
type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Create(ctx context.Context, res *models.Reservation) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetByDonationAndRecipient(ctx context.Context, donationID, recipientID string) (*models.Reservation, error) {
	args := m.Called(ctx, donationID, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *MockReservationRepository) ListByDonation(ctx context.Context, donationID string) ([]models.Reservation, error) {
	args := m.Called(ctx, donationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reservation), args.Error(1)
}

func (m *MockReservationRepository) ListByRecipient(ctx context.Context, recipientID string) ([]models.Reservation, error) {
	args := m.Called(ctx, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reservation), args.Error(1)
}

func (m *MockReservationRepository) UpdateStatusIf(ctx context.Context, id, from, to string, pickupTime *time.Time) (bool, error) {
	args := m.Called(ctx, id, from, to, pickupTime)
	return args.Bool(0), args.Error(1)
}

func (m *MockReservationRepository) ListPendingSiblings(ctx context.Context, donationID, excludeID string) ([]models.Reservation, error) {
	args := m.Called(ctx, donationID, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reservation), args.Error(1)
}

func (m *MockReservationRepository) DeclinePendingSiblings(ctx context.Context, donationID, excludeID string) (int64, error) {
	args := m.Called(ctx, donationID, excludeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReservationRepository) ExistsCompletedLink(ctx context.Context, donationID, userA, userB string) (bool, error) {
	args := m.Called(ctx, donationID, userA, userB)
	return args.Bool(0), args.Error(1)
}

// MockMessageRepository mocks the MessageRepository interface
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, msg *models.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageRepository) ListThread(ctx context.Context, donationID, userA, userB string) ([]models.Message, error) {
	args := m.Called(ctx, donationID, userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockMessageRepository) MarkThreadRead(ctx context.Context, donationID, readerID string) error {
	args := m.Called(ctx, donationID, readerID)
	return args.Error(0)
}

func (m *MockMessageRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockNotificationRepository mocks the NotificationRepository interface
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) CreateBatch(ctx context.Context, notifications []models.Notification) error {
	args := m.Called(ctx, notifications)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkAsRead(ctx context.Context, userID, notificationID string) (bool, error) {
	args := m.Called(ctx, userID, notificationID)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepository) MarkAllAsRead(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListUnsentEmail(ctx context.Context, limit int) ([]models.Notification, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkEmailSent(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRatingRepository mocks the RatingRepository interface
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Create(ctx context.Context, rating *models.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockRatingRepository) Exists(ctx context.Context, donationID, raterID, ratedID string) (bool, error) {
	args := m.Called(ctx, donationID, raterID, ratedID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRatingRepository) ListByDonation(ctx context.Context, donationID string) ([]models.Rating, error) {
	args := m.Called(ctx, donationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Rating), args.Error(1)
}

func (m *MockRatingRepository) ListForUser(ctx context.Context, ratedID string, page, pageSize int) ([]models.Rating, int64, error) {
	args := m.Called(ctx, ratedID, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Rating), args.Get(1).(int64), args.Error(2)
}

func (m *MockRatingRepository) AverageForUser(ctx context.Context, ratedID string) (float64, int64, error) {
	args := m.Called(ctx, ratedID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

// MockProfileRepository mocks the ProfileRepository interface
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, p *models.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) Update(ctx context.Context, p *models.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProfileRepository) SetBanned(ctx context.Context, id string, banned bool) error {
	args := m.Called(ctx, id, banned)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdateReputation(ctx context.Context, id string, score float64, count int64) error {
	args := m.Called(ctx, id, score, count)
	return args.Error(0)
}

func (m *MockProfileRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockFlagRepository mocks the FlagRepository interface
type MockFlagRepository struct {
	mock.Mock
}

func (m *MockFlagRepository) Create(ctx context.Context, f *models.Flag) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFlagRepository) GetByID(ctx context.Context, id string) (*models.Flag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flag), args.Error(1)
}

func (m *MockFlagRepository) ListByStatus(ctx context.Context, status string) ([]models.Flag, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flag), args.Error(1)
}

func (m *MockFlagRepository) UpdateStatus(ctx context.Context, id, status, reviewerID string, reviewedAt time.Time) (bool, error) {
	args := m.Called(ctx, id, status, reviewerID, reviewedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockFlagRepository) CountPending(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockCategoryRepository mocks the CategoryRepository interface
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}
