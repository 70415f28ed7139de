package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"mealbridge/internal/httpapi/dto"
	"mealbridge/internal/httpapi/models"
	"mealbridge/internal/httpapi/repository"
	"mealbridge/pkg/geo"

	"gorm.io/gorm"
)

// DonationService owns listing CRUD and the public discovery feed.
type DonationService interface {
	Create(ctx context.Context, donorID string, req dto.CreateDonationDTO) (*dto.DonationResponse, error)
	GetByID(ctx context.Context, viewerID, id string) (*dto.DonationResponse, error)
	ListVisible(ctx context.Context, f repository.DonationFilter) (*dto.PaginatedDonationResponse, error)
	ListByDonor(ctx context.Context, donorID string) ([]dto.DonationResponse, error)
	Update(ctx context.Context, donorID, id string, req dto.UpdateDonationDTO) (*dto.DonationResponse, error)
	CancelListing(ctx context.Context, donorID, id string) error
	Categories(ctx context.Context) ([]dto.CategoryDTO, error)
}

type donationService struct {
	tx     repository.TxManager
	repos  repository.Repos
	logger *slog.Logger
}

func NewDonationService(tx repository.TxManager, repos repository.Repos, logger *slog.Logger) DonationService {
	return &donationService{tx: tx, repos: repos, logger: logger}
}

func (s *donationService) Create(ctx context.Context, donorID string, req dto.CreateDonationDTO) (*dto.DonationResponse, error) {
	expiry, err := time.Parse("2006-01-02", req.ExpiryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: expiry_date must be YYYY-MM-DD", ErrValidation)
	}
	if expiry.Before(time.Now().Truncate(24 * time.Hour)) {
		return nil, fmt.Errorf("%w: expiry_date is in the past", ErrValidation)
	}
	if _, err := s.repos.Categories.GetByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown category", ErrValidation)
		}
		return nil, err
	}

	if !req.PickupWindowEnd.After(req.PickupWindowStart) {
		return nil, fmt.Errorf("%w: pickup window end must be after its start", ErrValidation)
	}

	condition := req.Condition
	if condition == "" {
		condition = models.ConditionSealed
	}
	storage := req.StorageType
	if storage == "" {
		storage = models.StorageAmbient
	}

	d := &models.Donation{
		DonorID:           donorID,
		CategoryID:        req.CategoryID,
		Title:             req.Title,
		Description:       req.Description,
		Quantity:          req.Quantity,
		Condition:         condition,
		StorageType:       storage,
		ExpiryDate:        expiry,
		PickupWindowStart: req.PickupWindowStart,
		PickupWindowEnd:   req.PickupWindowEnd,
		AddressText:       req.AddressText,
		LocationLat:       req.LocationLat,
		LocationLng:       req.LocationLng,
		Images:            req.Images,
		Status:            models.DonationAvailable,
	}
	if err := s.repos.Donations.Create(ctx, d); err != nil {
		return nil, err
	}

	// Reload with donor and category preloaded for the response.
	full, err := s.repos.Donations.GetByID(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToDonationResponse(full), nil
}

// GetByID hides hidden listings from everyone except their owner and
// moderators, who can still reach them by direct id.
func (s *donationService) GetByID(ctx context.Context, viewerID, id string) (*dto.DonationResponse, error) {
	d, err := s.repos.Donations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if d.IsHidden && d.DonorID != viewerID {
		if viewerID == "" {
			return nil, ErrNotFound
		}
		viewer, err := s.repos.Profiles.GetByID(ctx, viewerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if !viewer.IsModerator() {
			return nil, ErrNotFound
		}
	}
	return dto.FromModelToDonationResponse(d), nil
}

// ListVisible runs the discovery query. A radius filter or distance sort
// without caller coordinates silently degrades inside the repository: clients
// without location permission still get the unfiltered board.
func (s *donationService) ListVisible(ctx context.Context, f repository.DonationFilter) (*dto.PaginatedDonationResponse, error) {
	list, total, err := s.repos.Donations.ListVisible(ctx, f)
	if err != nil {
		return nil, err
	}

	items := make([]dto.DonationResponse, 0, len(list))
	for i := range list {
		resp := dto.FromModelToDonationResponse(&list[i])
		if f.Lat != nil && f.Lng != nil {
			km := geo.DistanceKm(*f.Lat, *f.Lng, list[i].LocationLat, list[i].LocationLng)
			resp.DistanceKm = &km
		}
		items = append(items, *resp)
	}
	return dto.NewPaginatedDonationResponse(items, total, f.Page, f.PageSize), nil
}

func (s *donationService) ListByDonor(ctx context.Context, donorID string) ([]dto.DonationResponse, error) {
	list, err := s.repos.Donations.ListByDonor(ctx, donorID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DonationResponse, 0, len(list))
	for i := range list {
		items = append(items, *dto.FromModelToDonationResponse(&list[i]))
	}
	return items, nil
}

// Update applies partial edits. Only available listings can be edited: once a
// reservation is accepted the recipient is relying on what they saw.
func (s *donationService) Update(ctx context.Context, donorID, id string, req dto.UpdateDonationDTO) (*dto.DonationResponse, error) {
	d, err := s.repos.Donations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if d.DonorID != donorID {
		return nil, ErrForbidden
	}
	if d.Status != models.DonationAvailable {
		return nil, fmt.Errorf("%w: only available donations can be edited", ErrConflict)
	}

	if req.Title != nil {
		d.Title = *req.Title
	}
	if req.Description != nil {
		d.Description = *req.Description
	}
	if req.Quantity != nil {
		d.Quantity = *req.Quantity
	}
	if req.Condition != nil {
		d.Condition = *req.Condition
	}
	if req.StorageType != nil {
		d.StorageType = *req.StorageType
	}
	if req.ExpiryDate != nil {
		expiry, err := time.Parse("2006-01-02", *req.ExpiryDate)
		if err != nil {
			return nil, fmt.Errorf("%w: expiry_date must be YYYY-MM-DD", ErrValidation)
		}
		d.ExpiryDate = expiry
	}
	if req.PickupWindowStart != nil {
		d.PickupWindowStart = *req.PickupWindowStart
	}
	if req.PickupWindowEnd != nil {
		d.PickupWindowEnd = *req.PickupWindowEnd
	}
	if !d.PickupWindowEnd.After(d.PickupWindowStart) {
		return nil, fmt.Errorf("%w: pickup window end must be after its start", ErrValidation)
	}
	if req.AddressText != nil {
		d.AddressText = *req.AddressText
	}
	if req.LocationLat != nil {
		d.LocationLat = *req.LocationLat
	}
	if req.LocationLng != nil {
		d.LocationLng = *req.LocationLng
	}
	if req.Images != nil {
		d.Images = req.Images
	}
	if req.CategoryID != nil {
		if _, err := s.repos.Categories.GetByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: unknown category", ErrValidation)
			}
			return nil, err
		}
		d.CategoryID = *req.CategoryID
	}

	if err := s.repos.Donations.Update(ctx, d); err != nil {
		return nil, err
	}
	full, err := s.repos.Donations.GetByID(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToDonationResponse(full), nil
}

// CancelListing takes a listing off the board and cancels its open
// reservations, notifying each affected recipient.
func (s *donationService) CancelListing(ctx context.Context, donorID, id string) error {
	return s.tx.Do(ctx, func(r repository.Repos) error {
		d, err := r.Donations.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if d.DonorID != donorID {
			return ErrForbidden
		}
		if d.Status != models.DonationAvailable && d.Status != models.DonationReserved {
			return fmt.Errorf("%w: donation is already settled", ErrConflict)
		}

		canceled, err := r.Donations.UpdateStatusIf(ctx, d.ID, d.Status, models.DonationCanceled)
		if err != nil {
			return err
		}
		if !canceled {
			return fmt.Errorf("%w: donation changed state", ErrConflict)
		}

		open, err := r.Reservations.ListByDonation(ctx, d.ID)
		if err != nil {
			return err
		}
		notifs := make([]models.Notification, 0, len(open))
		for i := range open {
			res := &open[i]
			if res.Status != models.ReservationPending && res.Status != models.ReservationAccepted {
				continue
			}
			if _, err := r.Reservations.UpdateStatusIf(ctx, res.ID, res.Status, models.ReservationCanceled, nil); err != nil {
				return err
			}
			notifs = append(notifs, models.Notification{
				UserID:  res.RecipientID,
				Type:    models.NotifReservationCanceled,
				Title:   "Donation canceled",
				Message: fmt.Sprintf("The donation %q was withdrawn by the donor.", d.Title),
			})
		}
		if len(notifs) == 0 {
			return nil
		}
		return r.Notifications.CreateBatch(ctx, notifs)
	})
}

func (s *donationService) Categories(ctx context.Context) ([]dto.CategoryDTO, error) {
	cats, err := s.repos.Categories.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryDTO, 0, len(cats))
	for _, c := range cats {
		out = append(out, dto.CategoryDTO{ID: c.ID, Name: c.Name, Icon: c.Icon})
	}
	return out, nil
}
