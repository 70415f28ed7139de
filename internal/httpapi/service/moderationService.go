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

	"gorm.io/gorm"
)

// ImageRemover deletes an uploaded image from object storage. Removal is best
// effort: moderation never fails because a blob was already gone.
type ImageRemover interface {
	Remove(ctx context.Context, url string) error
}

// ModerationService is the flag queue plus the moderator actions on listings
// and users. Resolving a flag never touches its target; hide, delete and ban
// are separate calls so every destructive step is explicit.
type ModerationService interface {
	ReportFlag(ctx context.Context, reporterID string, req dto.CreateFlagDTO) (*dto.FlagResponse, error)
	ListFlags(ctx context.Context, status string) ([]dto.FlagResponse, error)
	ResolveFlag(ctx context.Context, reviewerID, flagID, status string) error
	HideDonation(ctx context.Context, donationID string, hidden bool) error
	DeleteDonation(ctx context.Context, donationID string) error
	BanUser(ctx context.Context, userID string, banned bool) error
	Stats(ctx context.Context) (*dto.AdminStats, error)
}

type moderationService struct {
	tx     repository.TxManager
	repos  repository.Repos
	images ImageRemover
	logger *slog.Logger
}

func NewModerationService(tx repository.TxManager, repos repository.Repos, images ImageRemover, logger *slog.Logger) ModerationService {
	return &moderationService{tx: tx, repos: repos, images: images, logger: logger}
}

func (s *moderationService) ReportFlag(ctx context.Context, reporterID string, req dto.CreateFlagDTO) (*dto.FlagResponse, error) {
	// The target must exist so the queue never fills with dangling reports.
	switch req.TargetType {
	case models.FlagTargetDonation:
		if _, err := s.repos.Donations.GetByID(ctx, req.TargetID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: unknown donation", ErrValidation)
			}
			return nil, err
		}
	case models.FlagTargetUser:
		if _, err := s.repos.Profiles.GetByID(ctx, req.TargetID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: unknown user", ErrValidation)
			}
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unknown target type", ErrValidation)
	}

	f := &models.Flag{
		ReporterID:  reporterID,
		TargetType:  req.TargetType,
		TargetID:    req.TargetID,
		Reason:      req.Reason,
		Description: req.Description,
		Status:      models.FlagPending,
	}
	if err := s.repos.Flags.Create(ctx, f); err != nil {
		return nil, err
	}
	return dto.FromModelToFlagResponse(f), nil
}

func (s *moderationService) ListFlags(ctx context.Context, status string) ([]dto.FlagResponse, error) {
	if status == "" {
		status = models.FlagPending
	}
	list, err := s.repos.Flags.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FlagResponse, 0, len(list))
	for i := range list {
		out = append(out, *dto.FromModelToFlagResponse(&list[i]))
	}
	return out, nil
}

// ResolveFlag moves a flag to reviewed or resolved, stamping the reviewer.
// Already-resolved flags stay put.
func (s *moderationService) ResolveFlag(ctx context.Context, reviewerID, flagID, status string) error {
	if status != models.FlagReviewed && status != models.FlagResolved {
		return fmt.Errorf("%w: status must be reviewed or resolved", ErrValidation)
	}
	ok, err := s.repos.Flags.UpdateStatus(ctx, flagID, status, reviewerID, time.Now())
	if err != nil {
		return err
	}
	if !ok {
		if _, err := s.repos.Flags.GetByID(ctx, flagID); errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: flag is already resolved", ErrConflict)
	}
	return nil
}

// HideDonation toggles visibility and, when hiding, tells the owner.
func (s *moderationService) HideDonation(ctx context.Context, donationID string, hidden bool) error {
	return s.tx.Do(ctx, func(r repository.Repos) error {
		d, err := r.Donations.GetByID(ctx, donationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := r.Donations.SetHidden(ctx, d.ID, hidden); err != nil {
			return err
		}
		if !hidden {
			return nil
		}
		notif := &models.Notification{
			UserID:  d.DonorID,
			Type:    models.NotifListingHidden,
			Title:   "Listing hidden",
			Message: fmt.Sprintf("Your listing %q was hidden by a moderator.", d.Title),
		}
		return r.Notifications.Create(ctx, notif)
	})
}

// DeleteDonation removes the row (reservations, messages and ratings cascade)
// and then tries to delete the uploaded images. Blob failures are logged, not
// returned.
func (s *moderationService) DeleteDonation(ctx context.Context, donationID string) error {
	d, err := s.repos.Donations.GetByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.repos.Donations.Delete(ctx, d.ID); err != nil {
		return err
	}

	if s.images != nil {
		for _, url := range d.Images {
			if err := s.images.Remove(ctx, url); err != nil {
				s.logger.Warn("failed to remove donation image", "donation_id", d.ID, "url", url, "error", err)
			}
		}
	}
	return nil
}

func (s *moderationService) BanUser(ctx context.Context, userID string, banned bool) error {
	if _, err := s.repos.Profiles.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.repos.Profiles.SetBanned(ctx, userID, banned)
}

func (s *moderationService) Stats(ctx context.Context) (*dto.AdminStats, error) {
	profiles, err := s.repos.Profiles.Count(ctx)
	if err != nil {
		return nil, err
	}
	donations, err := s.repos.Donations.Count(ctx)
	if err != nil {
		return nil, err
	}
	available, err := s.repos.Donations.CountByStatus(ctx, models.DonationAvailable)
	if err != nil {
		return nil, err
	}
	pending, err := s.repos.Flags.CountPending(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.AdminStats{
		TotalProfiles:      profiles,
		TotalDonations:     donations,
		AvailableDonations: available,
		PendingFlags:       pending,
	}, nil
}
