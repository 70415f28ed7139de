package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"mealbridge/internal/httpapi/dto"
	"mealbridge/internal/httpapi/models"
	"mealbridge/internal/httpapi/repository"

	"gorm.io/gorm"
)

const maxRatingCommentLen = 2000

// RatingService gates reviews behind a completed reservation link and keeps
// the rated user's cached reputation aggregate current.
type RatingService interface {
	Create(ctx context.Context, raterID string, req dto.CreateRatingDTO) (*dto.RatingResponse, error)
	Eligibility(ctx context.Context, userID, donationID string) (*dto.EligibilityResponse, error)
	ListForUser(ctx context.Context, ratedID string, page, pageSize int) ([]dto.RatingResponse, int64, error)
}

type ratingService struct {
	tx     repository.TxManager
	repos  repository.Repos
	logger *slog.Logger
}

func NewRatingService(tx repository.TxManager, repos repository.Repos, logger *slog.Logger) RatingService {
	return &ratingService{tx: tx, repos: repos, logger: logger}
}

func (s *ratingService) Create(ctx context.Context, raterID string, req dto.CreateRatingDTO) (*dto.RatingResponse, error) {
	if req.RatedID == raterID {
		return nil, fmt.Errorf("%w: cannot rate yourself", ErrValidation)
	}

	var created *models.Rating
	err := s.tx.Do(ctx, func(r repository.Repos) error {
		linked, err := r.Reservations.ExistsCompletedLink(ctx, req.DonationID, raterID, req.RatedID)
		if err != nil {
			return err
		}
		if !linked {
			return fmt.Errorf("%w: no completed reservation between these users on this donation", ErrForbidden)
		}

		comment := req.Comment
		if comment != nil && len(*comment) > maxRatingCommentLen {
			trimmed := (*comment)[:maxRatingCommentLen]
			comment = &trimmed
		}

		rating := &models.Rating{
			DonationID: req.DonationID,
			RaterID:    raterID,
			RatedID:    req.RatedID,
			Rating:     req.Rating,
			Comment:    comment,
		}
		if err := r.Ratings.Create(ctx, rating); err != nil {
			if repository.IsUniqueViolation(err) {
				return fmt.Errorf("%w: you already rated this user for this donation", ErrConflict)
			}
			return err
		}

		avg, count, err := r.Ratings.AverageForUser(ctx, req.RatedID)
		if err != nil {
			return err
		}
		if err := r.Profiles.UpdateReputation(ctx, req.RatedID, avg, count); err != nil {
			return err
		}

		notif := &models.Notification{
			UserID:  req.RatedID,
			Type:    models.NotifRatingReceived,
			Title:   "New rating",
			Message: fmt.Sprintf("You received a %d-star rating.", req.Rating),
		}
		if err := r.Notifications.Create(ctx, notif); err != nil {
			return err
		}

		created = rating
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.FromModelToRatingResponse(created), nil
}

// Eligibility answers whether userID may still review the counterpart on a
// donation: there must be a completed reservation linking them, and no prior
// rating from this user on this donation.
func (s *ratingService) Eligibility(ctx context.Context, userID, donationID string) (*dto.EligibilityResponse, error) {
	donation, err := s.repos.Donations.GetByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if donation.Status != models.DonationPickedUp {
		return &dto.EligibilityResponse{Eligible: false}, nil
	}

	// The counterpart is the other side of the exchange: the donor sees the
	// winning recipient, the recipient sees the donor.
	var counterpart string
	if donation.DonorID == userID {
		list, err := s.repos.Reservations.ListByDonation(ctx, donationID)
		if err != nil {
			return nil, err
		}
		for i := range list {
			if list[i].Status == models.ReservationCompleted {
				counterpart = list[i].RecipientID
				break
			}
		}
	} else {
		counterpart = donation.DonorID
	}
	if counterpart == "" {
		return &dto.EligibilityResponse{Eligible: false}, nil
	}

	linked, err := s.repos.Reservations.ExistsCompletedLink(ctx, donationID, userID, counterpart)
	if err != nil {
		return nil, err
	}
	if !linked {
		return &dto.EligibilityResponse{Eligible: false}, nil
	}

	already, err := s.repos.Ratings.Exists(ctx, donationID, userID, counterpart)
	if err != nil {
		return nil, err
	}
	return &dto.EligibilityResponse{
		Eligible:      !already,
		CounterpartID: &counterpart,
		AlreadyRated:  already,
	}, nil
}

func (s *ratingService) ListForUser(ctx context.Context, ratedID string, page, pageSize int) ([]dto.RatingResponse, int64, error) {
	list, total, err := s.repos.Ratings.ListForUser(ctx, ratedID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.RatingResponse, 0, len(list))
	for i := range list {
		out = append(out, *dto.FromModelToRatingResponse(&list[i]))
	}
	return out, total, nil
}
