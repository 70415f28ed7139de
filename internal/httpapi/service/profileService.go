package service

import (
	"context"
	"errors"

	"mealbridge/internal/httpapi/dto"
	"mealbridge/internal/httpapi/models"
	"mealbridge/internal/httpapi/repository"

	"gorm.io/gorm"
)

// ProfileService manages the local profile row attached to an externally
// issued identity. GetOrCreate provisions the row on first authenticated
// request.
type ProfileService interface {
	GetOrCreate(ctx context.Context, userID, displayName string) (*dto.ProfileResponse, error)
	Get(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	GetCard(ctx context.Context, userID string) (*dto.ProfileCard, error)
	Update(ctx context.Context, userID string, req dto.UpdateProfileDTO) (*dto.ProfileResponse, error)
}

type profileService struct {
	repos repository.Repos
}

func NewProfileService(repos repository.Repos) ProfileService {
	return &profileService{repos: repos}
}

func (s *profileService) GetOrCreate(ctx context.Context, userID, displayName string) (*dto.ProfileResponse, error) {
	p, err := s.repos.Profiles.GetByID(ctx, userID)
	if err == nil {
		return dto.FromModelToProfileResponse(p), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if displayName == "" {
		displayName = "Neighbor"
	}
	p = &models.Profile{
		ID:          userID,
		DisplayName: displayName,
		Role:        models.RoleRecipient,
	}
	if err := s.repos.Profiles.Create(ctx, p); err != nil {
		// Two first requests racing: the loser re-reads the winner's row.
		if repository.IsUniqueViolation(err) {
			p, err = s.repos.Profiles.GetByID(ctx, userID)
			if err != nil {
				return nil, err
			}
			return dto.FromModelToProfileResponse(p), nil
		}
		return nil, err
	}
	return dto.FromModelToProfileResponse(p), nil
}

func (s *profileService) Get(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	p, err := s.repos.Profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return dto.FromModelToProfileResponse(p), nil
}

func (s *profileService) GetCard(ctx context.Context, userID string) (*dto.ProfileCard, error) {
	p, err := s.repos.Profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return dto.FromModelToProfileCard(p), nil
}

func (s *profileService) Update(ctx context.Context, userID string, req dto.UpdateProfileDTO) (*dto.ProfileResponse, error) {
	p, err := s.repos.Profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	req.ApplyTo(p)
	if err := s.repos.Profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	return dto.FromModelToProfileResponse(p), nil
}
