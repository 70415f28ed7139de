package service

import (
	"context"
	"errors"

	"mealbridge/internal/httpapi/dto"
	"mealbridge/internal/httpapi/models"
	"mealbridge/internal/httpapi/repository"

	"gorm.io/gorm"
)

// MessageService handles donation-scoped threads between the donor and one
// counterpart. Only the donor and users with a reservation on the listing can
// take part.
type MessageService interface {
	Send(ctx context.Context, senderID, donationID string, req dto.SendMessageDTO) (*dto.MessageResponse, error)
	Thread(ctx context.Context, userID, donationID, counterpartID string) ([]dto.MessageResponse, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
}

type messageService struct {
	repos repository.Repos
}

func NewMessageService(repos repository.Repos) MessageService {
	return &messageService{repos: repos}
}

func (s *messageService) Send(ctx context.Context, senderID, donationID string, req dto.SendMessageDTO) (*dto.MessageResponse, error) {
	donation, err := s.repos.Donations.GetByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.authorizeParticipant(ctx, donation, senderID); err != nil {
		return nil, err
	}
	if err := s.authorizeParticipant(ctx, donation, req.RecipientID); err != nil {
		return nil, err
	}

	msg := &models.Message{
		DonationID:  donationID,
		SenderID:    senderID,
		RecipientID: req.RecipientID,
		Content:     req.Content,
	}
	if err := s.repos.Messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	return dto.FromModelToMessageResponse(msg), nil
}

func (s *messageService) Thread(ctx context.Context, userID, donationID, counterpartID string) ([]dto.MessageResponse, error) {
	donation, err := s.repos.Donations.GetByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.authorizeParticipant(ctx, donation, userID); err != nil {
		return nil, err
	}

	list, err := s.repos.Messages.ListThread(ctx, donationID, userID, counterpartID)
	if err != nil {
		return nil, err
	}
	// Opening a thread marks the caller's side as read.
	if err := s.repos.Messages.MarkThreadRead(ctx, donationID, userID); err != nil {
		return nil, err
	}

	out := make([]dto.MessageResponse, 0, len(list))
	for i := range list {
		out = append(out, *dto.FromModelToMessageResponse(&list[i]))
	}
	return out, nil
}

func (s *messageService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.repos.Messages.CountUnread(ctx, userID)
}

// authorizeParticipant allows the donor or anyone holding a reservation on
// the donation.
func (s *messageService) authorizeParticipant(ctx context.Context, donation *models.Donation, userID string) error {
	if donation.DonorID == userID {
		return nil
	}
	_, err := s.repos.Reservations.GetByDonationAndRecipient(ctx, donation.ID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrForbidden
		}
		return err
	}
	return nil
}
