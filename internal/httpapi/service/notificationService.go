package service

import (
	"context"

	"mealbridge/internal/httpapi/models"
	"mealbridge/internal/httpapi/repository"
)

type NotificationService interface {
	List(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type notificationService struct {
	repos repository.Repos
}

func NewNotificationService(repos repository.Repos) NotificationService {
	return &notificationService{repos: repos}
}

func (s *notificationService) List(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error) {
	return s.repos.Notifications.ListByUser(ctx, userID, unreadOnly)
}

// MarkRead is scoped to the owner: marking someone else's notification reads
// as not found.
func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	ok, err := s.repos.Notifications.MarkAsRead(ctx, userID, notificationID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.repos.Notifications.MarkAllAsRead(ctx, userID)
}
