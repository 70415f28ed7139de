package service

import (
	"context"
	"testing"

	"mealbridge/internal/httpapi/dto"
	"mealbridge/internal/httpapi/models"
	"mealbridge/internal/httpapi/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newMessageFixture() (*MockDonationRepository, *MockReservationRepository, *MockMessageRepository, MessageService) {
	donations := new(MockDonationRepository)
	reservations := new(MockReservationRepository)
	messages := new(MockMessageRepository)

	svc := NewMessageService(repository.Repos{
		Donations:    donations,
		Reservations: reservations,
		Messages:     messages,
	})
	return donations, reservations, messages, svc
}

func TestSendMessage_DonorToReserver(t *testing.T) {
	donations, reservations, messages, svc := newMessageFixture()

	donations.On("GetByID", mock.Anything, "don-1").Return(&models.Donation{
		ID:      "don-1",
		DonorID: "donor-1",
	}, nil)
	reservations.On("GetByDonationAndRecipient", mock.Anything, "don-1", "recipient-1").Return(&models.Reservation{
		ID: "res-1",
	}, nil)
	messages.On("Create", mock.Anything, mock.MatchedBy(func(m *models.Message) bool {
		return m.SenderID == "donor-1" && m.RecipientID == "recipient-1" && m.Content == "Still available?"
	})).Return(nil)

	resp, err := svc.Send(context.Background(), "donor-1", "don-1", dto.SendMessageDTO{
		RecipientID: "recipient-1",
		Content:     "Still available?",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Still available?", resp.Content)
	messages.AssertExpectations(t)
}

func TestSendMessage_OutsiderForbidden(t *testing.T) {
	donations, reservations, messages, svc := newMessageFixture()

	donations.On("GetByID", mock.Anything, "don-1").Return(&models.Donation{
		ID:      "don-1",
		DonorID: "donor-1",
	}, nil)
	reservations.On("GetByDonationAndRecipient", mock.Anything, "don-1", "outsider").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Send(context.Background(), "outsider", "don-1", dto.SendMessageDTO{
		RecipientID: "donor-1",
		Content:     "hi",
	})

	assert.ErrorIs(t, err, ErrForbidden)
	messages.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestThread_MarksCallerSideRead(t *testing.T) {
	donations, _, messages, svc := newMessageFixture()

	donations.On("GetByID", mock.Anything, "don-1").Return(&models.Donation{
		ID:      "don-1",
		DonorID: "donor-1",
	}, nil)
	messages.On("ListThread", mock.Anything, "don-1", "donor-1", "recipient-1").Return([]models.Message{
		{ID: "m-1", Content: "ping"},
	}, nil)
	messages.On("MarkThreadRead", mock.Anything, "don-1", "donor-1").Return(nil)

	thread, err := svc.Thread(context.Background(), "donor-1", "don-1", "recipient-1")

	assert.NoError(t, err)
	assert.Len(t, thread, 1)
	messages.AssertExpectations(t)
}

func TestUnreadCount(t *testing.T) {
	_, _, messages, svc := newMessageFixture()

	messages.On("CountUnread", mock.Anything, "user-1").Return(int64(3), nil)

	count, err := svc.UnreadCount(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
