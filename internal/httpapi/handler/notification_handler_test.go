package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"mealbridge/internal/httpapi/models"
	"mealbridge/internal/httpapi/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) List(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func setupNotificationRouter(svc service.NotificationService, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	authed := router.Group("/api", mockAuthMiddleware(userID))
	NewNotificationHandler(svc).RegisterRoutes(authed)
	return router
}

func TestNotificationList_All(t *testing.T) {
	svc := new(MockNotificationService)
	router := setupNotificationRouter(svc, "user-1")

	svc.On("List", mock.Anything, "user-1", false).Return([]models.Notification{
		{ID: "n-1", Title: "Reservation accepted"},
	}, nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/notifications", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Reservation accepted")
	svc.AssertExpectations(t)
}

func TestNotificationList_UnreadOnly(t *testing.T) {
	svc := new(MockNotificationService)
	router := setupNotificationRouter(svc, "user-1")

	svc.On("List", mock.Anything, "user-1", true).Return([]models.Notification{}, nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/notifications?unread=true", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestNotificationMarkRead_Success(t *testing.T) {
	svc := new(MockNotificationService)
	router := setupNotificationRouter(svc, "user-1")

	svc.On("MarkRead", mock.Anything, "user-1", "n-1").Return(nil)

	req, _ := http.NewRequest(http.MethodPost, "/api/notifications/n-1/read", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestNotificationMarkRead_NotOwned(t *testing.T) {
	svc := new(MockNotificationService)
	router := setupNotificationRouter(svc, "user-1")

	svc.On("MarkRead", mock.Anything, "user-1", "someone-elses").Return(service.ErrNotFound)

	req, _ := http.NewRequest(http.MethodPost, "/api/notifications/someone-elses/read", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotificationMarkAllRead(t *testing.T) {
	svc := new(MockNotificationService)
	router := setupNotificationRouter(svc, "user-1")

	svc.On("MarkAllRead", mock.Anything, "user-1").Return(nil)

	req, _ := http.NewRequest(http.MethodPost, "/api/notifications/read_all", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
