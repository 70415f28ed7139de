package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"mealbridge/internal/httpapi/dto"
	"mealbridge/internal/httpapi/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) Create(ctx context.Context, recipientID string, req dto.CreateReservationDTO) (*dto.ReservationResponse, error) {
	args := m.Called(ctx, recipientID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReservationResponse), args.Error(1)
}

func (m *MockReservationService) Approve(ctx context.Context, ownerID, reservationID string, decision dto.DecisionDTO) error {
	args := m.Called(ctx, ownerID, reservationID, decision)
	return args.Error(0)
}

func (m *MockReservationService) Decline(ctx context.Context, ownerID, reservationID string, message string) error {
	args := m.Called(ctx, ownerID, reservationID, message)
	return args.Error(0)
}

func (m *MockReservationService) Complete(ctx context.Context, ownerID, reservationID string) error {
	args := m.Called(ctx, ownerID, reservationID)
	return args.Error(0)
}

func (m *MockReservationService) Cancel(ctx context.Context, recipientID, reservationID string) error {
	args := m.Called(ctx, recipientID, reservationID)
	return args.Error(0)
}

func (m *MockReservationService) ListForDonation(ctx context.Context, ownerID, donationID string) ([]dto.ReservationResponse, error) {
	args := m.Called(ctx, ownerID, donationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.ReservationResponse), args.Error(1)
}

func (m *MockReservationService) ListMine(ctx context.Context, recipientID string) ([]dto.ReservationResponse, error) {
	args := m.Called(ctx, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.ReservationResponse), args.Error(1)
}

// mockAuthMiddleware injects the identity the real JWT middleware would set.
func mockAuthMiddleware(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func setupReservationRouter(svc service.ReservationService, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	authed := router.Group("/api", mockAuthMiddleware(userID))
	NewReservationHandler(svc).RegisterRoutes(authed)
	return router
}

func TestReservationCreate_Success(t *testing.T) {
	svc := new(MockReservationService)
	router := setupReservationRouter(svc, "recipient-1")

	svc.On("Create", mock.Anything, "recipient-1", mock.MatchedBy(func(req dto.CreateReservationDTO) bool {
		return req.DonationID == "8e296a06-7f3a-4f9b-b3f8-9f4a1f0a1111"
	})).Return(&dto.ReservationResponse{ID: "res-1", Status: "pending"}, nil)

	body := bytes.NewBufferString(`{"donation_id":"8e296a06-7f3a-4f9b-b3f8-9f4a1f0a1111"}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/reservations", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"pending"`)
	svc.AssertExpectations(t)
}

func TestReservationCreate_InvalidBody(t *testing.T) {
	svc := new(MockReservationService)
	router := setupReservationRouter(svc, "recipient-1")

	req, _ := http.NewRequest(http.MethodPost, "/api/reservations", bytes.NewBufferString(`{"donation_id":"not-a-uuid"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestReservationCreate_Conflict(t *testing.T) {
	svc := new(MockReservationService)
	router := setupReservationRouter(svc, "recipient-1")

	svc.On("Create", mock.Anything, "recipient-1", mock.Anything).Return(nil, service.ErrConflict)

	body := bytes.NewBufferString(`{"donation_id":"8e296a06-7f3a-4f9b-b3f8-9f4a1f0a1111"}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/reservations", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestReservationApprove_PassesDecision(t *testing.T) {
	svc := new(MockReservationService)
	router := setupReservationRouter(svc, "donor-1")

	svc.On("Approve", mock.Anything, "donor-1", "res-1", mock.MatchedBy(func(d dto.DecisionDTO) bool {
		return d.Message == "See you at six"
	})).Return(nil)

	body := bytes.NewBufferString(`{"message":"See you at six"}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/reservations/res-1/approve", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestReservationApprove_EmptyBody(t *testing.T) {
	svc := new(MockReservationService)
	router := setupReservationRouter(svc, "donor-1")

	svc.On("Approve", mock.Anything, "donor-1", "res-1", dto.DecisionDTO{}).Return(nil)

	req, _ := http.NewRequest(http.MethodPost, "/api/reservations/res-1/approve", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestReservationDecline_EmptyBody(t *testing.T) {
	svc := new(MockReservationService)
	router := setupReservationRouter(svc, "donor-1")

	svc.On("Decline", mock.Anything, "donor-1", "res-1", "").Return(nil)

	req, _ := http.NewRequest(http.MethodPost, "/api/reservations/res-1/decline", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestReservationApprove_Forbidden(t *testing.T) {
	svc := new(MockReservationService)
	router := setupReservationRouter(svc, "not-owner")

	svc.On("Approve", mock.Anything, "not-owner", "res-1", mock.Anything).Return(service.ErrForbidden)

	req, _ := http.NewRequest(http.MethodPost, "/api/reservations/res-1/approve", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReservationDecline_ForwardsMessage(t *testing.T) {
	svc := new(MockReservationService)
	router := setupReservationRouter(svc, "donor-1")

	svc.On("Decline", mock.Anything, "donor-1", "res-1", "Sorry, promised already").Return(nil)

	body := bytes.NewBufferString(`{"message":"Sorry, promised already"}`)
	req, _ := http.NewRequest(http.MethodPost, "/api/reservations/res-1/decline", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestReservationCancel_NotFound(t *testing.T) {
	svc := new(MockReservationService)
	router := setupReservationRouter(svc, "recipient-1")

	svc.On("Cancel", mock.Anything, "recipient-1", "missing").Return(service.ErrNotFound)

	req, _ := http.NewRequest(http.MethodPost, "/api/reservations/missing/cancel", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReservationListMine(t *testing.T) {
	svc := new(MockReservationService)
	router := setupReservationRouter(svc, "recipient-1")

	svc.On("ListMine", mock.Anything, "recipient-1").Return([]dto.ReservationResponse{
		{ID: "res-1", Status: "accepted"},
		{ID: "res-2", Status: "declined"},
	}, nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/my/reservations", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"res-2"`)
}
