package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"mealbridge/internal/httpapi/dto"
	"mealbridge/internal/httpapi/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockDonationService struct {
	mock.Mock
}

func (m *MockDonationService) Create(ctx context.Context, donorID string, req dto.CreateDonationDTO) (*dto.DonationResponse, error) {
	args := m.Called(ctx, donorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DonationResponse), args.Error(1)
}

func (m *MockDonationService) GetByID(ctx context.Context, viewerID, id string) (*dto.DonationResponse, error) {
	args := m.Called(ctx, viewerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DonationResponse), args.Error(1)
}

func (m *MockDonationService) ListVisible(ctx context.Context, f repository.DonationFilter) (*dto.PaginatedDonationResponse, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedDonationResponse), args.Error(1)
}

func (m *MockDonationService) ListByDonor(ctx context.Context, donorID string) ([]dto.DonationResponse, error) {
	args := m.Called(ctx, donorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.DonationResponse), args.Error(1)
}

func (m *MockDonationService) Update(ctx context.Context, donorID, id string, req dto.UpdateDonationDTO) (*dto.DonationResponse, error) {
	args := m.Called(ctx, donorID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DonationResponse), args.Error(1)
}

func (m *MockDonationService) CancelListing(ctx context.Context, donorID, id string) error {
	args := m.Called(ctx, donorID, id)
	return args.Error(0)
}

func (m *MockDonationService) Categories(ctx context.Context) ([]dto.CategoryDTO, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.CategoryDTO), args.Error(1)
}

func setupDonationListRouter(svc *MockDonationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	public := router.Group("/api")
	NewDonationHandler(svc, new(MockReservationService)).RegisterPublicRoutes(public)
	return router
}

func TestDonationList_ClampsRadius(t *testing.T) {
	cases := []struct {
		query string
		want  float64
	}{
		{"radius_km=5", 5},
		{"radius_km=0.2", 1},
		{"radius_km=80", 25},
	}
	for _, tc := range cases {
		svc := new(MockDonationService)
		router := setupDonationListRouter(svc)

		svc.On("ListVisible", mock.Anything, mock.MatchedBy(func(f repository.DonationFilter) bool {
			return f.RadiusKm == tc.want
		})).Return(&dto.PaginatedDonationResponse{}, nil)

		req, _ := http.NewRequest(http.MethodGet, "/api/donations?"+tc.query, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, tc.query)
		svc.AssertExpectations(t)
	}
}

func TestDonationList_RejectsBadRadius(t *testing.T) {
	svc := new(MockDonationService)
	router := setupDonationListRouter(svc)

	for _, query := range []string{"radius_km=nope", "radius_km=-3"} {
		req, _ := http.NewRequest(http.MethodGet, "/api/donations?"+query, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}
	svc.AssertNotCalled(t, "ListVisible", mock.Anything, mock.Anything)
}
