package client

// http_client.go wraps the MealBridge REST API for the CLI commands.

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"mealbridge/internal/httpapi/dto"
	"mealbridge/internal/httpapi/models"
)

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: apiURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// doJSON performs a request with the auth header and decodes a JSON response
// into out (out may be nil for fire-and-forget calls).
func (c *HTTPClient) doJSON(method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s (status %d)", apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("request failed with status: %s", resp.Status)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// --- profile ---

func (c *HTTPClient) Me() (*dto.ProfileResponse, error) {
	var result dto.ProfileResponse
	if err := c.doJSON(http.MethodGet, "/api/me", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// --- donations ---

type BrowseParams struct {
	Category string
	Sealed   bool
	Sort     string
	RadiusKm float64
	Lat, Lng *float64
	Page     int
}

func (c *HTTPClient) BrowseDonations(p BrowseParams) (*dto.PaginatedDonationResponse, error) {
	params := url.Values{}
	if p.Category != "" {
		params.Set("category", p.Category)
	}
	if p.Sealed {
		params.Set("sealed_only", "true")
	}
	if p.Sort != "" {
		params.Set("sort", p.Sort)
	}
	if p.RadiusKm > 0 {
		params.Set("radius_km", fmt.Sprintf("%g", p.RadiusKm))
	}
	if p.Lat != nil && p.Lng != nil {
		params.Set("lat", fmt.Sprintf("%g", *p.Lat))
		params.Set("lng", fmt.Sprintf("%g", *p.Lng))
	}
	if p.Page > 1 {
		params.Set("page", fmt.Sprintf("%d", p.Page))
	}

	path := "/api/donations"
	if q := params.Encode(); q != "" {
		path += "?" + q
	}

	var result dto.PaginatedDonationResponse
	if err := c.doJSON(http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) GetDonation(id string) (*dto.DonationResponse, error) {
	var result dto.DonationResponse
	if err := c.doJSON(http.MethodGet, "/api/donations/"+id, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) ListDonationReservations(id string) ([]dto.ReservationResponse, error) {
	var result []dto.ReservationResponse
	if err := c.doJSON(http.MethodGet, "/api/donations/"+id+"/reservations", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// --- reservations ---

func (c *HTTPClient) CreateReservation(req dto.CreateReservationDTO) (*dto.ReservationResponse, error) {
	var result dto.ReservationResponse
	if err := c.doJSON(http.MethodPost, "/api/reservations", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) ApproveReservation(id string, req dto.DecisionDTO) error {
	return c.doJSON(http.MethodPost, "/api/reservations/"+id+"/approve", req, nil)
}

func (c *HTTPClient) DeclineReservation(id string, req dto.DecisionDTO) error {
	return c.doJSON(http.MethodPost, "/api/reservations/"+id+"/decline", req, nil)
}

func (c *HTTPClient) CompleteReservation(id string) error {
	return c.doJSON(http.MethodPost, "/api/reservations/"+id+"/complete", struct{}{}, nil)
}

func (c *HTTPClient) CancelReservation(id string) error {
	return c.doJSON(http.MethodPost, "/api/reservations/"+id+"/cancel", struct{}{}, nil)
}

func (c *HTTPClient) MyReservations() ([]dto.ReservationResponse, error) {
	var result []dto.ReservationResponse
	if err := c.doJSON(http.MethodGet, "/api/my/reservations", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// --- notifications ---

func (c *HTTPClient) Notifications(unreadOnly bool) ([]models.Notification, error) {
	path := "/api/notifications"
	if unreadOnly {
		path += "?unread=true"
	}
	var result []models.Notification
	if err := c.doJSON(http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *HTTPClient) MarkAllNotificationsRead() error {
	return c.doJSON(http.MethodPost, "/api/notifications/read_all", struct{}{}, nil)
}

// --- moderation ---

func (c *HTTPClient) ListFlags(status string) ([]dto.FlagResponse, error) {
	path := "/api/admin/flags"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var result []dto.FlagResponse
	if err := c.doJSON(http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *HTTPClient) ResolveFlag(id, status string) error {
	return c.doJSON(http.MethodPost, "/api/admin/flags/"+id+"/resolve", map[string]string{"status": status}, nil)
}

func (c *HTTPClient) HideDonation(id string) error {
	return c.doJSON(http.MethodPost, "/api/admin/donations/"+id+"/hide", struct{}{}, nil)
}

func (c *HTTPClient) UnhideDonation(id string) error {
	return c.doJSON(http.MethodPost, "/api/admin/donations/"+id+"/unhide", struct{}{}, nil)
}

func (c *HTTPClient) BanUser(id string) error {
	return c.doJSON(http.MethodPost, "/api/admin/users/"+id+"/ban", struct{}{}, nil)
}

func (c *HTTPClient) UnbanUser(id string) error {
	return c.doJSON(http.MethodPost, "/api/admin/users/"+id+"/unban", struct{}{}, nil)
}

func (c *HTTPClient) AdminStats() (*dto.AdminStats, error) {
	var result dto.AdminStats
	if err := c.doJSON(http.MethodGet, "/api/admin/stats", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
