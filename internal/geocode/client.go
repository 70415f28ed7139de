package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	nominatimBaseURL = "https://nominatim.openstreetmap.org"
	fallbackBaseURL  = "https://geocode.maps.co"

	// Nominatim's usage policy caps anonymous clients at 1 request/second.
	nominatimRateLimit = 1
	nominatimRateBurst = 2
)

// Client resolves coordinates to human-readable addresses. Nominatim is the
// primary upstream; on any failure the maps.co mirror is tried once before
// giving up.
type Client struct {
	primaryURL  string
	fallbackURL string
	userAgent   string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

func NewClient(userAgent string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		primaryURL:  nominatimBaseURL,
		fallbackURL: fallbackBaseURL,
		userAgent:   userAgent,
		rateLimiter: rate.NewLimiter(rate.Limit(nominatimRateLimit), nominatimRateBurst),
		logger:      logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// WithBaseURLs points the client at different upstreams. Used by tests.
func (c *Client) WithBaseURLs(primary, fallback string) *Client {
	c.primaryURL = primary
	c.fallbackURL = fallback
	return c
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

// Reverse turns a coordinate into a display address.
func (c *Client) Reverse(ctx context.Context, lat, lng float64) (string, error) {
	addr, err := c.reverseAgainst(ctx, c.primaryURL, lat, lng)
	if err == nil {
		return addr, nil
	}
	c.logger.Warn("primary geocoder failed, trying fallback", "error", err)

	addr, fbErr := c.reverseAgainst(ctx, c.fallbackURL, lat, lng)
	if fbErr != nil {
		return "", fmt.Errorf("reverse geocode failed: %w (fallback: %v)", err, fbErr)
	}
	return addr, nil
}

func (c *Client) reverseAgainst(ctx context.Context, base string, lat, lng float64) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("lat", fmt.Sprintf("%f", lat))
	params.Set("lon", fmt.Sprintf("%f", lng))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/reverse?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var parsed reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if parsed.Error != "" {
		return "", fmt.Errorf("geocoder error: %s", parsed.Error)
	}
	if parsed.DisplayName == "" {
		return "", fmt.Errorf("geocoder returned no address")
	}
	return parsed.DisplayName, nil
}
