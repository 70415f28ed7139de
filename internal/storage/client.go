// Package storage holds a thin client for the object store that hosts
// donation images. The API only ever deletes: uploads happen directly from
// the client app.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Remove deletes one uploaded object by its public URL. URLs outside our
// bucket are ignored so a hand-edited row cannot make us delete elsewhere.
func (c *Client) Remove(ctx context.Context, url string) error {
	if c.baseURL == "" {
		return nil
	}
	if !strings.HasPrefix(url, c.baseURL) {
		return fmt.Errorf("refusing to delete object outside configured store: %s", url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	// Already-gone objects are fine: the goal is that the blob no longer exists.
	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("object store returned status %d", resp.StatusCode)
	}
	return nil
}
