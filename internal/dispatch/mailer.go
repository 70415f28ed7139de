package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"mealbridge/internal/httpapi/models"
)

// Mailer delivers one notification as an email. Satisfied by *MailClient and
// faked in tests.
type Mailer interface {
	Send(ctx context.Context, n *models.Notification) error
}

// MailClient posts notification emails to the transactional mail API.
type MailClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewMailClient(baseURL, apiKey string) *MailClient {
	return &MailClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type mailPayload struct {
	UserID  string `json:"user_id"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Type    string `json:"type"`
}

func (c *MailClient) Send(ctx context.Context, n *models.Notification) error {
	payload, err := json.Marshal(mailPayload{
		UserID:  n.UserID,
		Subject: n.Title,
		Body:    n.Message,
		Type:    n.Type,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/send", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("mail API returned status %d", resp.StatusCode)
	}
	return nil
}
