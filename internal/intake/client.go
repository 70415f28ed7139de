package intake

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	openAIBaseURL = "https://api.openai.com/v1"

	// Low temperature: extraction should be deterministic, not creative.
	extractionTemperature = 0.2

	MaxImages = 3
)

// Client calls the OpenAI chat completions API with vision input and parses
// the strict-JSON reply into a Result.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		baseURL: openAIBaseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// WithBaseURL points the client at a different endpoint. Used by tests.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = url
	return c
}

type chatRequest struct {
	Model          string         `json:"model"`
	ResponseFormat responseFormat `json:"response_format"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Analyze sends 1-3 photos to the model and returns the extracted listing
// fields. Images are forwarded as base64 data URLs; nothing is stored.
func (c *Client) Analyze(ctx context.Context, images []Image) (*Result, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("no images provided")
	}
	if len(images) > MaxImages {
		return nil, fmt.Errorf("maximum %d images allowed", MaxImages)
	}

	parts := []contentPart{{Type: "text", Text: buildPrompt()}}
	for _, img := range images {
		mime := img.MIMEType
		if !strings.HasPrefix(mime, "image/") {
			mime = "image/jpeg"
		}
		dataURL := fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(img.Data))
		parts = append(parts, contentPart{Type: "image_url", ImageURL: &imageURL{URL: dataURL}})
	}

	reqBody := chatRequest{
		Model:          c.model,
		ResponseFormat: responseFormat{Type: "json_object"},
		Temperature:    extractionTemperature,
		Messages: []chatMessage{
			{Role: "system", Content: "You only produce strict JSON. No prose."},
			{Role: "user", Content: parts},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("model API returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return nil, fmt.Errorf("model returned an empty response")
	}

	var result Result
	if err := json.Unmarshal([]byte(parsed.Choices[0].Message.Content), &result); err != nil {
		return nil, fmt.Errorf("failed to parse model JSON: %w", err)
	}
	if err := validate(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// validate checks presence of the fields the client relies on to pre-fill
// the form. Anything beyond that is left to the caller.
func validate(r *Result) error {
	if r.Title == "" || r.Description == "" {
		return fmt.Errorf("model JSON missing title or description")
	}
	if r.Category == "" || r.Condition == "" || r.Storage == "" {
		return fmt.Errorf("model JSON missing category, condition or storage")
	}
	return nil
}
