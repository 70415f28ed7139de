package intake

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func modelReply(t *testing.T, content string) []byte {
	t.Helper()
	reply := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	out, err := json.Marshal(reply)
	assert.NoError(t, err)
	return out
}

const validExtraction = `{
	"title": "Sourdough bread",
	"description": "Two fresh loaves, baked this morning.",
	"category": "bakery",
	"condition": "sealed",
	"storage": "ambient",
	"expiry_date": "2026-09-03",
	"allergens": ["gluten"],
	"confidence": {"overall": 0.9, "expiry": 0.8, "category": 0.95}
}`

func TestAnalyze_Success(t *testing.T) {
	var captured chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write(modelReply(t, validExtraction))
	}))
	defer server.Close()

	client := NewClient("test-key", "gpt-4o-mini").WithBaseURL(server.URL)
	result, err := client.Analyze(context.Background(), []Image{
		{MIMEType: "image/png", Data: []byte("fake-png")},
	})

	assert.NoError(t, err)
	assert.Equal(t, "Sourdough bread", result.Title)
	assert.Equal(t, "bakery", result.Category)
	assert.Equal(t, []string{"gluten"}, result.Allergens)
	assert.InDelta(t, 0.9, result.Confidence.Overall, 0.001)

	assert.Equal(t, "gpt-4o-mini", captured.Model)
	assert.Equal(t, "json_object", captured.ResponseFormat.Type)
	assert.InDelta(t, extractionTemperature, captured.Temperature, 0.001)
	if assert.Len(t, captured.Messages, 2) {
		assert.Equal(t, "system", captured.Messages[0].Role)
	}
}

func TestAnalyze_ForwardsImagesAsDataURLs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		payload, err := json.Marshal(raw)
		assert.NoError(t, err)
		// one text part plus two image parts, unknown MIME defaulted
		assert.Contains(t, string(payload), "data:image/png;base64,")
		assert.Contains(t, string(payload), "data:image/jpeg;base64,")
		w.Write(modelReply(t, validExtraction))
	}))
	defer server.Close()

	client := NewClient("test-key", "gpt-4o-mini").WithBaseURL(server.URL)
	_, err := client.Analyze(context.Background(), []Image{
		{MIMEType: "image/png", Data: []byte("a")},
		{MIMEType: "application/octet-stream", Data: []byte("b")},
	})

	assert.NoError(t, err)
}

func TestAnalyze_NoImages(t *testing.T) {
	client := NewClient("test-key", "gpt-4o-mini")

	_, err := client.Analyze(context.Background(), nil)

	assert.Error(t, err)
}

func TestAnalyze_TooManyImages(t *testing.T) {
	client := NewClient("test-key", "gpt-4o-mini")

	images := make([]Image, MaxImages+1)
	for i := range images {
		images[i] = Image{MIMEType: "image/jpeg", Data: []byte("x")}
	}
	_, err := client.Analyze(context.Background(), images)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "maximum")
}

func TestAnalyze_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer server.Close()

	client := NewClient("test-key", "gpt-4o-mini").WithBaseURL(server.URL)
	_, err := client.Analyze(context.Background(), []Image{{MIMEType: "image/jpeg", Data: []byte("x")}})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestAnalyze_IncompleteModelJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(modelReply(t, `{"title": "Bread"}`))
	}))
	defer server.Close()

	client := NewClient("test-key", "gpt-4o-mini").WithBaseURL(server.URL)
	_, err := client.Analyze(context.Background(), []Image{{MIMEType: "image/jpeg", Data: []byte("x")}})

	assert.Error(t, err)
}

func TestAnalyze_NonJSONContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(modelReply(t, "Sure! Here is the JSON you asked for..."))
	}))
	defer server.Close()

	client := NewClient("test-key", "gpt-4o-mini").WithBaseURL(server.URL)
	_, err := client.Analyze(context.Background(), []Image{{MIMEType: "image/jpeg", Data: []byte("x")}})

	assert.Error(t, err)
}

func TestBuildPrompt_ContainsRules(t *testing.T) {
	prompt := buildPrompt()
	for _, rule := range safeSharingRules {
		assert.True(t, strings.Contains(prompt, rule))
	}
	assert.Contains(t, prompt, "confidence")
}
