package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemove_DeletesObject(t *testing.T) {
	var gotMethod, gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, "store-key")
	err := client.Remove(context.Background(), server.URL+"/donations/don-1/photo.jpg")

	assert.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/donations/don-1/photo.jpg", gotPath)
	assert.Equal(t, "Bearer store-key", gotAuth)
}

func TestRemove_ToleratesAlreadyGone(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "store-key")
	err := client.Remove(context.Background(), server.URL+"/donations/gone.jpg")

	assert.NoError(t, err)
}

func TestRemove_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(server.URL, "store-key")
	err := client.Remove(context.Background(), server.URL+"/donations/locked.jpg")

	assert.Error(t, err)
}

func TestRemove_RefusesForeignURL(t *testing.T) {
	client := NewClient("https://store.example.com", "store-key")

	err := client.Remove(context.Background(), "https://evil.example.com/anything")

	assert.Error(t, err)
}

func TestRemove_NoopWithoutBaseURL(t *testing.T) {
	client := NewClient("", "store-key")

	err := client.Remove(context.Background(), "https://anywhere.example.com/x.jpg")

	assert.NoError(t, err)
}
