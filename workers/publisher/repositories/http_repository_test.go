package repositories

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDownloadImage(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G'}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(payload)
	}))
	defer server.Close()

	repo := NewHTTPRepository()
	data, contentType, err := repo.DownloadImage(server.URL + "/img.png")

	assert.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Equal(t, "image/png", contentType)
}

func TestDownloadImageNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	repo := NewHTTPRepository()
	_, _, err := repo.DownloadImage(server.URL + "/missing.png")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestDownloadImageConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	repo := NewHTTPRepository()
	_, _, err := repo.DownloadImage(server.URL + "/img.png")
	assert.Error(t, err)
}
