package services

import (
	"context"
	"fmt"
	"log"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/carolinefzhang/selective-practice/workers/publisher/domain"
)

// Consumer-side interfaces

type ObjectStore interface {
	UploadBytes(ctx context.Context, bucket, key string, data []byte, contentType string) error
	PublicURL(bucket, key string) string
}

type ImageDownloader interface {
	DownloadImage(url string) ([]byte, string, error)
}

// RehostService moves one image from its original location into object
// storage and reports the stable public URL. It never returns an error:
// every failure degrades to "absent" so the owning row can still publish.
type RehostService struct {
	store      ObjectStore
	downloader ImageDownloader
	bucket     string
}

func NewRehostService(store ObjectStore, downloader ImageDownloader, bucket string) *RehostService {
	return &RehostService{
		store:      store,
		downloader: downloader,
		bucket:     bucket,
	}
}

// Rehost downloads the image and re-uploads it under a fresh public/ key.
// Non-HTTP(S) or empty input is rejected without touching the network.
func (s *RehostService) Rehost(ctx context.Context, rawURL string) (string, bool) {
	if rawURL == "" || !strings.HasPrefix(rawURL, "http") {
		return "", false
	}

	log.Printf("Downloading image from: %s", rawURL)
	data, contentType, err := s.downloader.DownloadImage(rawURL)
	if err != nil {
		log.Printf("Failed to download image %s: %v", rawURL, err)
		return "", false
	}
	if contentType == "" {
		contentType = "image/png"
	}

	ext := extensionFor(rawURL, contentType)
	key := fmt.Sprintf("%s%s.%s", domain.PublicPrefix, uuid.New().String(), ext)

	if err := s.store.UploadBytes(ctx, s.bucket, key, data, contentType); err != nil {
		log.Printf("Failed to upload image %s: %v", rawURL, err)
		return "", false
	}

	publicURL := s.store.PublicURL(s.bucket, key)
	log.Printf("Successfully uploaded %s, public URL: %s", key, publicURL)
	return publicURL, true
}

// extensionFor derives a file extension, preferring the content type and
// falling back to the URL's path suffix with query/fragment noise stripped.
func extensionFor(url, contentType string) string {
	ext := ""

	if contentType != "" {
		if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
			ext = strings.TrimPrefix(exts[0], ".")
		}
	}

	if ext == "" {
		trimmed := strings.SplitN(url, "?", 2)[0]
		trimmed = strings.SplitN(trimmed, "#", 2)[0]
		urlExt := filepath.Ext(trimmed)
		if urlExt != "" && len(urlExt) < 6 {
			ext = strings.TrimPrefix(urlExt, ".")
		}
	}

	if ext == "" {
		ext = domain.DefaultImageExtension
	}
	return ext
}
