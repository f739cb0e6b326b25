package service

import (
	"chronicrelief/server/internal/storage"
	"context"
	"fmt"
	"net/http"
	"time"
)

// MediaService copies exercise gifs from the vendor CDN into our own
// bucket on first access and hands out presigned download URLs.
type MediaService interface {
	Enabled() bool
	// GifURL returns a presigned URL for the cached copy of the gif,
	// fetching and storing it first when the bucket does not have it yet.
	GifURL(ctx context.Context, exerciseID, sourceURL string) (string, error)
}

// mediaService implements MediaService over S3-compatible storage.
type mediaService struct {
	storage    storage.MediaStorage
	httpClient *http.Client
	urlExpiry  time.Duration
}

// NewMediaService creates a media service. storage may be nil, in which
// case Enabled reports false and GifURL is never called.
func NewMediaService(store storage.MediaStorage) MediaService {
	return &mediaService{
		storage:    store,
		httpClient: &http.Client{Timeout: 20 * time.Second},
		urlExpiry:  storage.DefaultPresignedURLExpiry,
	}
}

func (s *mediaService) Enabled() bool {
	return s.storage != nil
}

func (s *mediaService) GifURL(ctx context.Context, exerciseID, sourceURL string) (string, error) {
	if s.storage == nil {
		return "", nil
	}
	key := "gifs/" + exerciseID + ".gif"

	exists, err := s.storage.ObjectExists(ctx, key)
	if err != nil {
		return "", err
	}
	if !exists {
		if err := s.copyFromSource(ctx, key, sourceURL); err != nil {
			return "", err
		}
	}

	return s.storage.GeneratePresignedDownloadURL(ctx, key, s.urlExpiry)
}

// copyFromSource streams the vendor gif into the bucket. Concurrent
// first accesses may both copy; the second write just overwrites the
// same bytes.
func (s *mediaService) copyFromSource(ctx context.Context, key, sourceURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch gif: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch gif: status %d", resp.StatusCode)
	}

	return s.storage.UploadObject(ctx, key, "image/gif", resp.Body)
}
