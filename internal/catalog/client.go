// Package catalog is the read-only ExerciseDB client. The resolver's
// last-resort stage and the seeding endpoint are its only consumers.
package catalog

import (
	"chronicrelief/server/internal/config"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

var (
	ErrNotConfigured = errors.New("exercise catalog credential is not configured")
	ErrUnauthorized  = errors.New("exercise catalog rejected the API key")
	ErrRateLimited   = errors.New("exercise catalog rate limit exceeded")
)

// Item is one exercise as the vendor returns it.
type Item struct {
	Name             string   `json:"name"`
	BodyPart         string   `json:"bodyPart"`
	Target           string   `json:"target"`
	SecondaryMuscles []string `json:"secondaryMuscles"`
	Equipment        string   `json:"equipment"`
	Instructions     []string `json:"instructions"`
	GifURL           string   `json:"gifUrl"`
}

// Client is the catalog boundary. Implementations must be safe for
// concurrent use.
type Client interface {
	// Configured reports whether an API key is present. Callers skip the
	// catalog stage entirely when it returns false.
	Configured() bool
	SearchByName(ctx context.Context, name string) ([]Item, error)
	SearchByBodyPart(ctx context.Context, bodyPart string, limit int) ([]Item, error)
}

// httpClient talks to the RapidAPI-hosted ExerciseDB.
type httpClient struct {
	apiKey string
	host   string
	client *http.Client
}

// NewClient creates an ExerciseDB client from config. A client with an
// empty key is valid; every call then returns ErrNotConfigured.
func NewClient(cfg config.ExerciseDBConfig) Client {
	host := cfg.Host
	if host == "" {
		host = "exercisedb.p.rapidapi.com"
	}
	return &httpClient{
		apiKey: cfg.APIKey,
		host:   host,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *httpClient) Configured() bool {
	return c.apiKey != ""
}

// SearchByName queries GET /exercises/name/{name}.
func (c *httpClient) SearchByName(ctx context.Context, name string) ([]Item, error) {
	return c.get(ctx, "/exercises/name/"+url.PathEscape(name))
}

// SearchByBodyPart queries GET /exercises/bodyPart/{part} and truncates
// the result to limit items.
func (c *httpClient) SearchByBodyPart(ctx context.Context, bodyPart string, limit int) ([]Item, error) {
	items, err := c.get(ctx, "/exercises/bodyPart/"+url.PathEscape(bodyPart))
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (c *httpClient) get(ctx context.Context, path string) ([]Item, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://"+c.host+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("catalog returned status %d: %s", resp.StatusCode, string(body))
	}

	var items []Item
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("catalog response decode failed: %w", err)
	}
	return items, nil
}
