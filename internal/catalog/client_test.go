package catalog

import (
	"chronicrelief/server/internal/config"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

// testClient points an httpClient at a local test server.
func testClient(t *testing.T, handler http.Handler) (*httpClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewTLSServer(handler)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("parse test server url: %v", err)
	}
	c := &httpClient{
		apiKey: "test-key",
		host:   u.Host,
		client: srv.Client(),
	}
	c.client.Timeout = 5 * time.Second
	return c, srv
}

func TestSearchByNameSendsCredentials(t *testing.T) {
	var gotKey, gotHost, gotPath string
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-RapidAPI-Key")
		gotHost = r.Header.Get("X-RapidAPI-Host")
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode([]Item{{Name: "pull up", BodyPart: "back"}})
	}))

	items, err := c.SearchByName(context.Background(), "pull up")
	if err != nil {
		t.Fatalf("SearchByName: %v", err)
	}
	if len(items) != 1 || items[0].Name != "pull up" {
		t.Fatalf("unexpected items: %+v", items)
	}
	if gotKey != "test-key" {
		t.Errorf("key header = %q", gotKey)
	}
	if gotHost != c.host {
		t.Errorf("host header = %q, want %q", gotHost, c.host)
	}
	if !strings.HasPrefix(gotPath, "/exercises/name/") {
		t.Errorf("path = %q", gotPath)
	}
}

func TestSearchByBodyPartTruncates(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		items := make([]Item, 30)
		for i := range items {
			items[i] = Item{Name: "exercise", BodyPart: "back"}
		}
		json.NewEncoder(w).Encode(items)
	}))

	items, err := c.SearchByBodyPart(context.Background(), "back", 12)
	if err != nil {
		t.Fatalf("SearchByBodyPart: %v", err)
	}
	if len(items) != 12 {
		t.Fatalf("got %d items, want 12", len(items))
	}
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusTooManyRequests, ErrRateLimited},
	}
	for _, tc := range cases {
		c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))
		_, err := c.SearchByName(context.Background(), "plank")
		if !errors.Is(err, tc.want) {
			t.Errorf("status %d: got %v, want %v", tc.status, err, tc.want)
		}
	}
}

func TestUnconfiguredClientNeverDials(t *testing.T) {
	c := NewClient(config.ExerciseDBConfig{})
	if c.Configured() {
		t.Fatal("empty key reported as configured")
	}
	_, err := c.SearchByName(context.Background(), "plank")
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("got %v, want ErrNotConfigured", err)
	}
}
