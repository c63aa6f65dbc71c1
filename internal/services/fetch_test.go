package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchURL(t *testing.T) {
	var gotUserAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer srv.Close()

	svc := NewFetchService()
	body, err := svc.FetchURL(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !strings.Contains(body, "hello") {
		t.Errorf("Unexpected body %q", body)
	}
	if !strings.HasPrefix(gotUserAgent, "LiteracyStamina/") {
		t.Errorf("Expected descriptive User-Agent, got %q", gotUserAgent)
	}
}

func TestFetchURLNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	svc := NewFetchService()
	_, err := svc.FetchURL(context.Background(), srv.URL)

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Expected FetchError, got %v", err)
	}
	if fetchErr.Status != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", fetchErr.Status)
	}
	if fetchErr.URL != srv.URL {
		t.Errorf("Expected URL %q in error, got %q", srv.URL, fetchErr.URL)
	}
}

func TestFetchURLInvalid(t *testing.T) {
	svc := NewFetchService()
	if _, err := svc.FetchURL(context.Background(), "://not-a-url"); err == nil {
		t.Fatalf("Expected error for malformed URL")
	}
}
