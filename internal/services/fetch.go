package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const fetchUserAgent = "LiteracyStamina/1.0 (deck generation; +https://literacystamina.app)"

// Page bodies larger than this are cut off before normalization even
// sees them; the pipeline truncates again to its own character budget.
const maxFetchBytes = 5 << 20

// FetchService imports page bodies for URL-sourced decks.
type FetchService struct {
	httpClient *http.Client
}

func NewFetchService() *FetchService {
	return &FetchService{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchURL retrieves the body of url as raw HTML. Non-2xx responses
// produce a FetchError carrying the status code; normalization is the
// caller's job.
func (s *FetchService) FetchURL(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", url, err)
	}
	req.Header.Set("User-Agent", fetchUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.8")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{URL: url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read body of %s: %w", url, err)
	}

	return string(body), nil
}
