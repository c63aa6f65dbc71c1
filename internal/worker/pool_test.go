package worker

import (
	"context"
	"fmt"
	"testing"

	"stamina-backend/internal/services"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"fetch failure", &services.FetchError{URL: "https://example.com", Status: 404}, "FETCH_ERROR"},
		{"wrapped fetch failure", fmt.Errorf("resolving source: %w", &services.FetchError{Status: 500}), "FETCH_ERROR"},
		{"generation failure", services.ErrGeneration, "GENERATION_ERROR"},
		{"wrapped generation failure", fmt.Errorf("%w: no quiz card", services.ErrGeneration), "GENERATION_ERROR"},
		{"anything else", fmt.Errorf("db down"), "JOB_FAILED"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := errorCode(tc.err); got != tc.want {
				t.Errorf("errorCode(%v) = %q, want %q", tc.err, got, tc.want)
			}
		})
	}
}

func TestResolveSourceRequiresASource(t *testing.T) {
	p := &Pool{}
	if _, err := p.resolveSource(context.Background(), DeckJobConfig{}); err == nil {
		t.Fatalf("Expected error for config with no source")
	}
}
