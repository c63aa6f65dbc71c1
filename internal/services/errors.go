package services

import (
	"errors"
	"fmt"
)

// ErrGeneration is the single user-facing generation failure. The
// underlying provider or parse detail is logged, not returned.
var ErrGeneration = errors.New("generation failed")

// FetchError reports a non-success HTTP status while importing a URL.
type FetchError struct {
	URL    string
	Status int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed for %s: status %d", e.URL, e.Status)
}
