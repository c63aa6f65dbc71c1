package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestID assigns a UUID to each request unless the client supplied
// its own, and echoes it back on the response. Error payloads pick it up
// from the header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
			r.Header.Set("X-Request-ID", requestID)
		}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r)
	})
}
