package middleware

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

// RequestID tags every request with a correlation id and logs the outcome.
// The id is echoed in X-Request-ID so support tickets can be matched to
// server logs.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, statusCode: 200}
		next.ServeHTTP(wrapped, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))

		// The header is client-supplied and may be any length.
		short := id
		if len(short) > 8 {
			short = short[:8]
		}
		log.Printf("[HTTP] %s %s %s -> %d (%s)", short, r.Method, r.URL.Path,
			wrapped.statusCode, time.Since(start))
	})
}

// GetRequestID returns the correlation id stored by RequestID, if any.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
