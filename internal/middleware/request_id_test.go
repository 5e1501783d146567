package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestIDGeneratesWhenMissing(t *testing.T) {
	var got string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetRequestID(r.Context())
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/customers", nil))

	if got == "" {
		t.Error("no request id stored in context")
	}
	if rr.Header().Get("X-Request-ID") != got {
		t.Errorf("echoed id %q does not match context id %q", rr.Header().Get("X-Request-ID"), got)
	}
}

func TestRequestIDAcceptsShortClientHeader(t *testing.T) {
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Client-supplied ids can be any length, including shorter than the
	// truncated form used in the access log.
	for _, id := range []string{"abc", "", "12345678", "x"} {
		req := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
		if id != "" {
			req.Header.Set("X-Request-ID", id)
		}
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("id %q: status = %d, want 200", id, rr.Code)
		}
		if id != "" && rr.Header().Get("X-Request-ID") != id {
			t.Errorf("id %q not echoed, got %q", id, rr.Header().Get("X-Request-ID"))
		}
	}
}
