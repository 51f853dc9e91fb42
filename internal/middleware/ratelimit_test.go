package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiter(t *testing.T) {
	t.Run("BurstThenThrottle", func(t *testing.T) {
		rl := NewRateLimiter(1, 2)
		handler := rl.Limit(okHandler())

		codes := []int{}
		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			codes = append(codes, rec.Code)
		}
		if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
			t.Errorf("Expected the burst to pass, got %v", codes)
		}
		if codes[2] != http.StatusTooManyRequests {
			t.Errorf("Expected 429 after the burst, got %d", codes[2])
		}
	})

	t.Run("LimitsArePerIP", func(t *testing.T) {
		rl := NewRateLimiter(1, 1)
		handler := rl.Limit(okHandler())

		first := httptest.NewRequest(http.MethodGet, "/", nil)
		first.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, first)
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected first request to pass, got %d", rec.Code)
		}

		other := httptest.NewRequest(http.MethodGet, "/", nil)
		other.RemoteAddr = "10.0.0.2:1234"
		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, other)
		if rec.Code != http.StatusOK {
			t.Errorf("Expected a different IP to get its own bucket, got %d", rec.Code)
		}
	})
}
