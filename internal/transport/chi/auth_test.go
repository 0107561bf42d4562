package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_DisabledWithoutKeys(t *testing.T) {
	for _, keys := range [][]string{nil, {"", ""}} {
		handler := BearerAuthMiddleware(keys)(okHandler())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/search/diagnostics", http.NoBody)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("keys %q: got %d, want %d", keys, rr.Code, http.StatusOK)
		}
	}
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"basic scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
		{"invalid token", "Bearer wrong-key", http.StatusUnauthorized},
		{"prefix of valid token", "Bearer key", http.StatusUnauthorized},
		{"first key", "Bearer key1", http.StatusOK},
		{"second key", "Bearer key2", http.StatusOK},
	}
	handler := BearerAuthMiddleware([]string{"key1", "key2"})(okHandler())

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/search/diagnostics", http.NoBody)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tc.want {
				t.Fatalf("got %d, want %d", rr.Code, tc.want)
			}
			if tc.want != http.StatusUnauthorized {
				return
			}
			var errResp ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if errResp.Code != codeUnauthorized {
				t.Errorf("error code: got %s, want %s", errResp.Code, codeUnauthorized)
			}
		})
	}
}
