package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/api/v1/search", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{}"))
	})
	r.Get("/api/v1/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/fail", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	return r
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := newRouter()

	tests := []struct {
		target string
		route  string
		status string
	}{
		{"/api/v1/search?q=x", "/api/v1/search", "200"},
		{"/api/v1/items/42", "/api/v1/items/{id}", "404"},
		{"/api/v1/items/43", "/api/v1/items/{id}", "404"},
		{"/fail", "/fail", "503"},
	}
	before := make([]float64, len(tests))
	for i, tc := range tests {
		before[i] = testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", tc.route, tc.status))
	}

	for _, tc := range tests {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tc.target, http.NoBody))
	}

	for i, tc := range tests {
		got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", tc.route, tc.status))
		if got <= before[i] {
			t.Errorf("%s: requests_total{route=%q,status=%s} did not increase", tc.target, tc.route, tc.status)
		}
	}
	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Error("expected duration observations")
	}
	if v := testutil.ToFloat64(httpInFlight); v != 0 {
		t.Errorf("in-flight gauge = %v after all requests finished", v)
	}
}

func TestMiddleware_OutsideRouter(t *testing.T) {
	h := Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", unmatchedRoute, "418"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/anything", http.NoBody))

	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", unmatchedRoute, "418")); got != before+1 {
		t.Errorf("unmatched counter = %v, want %v", got, before+1)
	}
}

func TestNormalizePath(t *testing.T) {
	if got := normalizePath(""); got != unmatchedRoute {
		t.Errorf("normalizePath(\"\") = %q", got)
	}
	if got := normalizePath("/health"); got != "/health" {
		t.Errorf("normalizePath(/health) = %q", got)
	}
}

func TestRegisterMetrics_Idempotent(t *testing.T) {
	RegisterHTTPMetrics()
	RegisterHTTPMetrics()
	RegisterSearchMetrics()
	RegisterSearchMetrics()
}
