package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	dto "github.com/prometheus/client_model/go"

	"github.com/janisto/trail-profiles/internal/platform/metrics"
)

func requestCount(t *testing.T, method, route, status string) float64 {
	t.Helper()
	var m dto.Metric
	if err := metrics.HTTPRequestsTotal.WithLabelValues(method, route, status).Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestMetricsLabelsByRoutePattern(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Metrics())
	router.Get("/profiles/{email}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := requestCount(t, http.MethodGet, "/profiles/{email}", "404")
	for _, email := range []string{"a@x.com", "b@x.com"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/profiles/"+email, nil))
	}
	after := requestCount(t, http.MethodGet, "/profiles/{email}", "404")

	if after-before != 2 {
		t.Fatalf("expected 2 requests on one series, got %v", after-before)
	}
}

func TestMetricsDefaultsToOK(t *testing.T) {
	router := chi.NewRouter()
	router.Use(Metrics())
	router.Get("/activities", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("[]"))
	})

	before := requestCount(t, http.MethodGet, "/activities", "200")
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/activities", nil))
	if after := requestCount(t, http.MethodGet, "/activities", "200"); after-before != 1 {
		t.Fatalf("expected one 200 observation, got %v", after-before)
	}
}
