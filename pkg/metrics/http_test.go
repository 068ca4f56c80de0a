package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequestCountsByLabels(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest(http.MethodGet, "/metrics/churn", http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/metrics/churn", http.StatusOK, 10*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/analytics/revenue", http.StatusBadRequest, time.Millisecond)

	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/metrics/churn", "200")); got != 2 {
		t.Fatalf("expected 2 churn requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/analytics/revenue", "400")); got != 1 {
		t.Fatalf("expected 1 revenue request, got %v", got)
	}
}

func TestObserveRequestNilReceiverIsSafe(t *testing.T) {
	var m *HTTPMetrics
	m.ObserveRequest(http.MethodGet, "", http.StatusOK, 0)

	empty := NewHTTPMetrics(nil)
	empty.ObserveRequest(http.MethodGet, "/", http.StatusOK, 0)
}

func TestNormalizeEndpoint(t *testing.T) {
	if got := normalizeEndpoint(""); got != "unknown" {
		t.Fatalf("expected unknown for empty endpoint, got %q", got)
	}
}
