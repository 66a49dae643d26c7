package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
)

func TestStructuredLoggerUsesRoutePatternAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := chi.NewRouter()
	r.Use(StructuredLogger(logger))
	r.Use(ActiveRequestsMiddleware(metricnoop.NewMeterProvider().Meter("test")))
	r.Delete("/api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/api/products/42", nil))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if rec["http.route"] != "/api/products/{id}" {
		t.Errorf("expected route pattern, got %v", rec["http.route"])
	}
	if rec["level"] != "WARN" {
		t.Errorf("expected WARN for 404, got %v", rec["level"])
	}
	if rec["http.response.status_code"] != float64(404) {
		t.Errorf("expected status 404, got %v", rec["http.response.status_code"])
	}
}

func TestStructuredLoggerDefaultsToOK(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := StructuredLogger(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/health", nil))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if rec["http.response.status_code"] != float64(200) || rec["level"] != "INFO" {
		t.Errorf("unexpected record %v", rec)
	}
	if rec["http.route"] != "/api/health" {
		t.Errorf("expected path fallback, got %v", rec["http.route"])
	}
}
