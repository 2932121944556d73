package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"paie/internal/platform/metrics"
)

func TestLoggerEmitsStructuredRecord(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	collector := metrics.New()

	handler := RequestID(Logger(logger, collector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payroll/compute", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if entry["msg"] != "request" || entry["path"] != "/api/v1/payroll/compute" || entry["status"] != float64(http.StatusTeapot) {
		t.Fatalf("unexpected log entry %+v", entry)
	}
	if entry["level"] != "WARN" {
		t.Fatalf("expected WARN for 4xx, got %v", entry["level"])
	}
	if entry["requestId"] == "" {
		t.Fatal("expected request id in log entry")
	}
	if collector.Snapshot()["clientErrorsTotal"] != uint64(1) {
		t.Fatalf("expected request to be recorded, got %+v", collector.Snapshot())
	}
}
