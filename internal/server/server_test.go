package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AccelByte/extend-achievement-unlocker/pkg/metrics"
	"github.com/AccelByte/extend-achievement-unlocker/pkg/signal"
)

func TestMetricsServer_Setup(t *testing.T) {
	m := NewMetricsServer(8080, "/metrics")
	if err := m.Setup(); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	metrics.TriggersTotal.WithLabelValues(signal.KindLogin.Label()).Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "achievement_triggers_total") {
		t.Error("Expected achievement metrics to be exposed")
	}
}

func TestSetupTelemetry(t *testing.T) {
	shutdown, err := SetupTelemetry(context.Background(), "achievement-test", "test", 0, "")
	if err != nil {
		t.Fatalf("SetupTelemetry() error = %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() error = %v", err)
	}
}

func TestGRPCServer_Setup(t *testing.T) {
	s := NewGRPCServer(6565, nil)
	if err := s.Setup(); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	s.SetServing(true)

	info := s.server.GetServiceInfo()
	if _, ok := info["achievement.v1.AchievementService"]; !ok {
		t.Error("Expected achievement service to be registered")
	}
}
