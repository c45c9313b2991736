package prommetrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestPrometheusMetrics_RecordVerification(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg, "candycheck")

	metrics.RecordVerification("app_store", "production", "ok", 120*time.Millisecond)
	metrics.RecordVerification("app_store", "", "transport_error", 10*time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("expected metrics to be recorded")
	}
}

func TestPrometheusMetrics_RecordSandboxRedirect(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg, "candycheck")

	metrics.RecordSandboxRedirect()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	found := false
	for _, f := range families {
		if f.GetName() == "candycheck_sandbox_redirects_total" {
			found = true
			if got := f.GetMetric()[0].GetCounter().GetValue(); got != 1 {
				t.Errorf("expected counter 1, got %v", got)
			}
		}
	}
	if !found {
		t.Error("expected sandbox redirect counter to be registered")
	}
}
