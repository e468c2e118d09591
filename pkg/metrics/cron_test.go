package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func gather(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, family := range families {
		if family.GetName() == name {
			return family
		}
	}
	return nil
}

func TestCronJobMetrics_RecordsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCronJobMetrics(reg)

	m.IncSuccess("low-stock-sweep")
	m.IncSuccess("low-stock-sweep")
	m.IncFailure("low-stock-sweep")
	m.ObserveDuration("low-stock-sweep", 250*time.Millisecond)

	success := gather(t, reg, "comanda_cron_job_success")
	if success == nil || len(success.GetMetric()) != 1 {
		t.Fatalf("expected one success series")
	}
	if got := success.GetMetric()[0].GetCounter().GetValue(); got != 2 {
		t.Fatalf("expected 2 successes, got %v", got)
	}

	failure := gather(t, reg, "comanda_cron_job_failure")
	if got := failure.GetMetric()[0].GetCounter().GetValue(); got != 1 {
		t.Fatalf("expected 1 failure, got %v", got)
	}

	duration := gather(t, reg, "comanda_cron_job_duration_seconds")
	if got := duration.GetMetric()[0].GetHistogram().GetSampleCount(); got != 1 {
		t.Fatalf("expected 1 observation, got %v", got)
	}
}

func TestCronJobMetrics_NamespacedNames(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCronJobMetrics(reg)
	m.IncSuccess("low-stock-sweep")
	m.IncFailure("low-stock-sweep")
	m.ObserveDuration("low-stock-sweep", time.Second)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) != 3 {
		t.Fatalf("expected 3 metric families, got %d", len(families))
	}
	for _, family := range families {
		if !strings.HasPrefix(family.GetName(), "comanda_cron_") {
			t.Fatalf("metric %q missing comanda_cron_ prefix", family.GetName())
		}
	}
}

func TestCronJobMetrics_EmptyJobLabelNormalized(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCronJobMetrics(reg)

	m.IncSuccess("")

	success := gather(t, reg, "comanda_cron_job_success")
	labels := success.GetMetric()[0].GetLabel()
	if len(labels) != 1 || labels[0].GetValue() != "unknown" {
		t.Fatalf("expected unknown label, got %v", labels)
	}
}

func TestCronJobMetrics_NilSafe(t *testing.T) {
	var m *CronJobMetrics
	m.IncSuccess("job")
	m.IncFailure("job")
	m.ObserveDuration("job", time.Second)

	unregistered := NewCronJobMetrics(nil)
	unregistered.IncSuccess("job")
	unregistered.IncFailure("job")
	unregistered.ObserveDuration("job", time.Second)
}
