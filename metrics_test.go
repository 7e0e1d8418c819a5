package mockauth

import (
	"sync"
	"testing"
)

func TestMetricsIncAndValue(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	m.Inc(MetricLoginSuccess)
	m.Inc(MetricLoginSuccess)
	m.Inc(MetricLoginFailure)

	if got := m.Value(MetricLoginSuccess); got != 2 {
		t.Fatalf("login success = %d, want 2", got)
	}
	if got := m.Value(MetricLoginFailure); got != 1 {
		t.Fatalf("login failure = %d, want 1", got)
	}
	if got := m.Value(MetricRegisterSuccess); got != 0 {
		t.Fatalf("untouched counter = %d, want 0", got)
	}
}

func TestMetricsDisabled(t *testing.T) {
	m := NewMetrics(MetricsConfig{})

	if m.Enabled() {
		t.Fatal("expected disabled metrics")
	}
	m.Inc(MetricLoginSuccess)
	if got := m.Value(MetricLoginSuccess); got != 0 {
		t.Fatalf("disabled metrics recorded %d", got)
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics

	m.Inc(MetricLoginSuccess)
	if m.Enabled() {
		t.Fatal("nil metrics reported enabled")
	}
	if got := m.Value(MetricLoginSuccess); got != 0 {
		t.Fatalf("nil metrics returned %d", got)
	}
	if snap := m.Snapshot(); len(snap.Counters) != 0 {
		t.Fatalf("nil snapshot has %d counters", len(snap.Counters))
	}
}

func TestMetricsIgnoresOutOfRangeID(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	m.Inc(MetricID(10_000))
	if got := m.Value(MetricID(10_000)); got != 0 {
		t.Fatalf("out-of-range read returned %d", got)
	}
}

func TestMetricsSnapshotDetached(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Inc(MetricProfileCompleted)

	snap := m.Snapshot()
	m.Inc(MetricProfileCompleted)

	if snap.Counters[MetricProfileCompleted] != 1 {
		t.Fatalf("snapshot = %d, want 1", snap.Counters[MetricProfileCompleted])
	}
	if got := m.Value(MetricProfileCompleted); got != 2 {
		t.Fatalf("live value = %d, want 2", got)
	}
}

func TestMetricsConcurrentInc(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	const workers = 8
	const perWorker = 1000

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				m.Inc(MetricTokenRejected)
			}
		}()
	}
	wg.Wait()

	if got := m.Value(MetricTokenRejected); got != workers*perWorker {
		t.Fatalf("counter = %d, want %d", got, workers*perWorker)
	}
}
