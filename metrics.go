package mockauth

import "sync/atomic"

// MetricID identifies one engine counter.
type MetricID uint16

const (
	// MetricRegisterSuccess counts completed registrations.
	MetricRegisterSuccess MetricID = iota
	// MetricRegisterDuplicate counts registrations rejected on email conflict.
	MetricRegisterDuplicate
	// MetricRegisterInvalid counts registrations rejected on validation.
	MetricRegisterInvalid
	// MetricLoginSuccess counts issued access tokens.
	MetricLoginSuccess
	// MetricLoginFailure counts rejected credential attempts.
	MetricLoginFailure
	// MetricLoginUnverified counts logins blocked by unverified email.
	MetricLoginUnverified
	// MetricEmailVerificationSuccess counts redeemed verification tokens.
	MetricEmailVerificationSuccess
	// MetricEmailVerificationFailure counts unknown verification tokens.
	MetricEmailVerificationFailure
	// MetricVerificationResent counts reissued verification tokens.
	MetricVerificationResent
	// MetricPasswordResetRequest counts issued reset tokens.
	MetricPasswordResetRequest
	// MetricPasswordResetSuccess counts completed password resets.
	MetricPasswordResetSuccess
	// MetricPasswordResetFailure counts rejected password resets.
	MetricPasswordResetFailure
	// MetricProfileCompleted counts profile completions.
	MetricProfileCompleted
	// MetricTokenRejected counts session tokens that failed verification.
	MetricTokenRejected
	metricIDCount
)

const cacheLineSize = 64

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics holds the engine's atomic operation counters. A nil or disabled
// Metrics is a no-op on every method.
type Metrics struct {
	enabled  bool
	counters [metricIDCount]paddedCounter
}

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// NewMetrics returns a Metrics honoring cfg.Enabled.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

// Enabled reports whether counters are being recorded.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// Inc increments one counter. Out-of-range ids are ignored.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Value reads one counter.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot copies every counter. The result is detached from live updates.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{Counters: make(map[MetricID]uint64, metricIDCount)}
	if m == nil {
		return snap
	}
	for id := MetricID(0); id < metricIDCount; id++ {
		snap.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}
	return snap
}
