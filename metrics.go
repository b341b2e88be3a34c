package consoleauth

import (
	"sync/atomic"
	"time"
)

// MetricID identifies a counter or histogram slot in the in-process metrics.
type MetricID uint16

const (
	// MetricLoginSuccess counts successful password logins.
	MetricLoginSuccess MetricID = iota
	// MetricLoginFailure counts rejected or failed password logins.
	MetricLoginFailure
	// MetricLoginStale counts login-family completions discarded because a
	// newer attempt superseded them.
	MetricLoginStale
	// MetricTelLoginSuccess counts successful mobile-code logins.
	MetricTelLoginSuccess
	// MetricTelLoginFailure counts rejected or failed mobile-code logins.
	MetricTelLoginFailure
	// MetricTelLoginUnregistered counts tel logins steered to registration.
	MetricTelLoginUnregistered
	// MetricRegisterSuccess counts accepted registrations.
	MetricRegisterSuccess
	// MetricRegisterFailure counts rejected or failed registrations.
	MetricRegisterFailure
	// MetricPasswordResetSuccess counts accepted password resets.
	MetricPasswordResetSuccess
	// MetricPasswordResetFailure counts rejected or failed password resets.
	MetricPasswordResetFailure
	// MetricCodeSendSuccess counts dispatched verification codes.
	MetricCodeSendSuccess
	// MetricCodeSendFailure counts failed code dispatches.
	MetricCodeSendFailure
	// MetricCodeSendRejected counts code sends rejected locally by the
	// empty-phone / in-flight / cooldown triple guard.
	MetricCodeSendRejected
	// MetricRedirectFallback counts post-login redirects that failed
	// re-validation and fell back to the default route.
	MetricRedirectFallback
	// MetricLogout counts explicit logouts.
	MetricLogout
	// MetricForcedExpiry counts session clears forced by the transport's
	// 401/403 interceptor.
	MetricForcedExpiry
	// MetricSessionRestored counts sessions re-seeded from a persisted token.
	MetricSessionRestored
	// MetricSessionRestoreFailure counts restore attempts that found the
	// token stale or rejected.
	MetricSessionRestoreFailure
	// MetricTokenRefresh counts successful token-pair refreshes.
	MetricTokenRefresh
	// MetricGuardAllowed counts navigation attempts the guard let through.
	MetricGuardAllowed
	// MetricGuardRedirected counts attempts redirected (login, defaults).
	MetricGuardRedirected
	// MetricGuardDenied counts attempts sent to the forbidden page.
	MetricGuardDenied
	// MetricGuardCompleted counts transitions that actually landed, as
	// reported by the host router through Guard.After.
	MetricGuardCompleted
	// MetricGuardLatency is the guard decision latency histogram.
	MetricGuardLatency
	metricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics holds atomic counters and an optional guard-latency histogram.
// All operations are safe for concurrent use and allocation-free.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot is a point-in-time deep copy of all metrics.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// NewMetrics creates a [Metrics] instance configured by cfg. When Enabled is
// false, all operations are no-ops.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

// Enabled reports whether counters are being recorded.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// Inc adds one to the counter for id. Unknown IDs are ignored.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe records a guard decision latency. Only [MetricGuardLatency] has a
// histogram; other IDs are ignored.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enableLatency || id != MetricGuardLatency {
		return
	}
	atomic.AddUint64(&m.histograms[id].buckets[bucketIndex(d)], 1)
}

// Value returns the current counter for id.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot returns a deep copy of all counters and histograms.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}

	s := MetricsSnapshot{
		Counters:   make(map[MetricID]uint64, int(metricIDCount)),
		Histograms: make(map[MetricID][]uint64, 1),
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		buckets := make([]uint64, histBucketCount)
		for i := 0; i < histBucketCount; i++ {
			buckets[i] = atomic.LoadUint64(&m.histograms[MetricGuardLatency].buckets[i])
		}
		s.Histograms[MetricGuardLatency] = buckets
	}

	return s
}

func bucketIndex(d time.Duration) int {
	us := d.Microseconds()

	switch {
	case us <= 5:
		return 0
	case us <= 10:
		return 1
	case us <= 25:
		return 2
	case us <= 50:
		return 3
	case us <= 100:
		return 4
	case us <= 250:
		return 5
	case us <= 500:
		return 6
	default:
		return 7
	}
}
