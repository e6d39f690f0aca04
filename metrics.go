package grover

import (
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	mu             sync.RWMutex
	WorkerCount    int
	TrialCount     int64
	FailedTrials   int64
	Measurements   int64
	Mismatches     int64
	TotalTrialTime time.Duration

	AverageTrialLatency time.Duration
	P95TrialLatency     time.Duration
	P99TrialLatency     time.Duration

	latencies  []time.Duration
	windowSize int

	collectors *collectors
}

type collectors struct {
	trials     prometheus.Counter
	failures   prometheus.Counter
	mismatches prometheus.Counter
	duration   prometheus.Histogram
}

func NewMetrics() *Metrics {
	return &Metrics{
		latencies:  make([]time.Duration, 0, 1000), // last 1000 trials
		windowSize: 1000,
	}
}

/*
Register exposes the metrics as Prometheus collectors. Registering the same
names twice on one registerer returns the registerer's error.
*/
func (m *Metrics) Register(reg prometheus.Registerer) error {
	c := &collectors{
		trials: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "grover_trials_total",
			Help: "Trials completed, successful or not.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "grover_trial_failures_total",
			Help: "Trials that returned an error.",
		}),
		mismatches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "grover_mismatches_total",
			Help: "Measurements that missed the target.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "grover_trial_duration_seconds",
			Help:    "Wall time of a single trial.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}

	for _, collector := range []prometheus.Collector{c.trials, c.failures, c.mismatches, c.duration} {
		if err := reg.Register(collector); err != nil {
			return err
		}
	}

	m.mu.Lock()
	m.collectors = c
	m.mu.Unlock()

	return nil
}

func (m *Metrics) recordTrial(start time.Time, measured, mismatches int, err error) {
	duration := time.Since(start)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.TrialCount++
	m.TotalTrialTime += duration

	if err != nil {
		m.FailedTrials++
	} else {
		m.Measurements += int64(measured)
		m.Mismatches += int64(mismatches)
	}

	m.updateLatencyPercentiles(duration)

	if c := m.collectors; c != nil {
		c.trials.Inc()
		c.duration.Observe(duration.Seconds())

		if err != nil {
			c.failures.Inc()
		} else {
			c.mismatches.Add(float64(mismatches))
		}
	}
}

func (m *Metrics) updateLatencyPercentiles(duration time.Duration) {
	m.AverageTrialLatency = m.TotalTrialTime / time.Duration(m.TrialCount)

	m.latencies = append(m.latencies, duration)
	if len(m.latencies) > m.windowSize {
		m.latencies = m.latencies[1:]
	}

	sorted := make([]time.Duration, len(m.latencies))
	copy(sorted, m.latencies)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	p95Index := min(int(float64(len(sorted))*0.95), len(sorted)-1)
	p99Index := min(int(float64(len(sorted))*0.99), len(sorted)-1)

	m.P95TrialLatency = sorted[p95Index]
	m.P99TrialLatency = sorted[p99Index]
}

// MismatchRate is the fraction of all recorded measurements that missed.
func (m *Metrics) MismatchRate() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.Measurements == 0 {
		return 0
	}
	return float64(m.Mismatches) / float64(m.Measurements)
}

func (m *Metrics) ExportMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"worker_count":  m.WorkerCount,
		"trial_count":   m.TrialCount,
		"failed_trials": m.FailedTrials,
		"measurements":  m.Measurements,
		"mismatches":    m.Mismatches,
		"avg_latency":   m.AverageTrialLatency.Milliseconds(),
		"p95_latency":   m.P95TrialLatency.Milliseconds(),
		"p99_latency":   m.P99TrialLatency.Milliseconds(),
	}
}
