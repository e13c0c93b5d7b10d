// Package metrics tracks per-request outcomes and latency. The Aggregator is
// the only shared mutable state in the serving path; everything else is
// read-only after startup.
package metrics

import (
	"math"
	"sort"
	"sync"
)

const defaultMaxSamples = 1000

// Event is one request's outcome. Blocked requests never reach the scorer and
// therefore always report LowConfidence false.
type Event struct {
	LatencyMS     float64
	Blocked       bool
	LowConfidence bool
}

// Snapshot is a read-only computed view over accumulated state.
type Snapshot struct {
	TotalRequests      int64   `json:"total_requests"`
	DenylistHits       int64   `json:"denylist_hits"`
	LowConfidenceCount int64   `json:"low_confidence_count"`
	LatencyMeanMS      float64 `json:"latency_ms_mean"`
	LatencyP95MS       float64 `json:"latency_ms_p95"`
	LowConfidenceRate  float64 `json:"low_confidence_rate"`
}

// Aggregator accumulates counters and latency samples across requests.
// Safe for concurrent use; Snapshot observes a consistent state because both
// paths run under the same mutex.
type Aggregator struct {
	mu sync.Mutex

	maxSamples int
	samples    []float64

	total   int64
	hits    int64
	lowConf int64
}

// NewAggregator creates an Aggregator keeping at most maxSamples recent
// latency samples. maxSamples <= 0 selects the default of 1000.
func NewAggregator(maxSamples int) *Aggregator {
	if maxSamples <= 0 {
		maxSamples = defaultMaxSamples
	}
	return &Aggregator{maxSamples: maxSamples}
}

// Record adds one request outcome. Counters are unbounded; the latency sample
// window keeps only the most recent maxSamples values.
func (a *Aggregator) Record(ev Event) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.total++
	if ev.Blocked {
		a.hits++
	}
	if ev.LowConfidence {
		a.lowConf++
	}

	a.samples = append(a.samples, ev.LatencyMS)
	if len(a.samples) > a.maxSamples {
		a.samples = append(a.samples[:0], a.samples[len(a.samples)-a.maxSamples:]...)
	}
}

// Snapshot computes derived statistics over the current state. Rates are 0
// when no requests have been recorded.
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	snap := Snapshot{
		TotalRequests:      a.total,
		DenylistHits:       a.hits,
		LowConfidenceCount: a.lowConf,
	}
	if a.total > 0 {
		snap.LowConfidenceRate = float64(a.lowConf) / float64(a.total)
	}
	if len(a.samples) > 0 {
		snap.LatencyMeanMS = mean(a.samples)
		snap.LatencyP95MS = percentile(a.samples, 95)
	}
	return snap
}

func mean(samples []float64) float64 {
	var sum float64
	for _, s := range samples {
		sum += s
	}
	return sum / float64(len(samples))
}

// percentile computes the p-th percentile with linear interpolation between
// closest ranks: rank = p/100 * (n-1) over the ascending-sorted samples.
func percentile(samples []float64, p float64) float64 {
	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
