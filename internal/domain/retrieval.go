package domain

import (
	"fmt"
)

// Metric selects how query and document vectors are compared.
type Metric int

const (
	// MetricCosine is angle-based similarity, invariant to vector magnitude.
	MetricCosine Metric = iota
	// MetricDot is the raw dot product. Magnitude-sensitive: longer, denser
	// documents can outscore shorter ones with the same term overlap.
	MetricDot
)

// String returns the metric name used in config labels.
func (m Metric) String() string {
	switch m {
	case MetricCosine:
		return "cosine"
	case MetricDot:
		return "dot"
	default:
		return "unknown"
	}
}

// RetrievalConfig binds a similarity metric to a result count.
// Internal components never branch on preset strings; the name is resolved
// into this struct once at the boundary.
type RetrievalConfig struct {
	Metric Metric
	TopK   int
}

// Presets available to callers. The set is closed: an unrecognized name is a
// validation error at the boundary, not a fallback.
const (
	PresetCos3 = "cos3"
	PresetDot5 = "dot5"
)

// ConfigFromPreset resolves a preset name into a RetrievalConfig.
func ConfigFromPreset(name string) (RetrievalConfig, error) {
	switch name {
	case PresetCos3:
		return RetrievalConfig{Metric: MetricCosine, TopK: 3}, nil
	case PresetDot5:
		return RetrievalConfig{Metric: MetricDot, TopK: 5}, nil
	default:
		return RetrievalConfig{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
}

// WithTopK returns a copy of the config with the result count overridden.
// The override must already be validated against the caller's bound.
func (c RetrievalConfig) WithTopK(k int) RetrievalConfig {
	c.TopK = k
	return c
}

// Label renders the resolved config for inclusion in responses, e.g. "cosine,k=3".
func (c RetrievalConfig) Label() string {
	return fmt.Sprintf("%s,k=%d", c.Metric, c.TopK)
}
