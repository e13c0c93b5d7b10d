// Package retrieval ranks corpus documents against a query vector.
package retrieval

import (
	"sort"

	"github.com/raglab/answerd/internal/domain"
	"github.com/raglab/answerd/internal/index"
)

// Transformer projects text into the fitted vector space.
type Transformer interface {
	Transform(text string) index.Vector
}

// Result is one retrieval outcome: ranked snippets plus the confidence flag.
// LowConfidence is informational; it never suppresses results.
type Result struct {
	Snippets      []domain.ScoredDocument
	LowConfidence bool
}

// Service scores queries against the fixed corpus. Document vectors are
// projected once at construction and read-only afterwards, so any number of
// requests may call Retrieve concurrently.
type Service struct {
	docs             []domain.Document
	vectors          []index.Vector
	lowConfThreshold float64
}

// New creates a retrieval service, projecting every corpus document through
// the already-fitted vector space.
func New(space Transformer, docs []domain.Document, lowConfThreshold float64) *Service {
	vectors := make([]index.Vector, len(docs))
	for i, d := range docs {
		vectors[i] = space.Transform(d.Text)
	}
	return &Service{
		docs:             docs,
		vectors:          vectors,
		lowConfThreshold: lowConfThreshold,
	}
}

// CorpusSize returns the number of indexed documents.
func (s *Service) CorpusSize() int {
	return len(s.docs)
}

// Retrieve ranks all documents against the query vector and returns the top
// cfg.TopK, capped at corpus size. Ordering is score descending; ties keep
// corpus insertion order, so identical inputs always produce identical output.
func (s *Service) Retrieve(queryVec index.Vector, cfg domain.RetrievalConfig) Result {
	scored := make([]domain.ScoredDocument, len(s.docs))
	for i, d := range s.docs {
		scored[i] = domain.ScoredDocument{
			ID:    d.ID,
			Text:  d.Text,
			Score: score(queryVec, s.vectors[i], cfg.Metric),
		}
	}

	// Stable sort preserves insertion order among equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	k := cfg.TopK
	if k > len(scored) {
		k = len(scored)
	}
	if k < 0 {
		k = 0
	}
	scored = scored[:k]

	return Result{
		Snippets:      scored,
		LowConfidence: s.isLowConfidence(scored),
	}
}

func score(query, doc index.Vector, metric domain.Metric) float64 {
	if metric == domain.MetricDot {
		return query.Dot(doc)
	}
	return index.Cosine(query, doc)
}

// isLowConfidence reports whether the best score falls below the threshold.
// An empty result set is always low confidence.
func (s *Service) isLowConfidence(scored []domain.ScoredDocument) bool {
	if len(scored) == 0 {
		return true
	}
	return scored[0].Score < s.lowConfThreshold
}
