// Package guardrail decides whether a query must be refused before any
// retrieval happens. Matching is two-stage: a cheap literal containment check
// first, then cosine similarity against denylist phrases projected through
// the same vector space as the corpus.
package guardrail

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/raglab/answerd/internal/domain"
	"github.com/raglab/answerd/internal/index"
)

// Transformer projects text into the fitted vector space.
type Transformer interface {
	Transform(text string) index.Vector
}

type entry struct {
	phrase  string
	lowered string
	vector  index.Vector // L2-normalized projection of the phrase
}

// Matcher checks queries against an ordered denylist. Built once at startup;
// read-only afterwards, so concurrent Check calls need no synchronization.
type Matcher struct {
	entries   []entry
	threshold float64
}

// New creates a Matcher. The Transformer must be the vector space fitted over
// the corpus — taking it as a constructor dependency is what guarantees the
// denylist vectors and document vectors share one vocabulary and weighting.
// An empty phrase list is legal and produces a matcher that never blocks.
func New(space Transformer, phrases []string, threshold float64) *Matcher {
	entries := make([]entry, 0, len(phrases))
	for _, p := range phrases {
		entries = append(entries, entry{
			phrase:  p,
			lowered: strings.ToLower(p),
			vector:  space.Transform(p).Normalized(),
		})
	}
	return &Matcher{entries: entries, threshold: threshold}
}

// Check runs both stages against the query. The literal stage is
// authoritative: a containment match blocks regardless of the semantic
// threshold. The query vector must be the one projected for retrieval, so the
// query is vectorized exactly once per request.
func (m *Matcher) Check(query string, queryVec index.Vector) domain.Outcome {
	// Stage 1: case-insensitive substring containment, first match wins.
	lowered := strings.ToLower(query)
	for _, e := range m.entries {
		if strings.Contains(lowered, e.lowered) {
			return domain.Block(e.phrase, 0, domain.StageLiteral)
		}
	}

	// Stage 2: max cosine similarity over normalized vectors. An all-zero
	// query vector scores 0 everywhere and falls through to Allowed.
	queryNorm := queryVec.Normalized()
	bestScore := 0.0
	bestPhrase := ""
	for _, e := range m.entries {
		if s := queryNorm.Dot(e.vector); s > bestScore {
			bestScore = s
			bestPhrase = e.phrase
		}
	}
	if bestPhrase != "" && bestScore >= m.threshold {
		return domain.Block(bestPhrase, bestScore, domain.StageSemantic)
	}

	return domain.Allow()
}

// Size returns the number of denylist entries.
func (m *Matcher) Size() int {
	return len(m.entries)
}

// LoadFile reads a denylist from a YAML file: a flat list of phrases.
func LoadFile(path string) ([]string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read denylist file %s: %w", path, err)
	}

	var phrases []string
	if err := yaml.Unmarshal(data, &phrases); err != nil {
		return nil, fmt.Errorf("parse denylist file %s: %w", path, err)
	}

	for i, p := range phrases {
		if strings.TrimSpace(p) == "" {
			return nil, fmt.Errorf("denylist file %s: entry %d is blank", path, i)
		}
	}
	return phrases, nil
}
