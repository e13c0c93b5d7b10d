// Package index implements the TF-IDF vector space shared by retrieval and
// guardrail matching. The space is fitted once over the fixed corpus; every
// later projection (queries, denylist phrases) reuses the same vocabulary and
// weighting, which is what makes cross-component similarity scores comparable.
package index

import (
	"fmt"
	"math"
	"sort"

	"github.com/raglab/answerd/internal/domain"
)

// VectorSpace is a fitted TF-IDF model. Immutable after Fit; safe for
// concurrent reads without synchronization.
type VectorSpace struct {
	idf map[string]float64
}

// Fit builds a VectorSpace over the corpus texts. Deterministic: the same
// corpus always yields the same vocabulary and weighting. maxFeatures <= 0
// means unlimited; otherwise the vocabulary keeps the terms with the highest
// document frequency, ties broken alphabetically.
//
// Returns ErrEmptyCorpus when no vocabulary can be derived. The caller must
// treat that as fatal at startup.
func Fit(texts []string, maxFeatures int) (*VectorSpace, error) {
	if len(texts) == 0 {
		return nil, domain.ErrEmptyCorpus
	}

	// Document frequency per term.
	df := make(map[string]int)
	for _, text := range texts {
		seen := make(map[string]struct{})
		for _, tok := range Tokenize(text) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	if len(df) == 0 {
		return nil, fmt.Errorf("%w: no terms survive tokenization", domain.ErrEmptyCorpus)
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if df[terms[i]] != df[terms[j]] {
			return df[terms[i]] > df[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if maxFeatures > 0 && len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}

	// Smoothed idf: ln((1+n)/(1+df)) + 1. Keeps every in-vocabulary term at a
	// strictly positive weight, so term weights are nonnegative throughout.
	n := float64(len(texts))
	idf := make(map[string]float64, len(terms))
	for _, term := range terms {
		idf[term] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	return &VectorSpace{idf: idf}, nil
}

// Transform projects text into the fitted vocabulary as raw tf·idf weights.
// Terms unseen at fit time are silently dropped; entirely out-of-vocabulary
// text yields an all-zero vector, which is a valid value, not an error.
func (s *VectorSpace) Transform(text string) Vector {
	tf := make(map[string]int)
	for _, tok := range Tokenize(text) {
		if _, ok := s.idf[tok]; ok {
			tf[tok]++
		}
	}

	vec := make(Vector, len(tf))
	for term, count := range tf {
		vec[term] = float64(count) * s.idf[term]
	}
	return vec
}

// VocabularySize returns the number of fitted terms.
func (s *VectorSpace) VocabularySize() int {
	return len(s.idf)
}
