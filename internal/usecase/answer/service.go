// Package answer synthesizes an extractive answer from retrieved snippets.
// No generation: the answer is templated over the top-ranked snippet texts.
package answer

import (
	"fmt"

	"github.com/raglab/answerd/internal/domain"
)

const (
	defaultMaxSnippets = 2
	maxSnippetLength   = 500
)

// Service builds answers from scored documents.
type Service struct {
	maxSnippets int
}

// New creates an answer service using the top two snippets.
func New() *Service {
	return &Service{maxSnippets: defaultMaxSnippets}
}

// Synthesize renders an answer from the ranked snippets. When lowConfidence
// is set and there are results, a warning note is prepended.
func (s *Service) Synthesize(snippets []domain.ScoredDocument, lowConfidence bool) string {
	if len(snippets) == 0 {
		return "No relevant information found for your query."
	}

	top := snippets
	if len(top) > s.maxSnippets {
		top = top[:s.maxSnippets]
	}

	var text string
	if len(top) == 1 {
		text = fmt.Sprintf("Based on available information: %s", truncate(top[0].Text, maxSnippetLength))
	} else {
		text = fmt.Sprintf("Based on available information: %s Additionally, %s",
			truncate(top[0].Text, maxSnippetLength), truncate(top[1].Text, maxSnippetLength))
	}

	if lowConfidence {
		text = "Note: Low confidence in results. " + text
	}
	return text
}

// truncate cuts text to maxLen, appending an ellipsis when it was cut.
func truncate(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen-3] + "..."
}
