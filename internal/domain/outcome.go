package domain

// Stage identifies which guardrail check matched.
type Stage string

const (
	// StageLiteral is the case-insensitive substring check.
	StageLiteral Stage = "literal"
	// StageSemantic is the cosine-similarity check in the shared vector space.
	StageSemantic Stage = "semantic"
)

// Outcome is the result of a guardrail check. Blocked is a first-class
// outcome, not an error.
type Outcome struct {
	blocked bool
	phrase  string
	score   float64
	stage   Stage
}

// Allow creates a passing outcome.
func Allow() Outcome {
	return Outcome{}
}

// Block creates a blocking outcome carrying the matched phrase, the
// similarity score (0 for literal matches), and the stage that fired.
func Block(phrase string, score float64, stage Stage) Outcome {
	return Outcome{blocked: true, phrase: phrase, score: score, stage: stage}
}

// Blocked reports whether the query must be refused.
func (o Outcome) Blocked() bool { return o.blocked }

// MatchedPhrase returns the denylist phrase that matched, verbatim.
func (o Outcome) MatchedPhrase() string { return o.phrase }

// Score returns the semantic similarity of the match. Zero for literal matches.
func (o Outcome) Score() float64 { return o.score }

// Stage returns the stage that produced the block.
func (o Outcome) Stage() Stage { return o.stage }
