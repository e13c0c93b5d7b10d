package domain

// Document is a corpus entry. Documents are loaded once at startup and never
// mutated afterwards; their vectors live in the retrieval service.
type Document struct {
	ID   string
	Text string
}

// ScoredDocument is a document paired with a similarity score for one query.
type ScoredDocument struct {
	ID    string
	Text  string
	Score float64
}
