package domain

import "errors"

var (
	// ErrEmptyCorpus signals that no vocabulary can be built.
	ErrEmptyCorpus = errors.New("empty corpus")
	// ErrDocumentNotFound signals a missing document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrUnknownPreset signals an unrecognized retrieval config name.
	ErrUnknownPreset = errors.New("unknown retrieval preset")
	// ErrInvalidTopK signals a top_k outside the allowed range.
	ErrInvalidTopK = errors.New("invalid top_k")
	// ErrEmptyQuery signals a blank query string.
	ErrEmptyQuery = errors.New("empty query")
)
