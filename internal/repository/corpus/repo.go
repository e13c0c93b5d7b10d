// Package corpus holds the fixed document set the vector space is fitted
// over. Documents are loaded once at startup; the repository is read-only
// afterwards.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/raglab/answerd/internal/domain"
)

// Repository provides read access to the loaded corpus.
type Repository struct {
	docs []domain.Document
}

// New creates a repository over the given documents. Order is preserved;
// insertion order is the tie-break for ranking.
func New(docs []domain.Document) *Repository {
	return &Repository{docs: docs}
}

// All returns the documents in insertion order.
func (r *Repository) All() []domain.Document {
	out := make([]domain.Document, len(r.docs))
	copy(out, r.docs)
	return out
}

// Texts returns the document texts in insertion order.
func (r *Repository) Texts() []string {
	texts := make([]string, len(r.docs))
	for i, d := range r.docs {
		texts[i] = d.Text
	}
	return texts
}

// Get returns a document by ID.
func (r *Repository) Get(id string) (domain.Document, error) {
	for _, d := range r.docs {
		if d.ID == id {
			return d, nil
		}
	}
	return domain.Document{}, fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, id)
}

// Count returns the number of documents.
func (r *Repository) Count() int {
	return len(r.docs)
}

// fileDocument is the YAML shape of a corpus file entry.
type fileDocument struct {
	ID   string `yaml:"id"`
	Text string `yaml:"text"`
}

// LoadFile reads a corpus from a YAML file: a list of {id, text} entries.
func LoadFile(path string) ([]domain.Document, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read corpus file %s: %w", path, err)
	}

	var entries []fileDocument
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse corpus file %s: %w", path, err)
	}

	docs := make([]domain.Document, 0, len(entries))
	for i, e := range entries {
		if e.ID == "" || e.Text == "" {
			return nil, fmt.Errorf("corpus file %s: entry %d is missing id or text", path, i)
		}
		docs = append(docs, domain.Document{ID: e.ID, Text: e.Text})
	}
	return docs, nil
}
