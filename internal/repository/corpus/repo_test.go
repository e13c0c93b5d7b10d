package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/raglab/answerd/internal/domain"
)

func TestDefault(t *testing.T) {
	docs := Default()
	if len(docs) != 12 {
		t.Fatalf("expected 12 seed documents, got %d", len(docs))
	}
	if docs[0].ID != "s1" {
		t.Errorf("expected first document s1, got %s", docs[0].ID)
	}
	for i, d := range docs {
		if d.ID == "" || d.Text == "" {
			t.Errorf("seed document %d has empty id or text", i)
		}
	}
}

func TestRepository(t *testing.T) {
	repo := New([]domain.Document{
		{ID: "a", Text: "first"},
		{ID: "b", Text: "second"},
	})

	if repo.Count() != 2 {
		t.Fatalf("expected 2 documents, got %d", repo.Count())
	}

	texts := repo.Texts()
	if texts[0] != "first" || texts[1] != "second" {
		t.Errorf("Texts must preserve insertion order, got %v", texts)
	}

	doc, err := repo.Get("b")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if doc.Text != "second" {
		t.Errorf("unexpected document: %+v", doc)
	}

	_, err = repo.Get("missing")
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestRepository_AllReturnsCopy(t *testing.T) {
	repo := New([]domain.Document{{ID: "a", Text: "first"}})

	all := repo.All()
	all[0].Text = "mutated"

	fresh, _ := repo.Get("a")
	if fresh.Text != "first" {
		t.Error("All must return a copy, not the backing slice")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.yaml")
	content := `
- id: d1
  text: first document
- id: d2
  text: second document
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	docs, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[1].ID != "d2" || docs[1].Text != "second document" {
		t.Errorf("unexpected document: %+v", docs[1])
	}
}

func TestLoadFile_MissingField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.yaml")
	if err := os.WriteFile(path, []byte("- id: d1\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for entry without text")
	}
}

func TestLoadFile_NotFound(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
