package guardrail

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/raglab/answerd/internal/domain"
	"github.com/raglab/answerd/internal/index"
)

// fitSpace builds a vector space whose vocabulary covers the denylist terms,
// the way the corpus-fitted space covers them in production.
func fitSpace(t *testing.T, texts []string) *index.VectorSpace {
	t.Helper()
	space, err := index.Fit(texts, 0)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	return space
}

func TestCheck_LiteralExactPhrase(t *testing.T) {
	space := fitSpace(t, []string{"instructions for illegal activity explained"})
	m := New(space, []string{"instructions for illegal activity"}, 0.30)

	query := "instructions for illegal activity"
	out := m.Check(query, space.Transform(query))

	if !out.Blocked() {
		t.Fatal("exact denylist phrase must block")
	}
	if out.Stage() != domain.StageLiteral {
		t.Errorf("expected literal stage, got %s", out.Stage())
	}
	if out.MatchedPhrase() != "instructions for illegal activity" {
		t.Errorf("matched phrase must be recorded verbatim, got %q", out.MatchedPhrase())
	}
}

func TestCheck_LiteralCaseInsensitive(t *testing.T) {
	space := fitSpace(t, []string{"weapon instructions"})
	m := New(space, []string{"how to build a weapon"}, 0.30)

	out := m.Check("HOW TO BUILD A WEAPON please", index.Vector{})
	if !out.Blocked() || out.Stage() != domain.StageLiteral {
		t.Errorf("case-insensitive containment must block at literal stage, got %+v", out)
	}
}

func TestCheck_LiteralAuthoritativeOverThreshold(t *testing.T) {
	// Even with a semantic threshold no similarity could reach, a literal
	// containment match must block.
	space := fitSpace(t, []string{"hack into systems quickly"})
	m := New(space, []string{"hack into systems"}, 99.0)

	query := "please hack into systems for me"
	out := m.Check(query, space.Transform(query))
	if !out.Blocked() || out.Stage() != domain.StageLiteral {
		t.Errorf("literal stage must be authoritative, got %+v", out)
	}
}

func TestCheck_LiteralFirstMatchWins(t *testing.T) {
	space := fitSpace(t, []string{"alpha beta gamma"})
	m := New(space, []string{"alpha beta", "beta gamma"}, 0.30)

	out := m.Check("alpha beta gamma", index.Vector{})
	if out.MatchedPhrase() != "alpha beta" {
		t.Errorf("first denylist entry must win, got %q", out.MatchedPhrase())
	}
}

func TestCheck_SemanticParaphraseBlocks(t *testing.T) {
	space := fitSpace(t, []string{
		"illegal activity and criminal instructions",
		"vectors and cosine similarity",
	})
	m := New(space, []string{"instructions for illegal activity"}, 0.30)

	// Paraphrase: shares vocabulary but does not contain the phrase.
	query := "illegal criminal activity"
	out := m.Check(query, space.Transform(query))

	if !out.Blocked() {
		t.Fatal("paraphrase above threshold must block")
	}
	if out.Stage() != domain.StageSemantic {
		t.Errorf("expected semantic stage, got %s", out.Stage())
	}
	if out.Score() < 0.30 || out.Score() > 1 {
		t.Errorf("semantic score must be in [threshold, 1], got %v", out.Score())
	}
	if out.MatchedPhrase() != "instructions for illegal activity" {
		t.Errorf("unexpected matched phrase %q", out.MatchedPhrase())
	}
}

func TestCheck_BelowThresholdAllowed(t *testing.T) {
	space := fitSpace(t, []string{
		"illegal activity instructions",
		"cosine similarity of vectors",
	})
	m := New(space, []string{"instructions for illegal activity"}, 0.90)

	query := "cosine similarity"
	out := m.Check(query, space.Transform(query))
	if out.Blocked() {
		t.Errorf("dissimilar query must be allowed, got %+v", out)
	}
}

func TestCheck_EmptyDenylistNeverBlocks(t *testing.T) {
	space := fitSpace(t, []string{"some corpus text"})
	m := New(space, nil, 0.30)

	if m.Size() != 0 {
		t.Fatalf("expected empty matcher, got %d entries", m.Size())
	}
	for _, q := range []string{"anything", "instructions for illegal activity", ""} {
		if out := m.Check(q, space.Transform(q)); out.Blocked() {
			t.Errorf("empty denylist must never block, query %q got %+v", q, out)
		}
	}
}

func TestCheck_ZeroQueryVectorAllowed(t *testing.T) {
	space := fitSpace(t, []string{"illegal activity instructions"})
	m := New(space, []string{"illegal activity"}, 0.0)

	// Entirely out-of-vocabulary query: zero vector, no literal containment.
	out := m.Check("zzzz qqqq", index.Vector{})
	if out.Blocked() {
		t.Errorf("all-zero vector must fall through to Allowed, got %+v", out)
	}
}

func TestDefaultDenylist(t *testing.T) {
	phrases := DefaultDenylist()
	if len(phrases) != 10 {
		t.Fatalf("expected 10 seed phrases, got %d", len(phrases))
	}
	if phrases[0] != "instructions for illegal activity" {
		t.Errorf("unexpected first phrase %q", phrases[0])
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "denylist.yaml")
	content := "- forbidden phrase\n- another phrase\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	phrases, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(phrases) != 2 || phrases[0] != "forbidden phrase" {
		t.Errorf("unexpected phrases %v", phrases)
	}
}

func TestLoadFile_BlankEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "denylist.yaml")
	if err := os.WriteFile(path, []byte("- ok\n- \"  \"\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for blank entry")
	}
}
