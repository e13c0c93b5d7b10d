package index

import (
	"math"
	"testing"
)

func TestDot(t *testing.T) {
	a := Vector{"x": 1, "y": 2}
	b := Vector{"y": 3, "z": 4}

	if got := a.Dot(b); got != 6 {
		t.Errorf("expected 6, got %v", got)
	}
	if got := b.Dot(a); got != 6 {
		t.Errorf("dot must be symmetric, got %v", got)
	}
}

func TestNorm(t *testing.T) {
	v := Vector{"x": 3, "y": 4}
	if got := v.Norm(); got != 5 {
		t.Errorf("expected 5, got %v", got)
	}
	if got := (Vector{}).Norm(); got != 0 {
		t.Errorf("empty vector norm must be 0, got %v", got)
	}
}

func TestNormalized(t *testing.T) {
	v := Vector{"x": 3, "y": 4}
	n := v.Normalized()
	if math.Abs(n.Norm()-1) > 1e-12 {
		t.Errorf("normalized vector must have unit norm, got %v", n.Norm())
	}
	// Original untouched
	if v["x"] != 3 {
		t.Error("Normalized must not mutate the receiver")
	}
}

func TestNormalized_ZeroVector(t *testing.T) {
	n := (Vector{}).Normalized()
	if !n.IsZero() {
		t.Error("zero vector must normalize to zero, not NaN")
	}
	for _, w := range n {
		if math.IsNaN(w) {
			t.Error("normalization produced NaN")
		}
	}
}

func TestCosine(t *testing.T) {
	a := Vector{"x": 1}
	b := Vector{"x": 2}
	if got := Cosine(a, b); math.Abs(got-1) > 1e-12 {
		t.Errorf("parallel vectors must score 1, got %v", got)
	}

	c := Vector{"y": 1}
	if got := Cosine(a, c); got != 0 {
		t.Errorf("orthogonal vectors must score 0, got %v", got)
	}
}

func TestCosine_ZeroNormGuard(t *testing.T) {
	a := Vector{"x": 1}
	zero := Vector{}

	if got := Cosine(a, zero); got != 0 {
		t.Errorf("zero-norm cosine must be 0, got %v", got)
	}
	if got := Cosine(zero, a); got != 0 {
		t.Errorf("zero-norm cosine must be 0, got %v", got)
	}
	if got := Cosine(zero, zero); got != 0 {
		t.Errorf("zero-norm cosine must be 0, got %v", got)
	}
}
