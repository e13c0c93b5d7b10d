package index

import "math"

// Vector is a sparse term-weight vector over the fitted vocabulary.
// Absent terms have weight zero.
type Vector map[string]float64

// Dot returns the dot product of two sparse vectors.
func (v Vector) Dot(other Vector) float64 {
	// Iterate the smaller map.
	if len(other) < len(v) {
		v, other = other, v
	}
	var sum float64
	for term, w := range v {
		sum += w * other[term]
	}
	return sum
}

// Norm returns the L2 norm.
func (v Vector) Norm() float64 {
	var sq float64
	for _, w := range v {
		sq += w * w
	}
	return math.Sqrt(sq)
}

// Normalized returns an L2-normalized copy. A zero vector normalizes to an
// empty vector, not NaN.
func (v Vector) Normalized() Vector {
	norm := v.Norm()
	out := make(Vector, len(v))
	if norm == 0 {
		return out
	}
	for term, w := range v {
		out[term] = w / norm
	}
	return out
}

// IsZero reports whether the vector has no nonzero components.
func (v Vector) IsZero() bool {
	for _, w := range v {
		if w != 0 {
			return false
		}
	}
	return true
}

// Cosine returns cosine similarity. If either norm is zero the score is 0;
// degenerate vectors never produce a division error.
func Cosine(a, b Vector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return a.Dot(b) / (na * nb)
}
