package utils

import (
	"math"
	"testing"
)

func AssertEqual(t *testing.T, a interface{}, b interface{}) {
	t.Helper()
	if a != b {
		t.Fatalf("Expected equal: %v != %v\n", a, b)
	}
}

// AssertClose fails unless |a-b| <= tol.
func AssertClose(t *testing.T, a, b, tol float64) {
	t.Helper()
	if math.Abs(a-b) > tol {
		t.Fatalf("Expected close: %v != %v (tolerance %v)\n", a, b, tol)
	}
}

// AssertRelClose compares a and b with a relative tolerance, falling back to
// an absolute one when both are near zero.
func AssertRelClose(t *testing.T, a, b, rel float64) {
	t.Helper()
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale < 1 {
		scale = 1
	}
	if math.Abs(a-b) > rel*scale {
		t.Fatalf("Expected close: %v != %v (relative tolerance %v)\n", a, b, rel)
	}
}

func AssertNaN(t *testing.T, a float64) {
	t.Helper()
	if !math.IsNaN(a) {
		t.Fatalf("Expected NaN, got %v", a)
	}
}
