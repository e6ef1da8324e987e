package testutil

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

// RequireSliceNearlyEqual fails t unless got and want have the same length
// and every pair is within eps. NaN matches NaN, so warm-up gaps in
// detector traces compare equal.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		gn, wn := math.IsNaN(got[i]), math.IsNaN(want[i])
		if gn || wn {
			if gn != wn {
				t.Fatalf("index %d: got %v, want %v", i, got[i], want[i])
			}
			continue
		}
		if diff := math.Abs(got[i] - want[i]); diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t at the first NaN or Inf in data.
func RequireFinite(t *testing.T, name string, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("%s[%d]: non-finite value %v", name, i, v)
		}
	}
}

// MaxAbsDiff returns the largest element-wise distance between a and b.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, nil
	}
	return floats.Distance(a, b, math.Inf(1)), nil
}
