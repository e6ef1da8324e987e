package core

import (
	"math"
	"testing"
)

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
	if !NearlyEqual(1e9, 1e9+0.5, 1e-9) {
		t.Fatal("expected relative comparison to pass")
	}
	if !NearlyEqual(0, 1e-13, 0) {
		t.Fatal("expected default epsilon to apply")
	}
}

func TestFirstNonFinite(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
		want int
	}{
		{"empty", nil, -1},
		{"finite", []float64{0, 1, -1e300}, -1},
		{"nan", []float64{0, math.NaN(), 1}, 1},
		{"+inf", []float64{math.Inf(1)}, 0},
		{"-inf last", []float64{1, 2, math.Inf(-1)}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstNonFinite(tt.x); got != tt.want {
				t.Fatalf("FirstNonFinite() = %d, want %d", got, tt.want)
			}
		})
	}
}
