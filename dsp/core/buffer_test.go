package core

import "testing"

func TestEnsureLen(t *testing.T) {
	buf := make([]float64, 2, 8)
	got := EnsureLen(buf, 6)
	if len(got) != 6 || cap(got) != 8 {
		t.Fatalf("len=%d cap=%d, want 6/8", len(got), cap(got))
	}

	got = EnsureLen(buf, 16)
	if len(got) != 16 {
		t.Fatalf("len=%d, want 16", len(got))
	}

	if got := EnsureLen(buf, 0); len(got) != 0 {
		t.Fatalf("len=%d, want 0", len(got))
	}
}

func TestClone(t *testing.T) {
	src := []float64{1, 2, 3}
	dst := Clone(src)
	dst[0] = 9
	if src[0] != 1 {
		t.Fatal("Clone shares backing array with src")
	}
	if Clone(nil) != nil {
		t.Fatal("Clone(nil) should be nil")
	}
	if got := Clone([]float64{}); got == nil || len(got) != 0 {
		t.Fatalf("Clone(empty) = %v, want empty non-nil", got)
	}
}
