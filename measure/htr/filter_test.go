package htr

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-htr/dsp/filter/design"
	"github.com/cwbudde/algo-htr/internal/testutil"
)

func rms(x []float64) float64 {
	var s float64
	for _, v := range x {
		s += v * v
	}
	return math.Sqrt(s / float64(len(x)))
}

func TestFilter_AttenuationGrowsAsCutoffDrops(t *testing.T) {
	const sr = 100.0
	in := testutil.DeterministicSine(5, sr, 1, 2000)

	prev := math.Inf(1)
	for _, cutoff := range []float64{20, 10, 4, 2, 1} {
		f, err := NewFilter(cutoff, sr)
		if err != nil {
			t.Fatalf("cutoff %v: %v", cutoff, err)
		}
		out, err := f.Run(context.Background(), in)
		if err != nil {
			t.Fatalf("cutoff %v: %v", cutoff, err)
		}
		amp := testutil.PeakAbs(out[1500:])
		if amp >= prev {
			t.Fatalf("cutoff %v: amplitude %v did not drop below %v", cutoff, amp, prev)
		}
		prev = amp
	}
}

func TestFilter_PassbandPreservesReferenceSine(t *testing.T) {
	in := testutil.DeterministicSine(1, 15, 1, 1000)
	f, err := NewFilter(5, 15)
	if err != nil {
		t.Fatal(err)
	}
	out, err := f.Run(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(in) {
		t.Fatalf("len = %d, want %d", len(out), len(in))
	}
	ratio := rms(out[500:]) / rms(in[500:])
	if math.Abs(ratio-1) > 0.01 {
		t.Fatalf("passband rms ratio = %v, want ~1", ratio)
	}
}

func TestFilter_RunStartsFromZeroState(t *testing.T) {
	f, err := NewFilter(3, 15)
	if err != nil {
		t.Fatal(err)
	}
	in := testutil.DeterministicNoise(3, 1, 64)

	a, err := f.Run(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	b, err := f.Run(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, a, b, 0)
}

func TestFilter_RejectsNonFiniteInput(t *testing.T) {
	f, err := NewFilter(3, 15)
	if err != nil {
		t.Fatal(err)
	}

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		in := []float64{0, 1, bad, 2}
		out, err := f.Run(context.Background(), in)
		if out != nil {
			t.Fatalf("%v: expected nil output", bad)
		}
		var ne *NumericError
		if !errors.As(err, &ne) {
			t.Fatalf("%v: err = %v, want *NumericError", bad, err)
		}
		if ne.Stage != StageFilter || ne.Index != 2 {
			t.Fatalf("%v: got stage %q index %d, want filter/2", bad, ne.Stage, ne.Index)
		}
		if !errors.Is(err, ErrNumeric) {
			t.Fatalf("%v: err does not match ErrNumeric", bad)
		}
	}
}

func TestNewFilter_NyquistViolation(t *testing.T) {
	_, err := NewFilter(7.5, 15)
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("err = %v, want ErrConfig", err)
	}
	if !errors.Is(err, design.ErrFrequencyOutOfRange) {
		t.Fatalf("err = %v, want to wrap design.ErrFrequencyOutOfRange", err)
	}
}

func TestFilter_HonorsCancellation(t *testing.T) {
	f, err := NewFilter(3, 15)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := f.Run(ctx, make([]float64, 10)); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestFilter_RejectsNonFiniteInLaterBlock(t *testing.T) {
	f, err := NewFilter(3, 15)
	if err != nil {
		t.Fatal(err)
	}
	in := testutil.DeterministicNoise(5, 1, 3*cancelCheckInterval)
	bad := cancelCheckInterval + 17
	in[bad] = math.NaN()

	_, err = f.Run(context.Background(), in)
	var ne *NumericError
	if !errors.As(err, &ne) {
		t.Fatalf("err = %v, want *NumericError", err)
	}
	if ne.Index != bad {
		t.Fatalf("index = %d, want %d", ne.Index, bad)
	}
}

func TestFilter_RunToReusesBuffer(t *testing.T) {
	f, err := NewFilter(3, 15)
	if err != nil {
		t.Fatal(err)
	}
	in := testutil.DeterministicNoise(11, 1, cancelCheckInterval+100)

	want, err := f.Run(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}

	buf := make([]float64, 0, len(in))
	got, err := f.RunTo(context.Background(), buf, in)
	if err != nil {
		t.Fatal(err)
	}
	if &got[0] != &buf[:1][0] {
		t.Fatal("RunTo did not reuse dst")
	}
	testutil.RequireSliceNearlyEqual(t, got, want, 0)

	inPlace := append([]float64(nil), in...)
	if _, err := f.RunTo(context.Background(), inPlace, inPlace); err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, inPlace, want, 0)
}

func TestFilter_RunEmpty(t *testing.T) {
	f, err := NewFilter(3, 15)
	if err != nil {
		t.Fatal(err)
	}
	out, err := f.Run(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("out = %v, want empty non-nil slice", out)
	}
}

func TestFilter_Response(t *testing.T) {
	f, err := NewFilter(5, 15)
	if err != nil {
		t.Fatal(err)
	}
	r := f.Response()

	if math.Abs(r.DCGain-1) > 1e-12 {
		t.Errorf("DCGain = %v, want 1", r.DCGain)
	}
	if math.Abs(r.CutoffGain-1/math.Sqrt2) > 1e-9 {
		t.Errorf("CutoffGain = %v, want %v", r.CutoffGain, 1/math.Sqrt2)
	}
	if math.Abs(r.CutoffGainDB+3.0103) > 1e-3 {
		t.Errorf("CutoffGainDB = %v, want about -3.01", r.CutoffGainDB)
	}
	if math.Abs(r.CutoffPhase+math.Pi/2) > 1e-6 {
		t.Errorf("CutoffPhase = %v, want -pi/2", r.CutoffPhase)
	}
	if r.SettlingSamples <= 0 || r.SettlingSamples >= settleSpan {
		t.Errorf("SettlingSamples = %d, want within (0, %d)", r.SettlingSamples, settleSpan)
	}

	slow, err := NewFilter(0.5, 15)
	if err != nil {
		t.Fatal(err)
	}
	if s := slow.Response().SettlingSamples; s <= r.SettlingSamples {
		t.Errorf("lower cutoff settles in %d samples, want more than %d", s, r.SettlingSamples)
	}
}
