package peak

import (
	"errors"
	"math"
	"testing"
)

func zeros(n int) []float64 {
	return make([]float64, n)
}

func indices(peaks []Peak) []int {
	out := make([]int, len(peaks))
	for i, p := range peaks {
		out[i] = p.Index
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func spikeConfig() Config {
	return Config{Lag: 5, Threshold: 3, MinDistance: 1, MinWidth: 1}
}

func TestDetect_Empty(t *testing.T) {
	res, err := Detect(nil, spikeConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Peaks) != 0 || len(res.Signals) != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}
}

func TestDetect_WarmupIsSilent(t *testing.T) {
	x := zeros(10)
	x[2] = 5
	res, err := Detect(x, spikeConfig())
	if err != nil {
		t.Fatal(err)
	}
	for i := range 5 {
		if res.Signals[i] != SignalNone {
			t.Errorf("signal[%d] = %v during warm-up", i, res.Signals[i])
		}
		if !math.IsNaN(res.Boundary[i]) {
			t.Errorf("boundary[%d] = %v during warm-up, want NaN", i, res.Boundary[i])
		}
	}
	if len(res.Peaks) != 0 {
		t.Fatalf("warm-up spike produced peaks: %v", indices(res.Peaks))
	}
}

func TestDetect_DistanceSuppression(t *testing.T) {
	tests := []struct {
		name     string
		mag10    float64
		mag15    float64
		wantPeak int
	}{
		{"later larger", 1, 2, 15},
		{"earlier larger", 2, 1, 10},
		{"equal keeps earlier", 1, 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := zeros(40)
			x[10] = tt.mag10
			x[15] = tt.mag15

			cfg := spikeConfig()
			cfg.MinDistance = 8

			res, err := Detect(x, cfg)
			if err != nil {
				t.Fatal(err)
			}
			if len(res.Candidates) != 2 {
				t.Fatalf("candidates = %v, want 2", indices(res.Candidates))
			}
			if got := indices(res.Peaks); !equalInts(got, []int{tt.wantPeak}) {
				t.Fatalf("peaks = %v, want [%d]", got, tt.wantPeak)
			}
		})
	}
}

func TestDetect_WidthSuppression(t *testing.T) {
	x := zeros(40)
	x[10] = 1
	x[20], x[21], x[22] = 1, 1, 1

	cfg := spikeConfig()
	cfg.MinWidth = 3

	res, err := Detect(x, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got := indices(res.Peaks); !equalInts(got, []int{20}) {
		t.Fatalf("peaks = %v, want [20]", got)
	}
	p := res.Peaks[0]
	if p.Start != 20 || p.Width != 3 {
		t.Fatalf("peak run = start %d width %d, want 20/3", p.Start, p.Width)
	}
}

func TestDetect_RunMaximum(t *testing.T) {
	x := zeros(30)
	x[10], x[11], x[12], x[13] = 1, 3, 2, 3

	res, err := Detect(x, spikeConfig())
	if err != nil {
		t.Fatal(err)
	}
	if got := indices(res.Peaks); !equalInts(got, []int{11}) {
		t.Fatalf("peaks = %v, want [11]", got)
	}
	if res.Peaks[0].Magnitude != 3 {
		t.Fatalf("magnitude = %v, want 3", res.Peaks[0].Magnitude)
	}
}

func TestDetect_InfluenceShortensPlateau(t *testing.T) {
	x := zeros(20)
	for i := 8; i < 14; i++ {
		x[i] = 1
	}

	cfg := Config{Lag: 4, Threshold: 3, MinDistance: 1}

	cfg.Influence = 0
	res, err := Detect(x, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Peaks) != 1 || res.Peaks[0].Width != 6 {
		t.Fatalf("influence 0: peaks %+v, want one of width 6", res.Peaks)
	}

	cfg.Influence = 1
	res, err = Detect(x, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Candidates) == 0 || res.Candidates[0].Width != 1 {
		t.Fatalf("influence 1: candidates %+v, want first of width 1", res.Candidates)
	}
}

func TestDetect_CeilingCapsDeviation(t *testing.T) {
	x := []float64{0.1, -0.1, 0.1, -0.1, 0.6}

	cfg := Config{Lag: 4, Threshold: 100, MinDistance: 1, MinWidth: 1}
	res, err := Detect(x, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if res.Signals[4] != SignalNone {
		t.Fatalf("uncapped: signal = %v, want none", res.Signals[4])
	}

	cfg.Ceiling = 0.5
	res, err = Detect(x, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if res.Signals[4] != SignalAbove {
		t.Fatalf("capped: signal = %v, want above", res.Signals[4])
	}
	if math.Abs(res.Boundary[4]-0.5) > 1e-12 {
		t.Fatalf("capped boundary = %v, want 0.5", res.Boundary[4])
	}
}

func TestDetect_BelowSignal(t *testing.T) {
	x := []float64{1, 1, 1, 1, 1, -2}
	res, err := Detect(x, spikeConfig())
	if err != nil {
		t.Fatal(err)
	}
	if res.Signals[5] != SignalBelow {
		t.Fatalf("signal = %v, want below", res.Signals[5])
	}
	if len(res.Candidates) != 0 {
		t.Fatalf("below samples produced candidates: %+v", res.Candidates)
	}
}

func TestDetect_GlobalStatistics(t *testing.T) {
	x := zeros(100)
	x[50] = 10

	cfg := Config{Lag: 0, Threshold: 3, MinDistance: 1, MinWidth: 1}
	res, err := Detect(x, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got := indices(res.Peaks); !equalInts(got, []int{50}) {
		t.Fatalf("peaks = %v, want [50]", got)
	}
	for i, b := range res.Boundary {
		if b != res.Boundary[0] {
			t.Fatalf("boundary[%d] = %v differs from boundary[0] = %v", i, b, res.Boundary[0])
		}
	}
}

func TestDetect_IndicesStrictlyIncreasing(t *testing.T) {
	x := zeros(200)
	for i := 10; i < 200; i += 7 {
		x[i] = float64(i%5 + 1)
	}
	cfg := spikeConfig()
	cfg.MinDistance = 12

	res, err := Detect(x, cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(res.Peaks); i++ {
		if res.Peaks[i].Index <= res.Peaks[i-1].Index {
			t.Fatalf("peaks not strictly increasing at %d: %v", i, indices(res.Peaks))
		}
	}
}

func TestEnforceDistance(t *testing.T) {
	peaks := []Peak{
		{Index: 0, Magnitude: 1},
		{Index: 3, Magnitude: 2},
		{Index: 5, Magnitude: 1},
		{Index: 20, Magnitude: 1},
	}
	got := indices(EnforceDistance(peaks, 8))
	if !equalInts(got, []int{3, 20}) {
		t.Fatalf("got %v, want [3 20]", got)
	}

	got = indices(EnforceDistance(peaks, 0))
	if !equalInts(got, []int{0, 3, 5, 20}) {
		t.Fatalf("distance 0: got %v, want all", got)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"lag one", Config{Lag: 1, Threshold: 1}},
		{"negative lag", Config{Lag: -1, Threshold: 1}},
		{"zero threshold", Config{Lag: 5}},
		{"nan threshold", Config{Lag: 5, Threshold: math.NaN()}},
		{"influence above one", Config{Lag: 5, Threshold: 1, Influence: 1.5}},
		{"nan ceiling", Config{Lag: 5, Threshold: 1, Ceiling: math.NaN()}},
		{"negative distance", Config{Lag: 5, Threshold: 1, MinDistance: -1}},
		{"negative width", Config{Lag: 5, Threshold: 1, MinWidth: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestDetector_PhaseAndFinish(t *testing.T) {
	d, err := NewDetector(spikeConfig())
	if err != nil {
		t.Fatal(err)
	}
	if d.Phase() != PhaseScanning {
		t.Fatalf("phase = %v, want scanning", d.Phase())
	}
	d.Update(0)
	d.Finish()
	if d.Phase() != PhaseDone {
		t.Fatalf("phase = %v, want done", d.Phase())
	}

	defer func() {
		if recover() == nil {
			t.Fatal("Update after Finish did not panic")
		}
	}()
	d.Update(0)
}

func TestNewDetector_RejectsGlobalLag(t *testing.T) {
	cfg := spikeConfig()
	cfg.Lag = 0
	if _, err := NewDetector(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestSignal_String(t *testing.T) {
	for s, want := range map[Signal]string{SignalBelow: "below", SignalNone: "none", SignalAbove: "above", 7: "Signal(7)"} {
		if got := s.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", s, got, want)
		}
	}
}
