package time

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds time-domain statistics of a recording.
type Summary struct {
	Length      int
	Mean        float64
	StdDev      float64 // N-1 estimator
	RMS         float64
	Min         float64
	MinPos      int
	Max         float64
	MaxPos      int
	Peak        float64 // max(|Max|, |Min|)
	CrestFactor float64 // Peak / RMS
	Skewness    float64
	Kurtosis    float64 // excess kurtosis
	// ZeroCrossings counts sign changes around Mean.
	ZeroCrossings int
}

// Summarize computes a Summary of x. An empty x yields the zero Summary.
// Dispersion-dependent moments are zero when fewer than two samples are
// available or x is constant.
func Summarize(x []float64) Summary {
	n := len(x)
	if n == 0 {
		return Summary{}
	}

	s := Summary{
		Length: n,
		MinPos: floats.MinIdx(x),
		MaxPos: floats.MaxIdx(x),
	}
	s.Min = x[s.MinPos]
	s.Max = x[s.MaxPos]
	s.Peak = math.Max(math.Abs(s.Min), math.Abs(s.Max))
	s.RMS = math.Sqrt(floats.Dot(x, x) / float64(n))
	if s.RMS > 0 {
		s.CrestFactor = s.Peak / s.RMS
	}

	if n == 1 {
		s.Mean = x[0]
		return s
	}

	s.Mean, s.StdDev = stat.MeanStdDev(x, nil)
	if s.StdDev > 0 {
		s.Skewness = stat.Skew(x, nil)
		s.Kurtosis = stat.ExKurtosis(x, nil)
	}
	s.ZeroCrossings = ZeroCrossings(x, s.Mean)

	return s
}

// ZeroCrossings counts sign changes of x - level. Samples equal to level
// do not end a run.
func ZeroCrossings(x []float64, level float64) int {
	var (
		count int
		sign  int
	)
	for _, v := range x {
		d := v - level
		cur := 0
		switch {
		case d > 0:
			cur = 1
		case d < 0:
			cur = -1
		}
		if cur == 0 {
			continue
		}
		if sign != 0 && cur != sign {
			count++
		}
		sign = cur
	}
	return count
}

// RMS returns the root mean square of x, or 0 for empty input.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return math.Sqrt(floats.Dot(x, x) / float64(len(x)))
}
