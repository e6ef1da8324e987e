package frequency

import "gonum.org/v1/gonum/floats"

// Stats summarizes a [Spectrum].
type Stats struct {
	// DominantHz is the frequency of the largest non-DC bin.
	DominantHz        float64
	DominantMagnitude float64
	// Centroid is the magnitude-weighted mean frequency (Hz).
	Centroid float64
	// Rolloff is the frequency below which 85% of the energy lies (Hz).
	Rolloff float64
	// Energy is the sum of squared magnitudes.
	Energy float64
}

// rolloffPercent is the energy fraction used for Stats.Rolloff.
const rolloffPercent = 0.85

// Calculate computes the summary statistics of s.
func Calculate(s Spectrum) Stats {
	var st Stats
	if len(s.Magnitude) == 0 {
		return st
	}

	if len(s.Magnitude) > 1 {
		i := floats.MaxIdx(s.Magnitude[1:]) + 1
		st.DominantHz = s.Frequency(i)
		st.DominantMagnitude = s.Magnitude[i]
	}

	var weighted float64
	for i, m := range s.Magnitude {
		weighted += s.Frequency(i) * m
	}
	if sum := floats.Sum(s.Magnitude); sum > 0 {
		st.Centroid = weighted / sum
	}

	st.Energy = floats.Dot(s.Magnitude, s.Magnitude)
	if st.Energy > 0 {
		var acc float64
		for i, m := range s.Magnitude {
			acc += m * m
			if acc >= rolloffPercent*st.Energy {
				st.Rolloff = s.Frequency(i)
				break
			}
		}
	}

	return st
}

// EnergyFraction returns the share of spectral energy in [lowHz, highHz].
// It returns 0 for a silent spectrum.
func (s Spectrum) EnergyFraction(lowHz, highHz float64) float64 {
	var in, total float64
	for i, m := range s.Magnitude {
		e := m * m
		total += e
		if f := s.Frequency(i); f >= lowHz && f <= highHz {
			in += e
		}
	}
	if total == 0 {
		return 0
	}
	return in / total
}
