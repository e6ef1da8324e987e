package biquad

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// State holds the two delay registers of a Direct Form II Transposed section.
type State struct {
	D0, D1 float64
}

// Step advances st by one input sample and returns the new state together
// with the output sample. It does not modify its arguments.
func Step(c Coefficients, st State, x float64) (State, float64) {
	y := c.B0*x + st.D0

	return State{
		D0: c.B1*x - c.A1*y + st.D1,
		D1: c.B2*x - c.A2*y,
	}, y
}

// Section is a single biquad filter with coefficients and internal state.
type Section struct {
	Coefficients

	st State
}

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessBlockTo filters src into dst. Both slices must have the same length.
// Zero-alloc.
func (s *Section) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}

	_ = dst[len(src)-1] // bounds check hint

	st := s.st
	for i, x := range src {
		st, dst[i] = Step(s.Coefficients, st, x)
	}

	s.st = st
}
