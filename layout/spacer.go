package layout

import "math"

// MinSymbolSeparation is the floor under the spacing function's output —
// no column content is ever compressed below this many logical units of
// separation regardless of how short its duration is (spec §4.5).
const MinSymbolSeparation = 1.0

// SpacingParams tunes the Gourlay-style spacing function f(Δt) =
// k·log2(Δt/Δt_ref) + c.
type SpacingParams struct {
	K       float64 // slope
	C       float64 // constant term
	DeltaRef float64 // reference duration (Δt_ref)
}

// DefaultSpacingParams matches common engraving practice: doubling a
// note's duration widens its column by k logical units.
func DefaultSpacingParams() SpacingParams {
	return SpacingParams{K: 10, C: 8, DeltaRef: 1.0}
}

// Spacer computes a column's intrinsic width from its content's event
// durations (spec §4.5).
type Spacer struct {
	Params SpacingParams
}

// NewSpacer builds a spacer with the given parameters.
func NewSpacer(params SpacingParams) *Spacer { return &Spacer{Params: params} }

// Width evaluates f(Δt), bounded below by MinSymbolSeparation.
func (s *Spacer) Width(deltaT float64) float64 {
	if deltaT <= 0 {
		return MinSymbolSeparation
	}
	w := s.Params.K*log2(deltaT/s.Params.DeltaRef) + s.Params.C
	if w < MinSymbolSeparation {
		return MinSymbolSeparation
	}
	return w
}

// ColumnIntrinsicWidth computes a column's width as the minimum spacing
// width over every concurrent voice's duration-to-next-event in the
// column (spec §4.5: "the minimum is taken over concurrent voices within
// the column" — the column must be at least wide enough for its fastest
// voice, and no wider than necessary for slower ones).
func (s *Spacer) ColumnIntrinsicWidth(voiceDurations []float64) float64 {
	if len(voiceDurations) == 0 {
		return MinSymbolSeparation
	}
	min := math.Inf(1)
	for _, d := range voiceDurations {
		w := s.Width(d)
		if w < min {
			min = w
		}
	}
	return min
}

func log2(x float64) float64 { return math.Log(x) / math.Log(2) }
