// Package engrave turns staff-objects into geom.Shapes: the Shapes
// Creator dispatch, one engraver per object kind, the three-phase
// relation-engraver protocol, and the beam engraver (spec §4.3/§4.4).
package engrave

import "math"

// Beam geometry constants, all in tenths (spec §6).
const (
	BeamThickness  = 5.0
	BeamSpacing    = 3.0
	BeamHookLength = 11.0
)

// StdStemLength is the standard (unadjusted) stem length in tenths, used
// as the baseline std_len in the beam engraver's stem-fitting step and as
// the default stem length for non-beamed notes.
const StdStemLength = 35.0

// CanonicalRestPositionTenths is the tenths-space y used as the reference
// when repositioning rests inside a beam group (spec §4.4 step 5).
const CanonicalRestPositionTenths = 35.0

// InfinitePenalty is the line-breaker's "does not fit at all" sentinel
// (spec §6: LOMSE_INFINITE_PENALTY).
var InfinitePenalty = math.Inf(1)
