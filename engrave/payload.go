package engrave

import (
	"github.com/ako-backing-tracks/scoreengrave/geom"
	"github.com/ako-backing-tracks/scoreengrave/score"
)

// NotePayload is the geom.Shape.Payload for a ShapeNotehead/ShapeStem
// composite note shape. It carries everything the beam engraver needs to
// adjust stem length and direction after the fact (spec §4.4).
type NotePayload struct {
	Object *score.StaffObject

	PositionOnStaff int // 0 = bottom line … higher = higher pitch (GLOSSARY)
	StemDir         score.StemDirection
	StemForced      bool

	StemX      float64 // x of the stem, in logical units
	NoteY      float64 // notehead-side y (where the stem starts)
	FlagY      float64 // stem-end y, before any beam re-fit
	StemHeight float64 // this note's own standard stem length

	IsChordMember bool
	ChordExtra    float64 // extra length the chord contributes to the flag-side segment

	// BeamID weakly references the beam shape this note belongs to, set
	// once the beam engraver finishes (spec §9: weak back-reference by
	// ID, not by pointer).
	BeamID geom.ShapeID
}

// RestPayload is the geom.Shape.Payload for a ShapeRest shape.
type RestPayload struct {
	Object          *score.StaffObject
	PositionOnStaff int
}

// BeamSegment is one drawn stroke of a beam at one beaming level.
type BeamSegment struct {
	Level      int
	X0, Y0     float64
	X1, Y1     float64
}

// BeamPayload is the geom.Shape.Payload for a ShapeBeam shape.
type BeamPayload struct {
	Segments  []BeamSegment
	StemsDown bool
	Mixed     bool
}
