// Package score holds the read-only input model (spec §3): a tree of
// Instrument → Staff → StaffObject, plus a time-ordered cross-instrument
// index, and the ScoreMeter that converts tenths to logical units. Parsing
// an actual notation language is out of scope (spec §1); this package only
// builds and serves the object graph layout consumes.
package score

// ObjectKind enumerates the staff-object kinds the Shapes Creator (spec
// §4.3) dispatches on.
type ObjectKind int

const (
	ObjBarline ObjectKind = iota
	ObjClef
	ObjKeySignature
	ObjTimeSignature
	ObjNote
	ObjRest
	ObjSpacer
	ObjMetronome
	ObjDynamics
	ObjArticulation
	ObjFermata
	ObjOrnament
	ObjScoreText
	ObjScoreLine
	ObjTechnical
)

// StemDirection is a note's forced or computed stem direction.
type StemDirection int

const (
	StemDefault StemDirection = iota
	StemUp
	StemDown
)

// BeamType is a note-rest's per-level beaming state (spec §3).
type BeamType int

const (
	BeamNone BeamType = iota
	BeamBegin
	BeamContinue
	BeamEnd
	BeamForwardHook
	BeamBackwardHook
)

// MaxBeamLevels is the number of beaming levels a note-rest can carry
// (spec §4.4: "up to six beaming levels").
const MaxBeamLevels = 6

// TimePos is a score-relative time position; comparable and totally
// ordered, matching spec §5's "strict total order by (timepos, …)".
type TimePos float64

// StaffObject is any event placed on a staff at a time position: note,
// rest, clef, key, time signature, barline, spacer (GLOSSARY).
type StaffObject struct {
	Kind       ObjectKind
	TimePos    TimePos
	Instr      int
	Staff      int
	Voice      int
	Line       int // position-on-staff, spec GLOSSARY (0 = bottom line)
	Duration   float64
	IsBeamed   bool
	IsEndBeam  bool
	TiedPrev   bool
	TiedNext   bool
	StemDir    StemDirection
	BeamTypes  [MaxBeamLevels]BeamType
	MeasureDur float64 // only meaningful on a time-signature object

	// ChordRoot/ChordMember support §4.3's chord-accumulator exception:
	// creating a note that is a chord member also adds its shape to the
	// chord immediately.
	ChordMember bool
	ChordRoot   *StaffObject

	Clef ClefKind
	Key  KeySignature

	Invisible bool
	Width     float64 // only meaningful when Invisible (spacer/go-forward rest)

	// ForcedSystemBreak marks a column ending on this object as carrying
	// a forced system break (spec §4.7/§8): the Lines Breaker must end a
	// system here regardless of penalty. Typically set on section-ending
	// barlines.
	ForcedSystemBreak bool
}

// GetForcedSystemBreak reports whether this object forces a system break.
func (o *StaffObject) GetForcedSystemBreak() bool { return o.ForcedSystemBreak }

func (o *StaffObject) IsNote() bool          { return o.Kind == ObjNote }
func (o *StaffObject) IsRest() bool          { return o.Kind == ObjRest }
func (o *StaffObject) IsBarline() bool       { return o.Kind == ObjBarline }
func (o *StaffObject) IsNoteRest() bool      { return o.Kind == ObjNote || o.Kind == ObjRest }
func (o *StaffObject) IsTimeSignature() bool { return o.Kind == ObjTimeSignature }
func (o *StaffObject) GetBeamed() bool       { return o.IsBeamed }
func (o *StaffObject) GetEndOfBeam() bool    { return o.IsEndBeam }
func (o *StaffObject) GetTiedPrev() bool     { return o.TiedPrev }
func (o *StaffObject) GetTiedNext() bool     { return o.TiedNext }
func (o *StaffObject) GetDuration() float64  { return o.Duration }
func (o *StaffObject) GetVoice() int         { return o.Voice }
func (o *StaffObject) GetStemDirection() StemDirection { return o.StemDir }
func (o *StaffObject) GetBeamType(level int) BeamType {
	if level < 0 || level >= MaxBeamLevels {
		return BeamNone
	}
	return o.BeamTypes[level]
}
func (o *StaffObject) GetMeasureDuration() float64 { return o.MeasureDur }

// RelationKind enumerates the relation-object kinds (GLOSSARY).
type RelationKind int

const (
	RelBeam RelationKind = iota
	RelTie
	RelSlur
	RelTuplet
	RelLyric
)

// Relation links two or more staff-objects (GLOSSARY: "Relation object").
type Relation struct {
	Kind    RelationKind
	Members []*StaffObject
	// Number/Voice/Instr identify a lyric relation when no single object
	// identity is stable across phases (spec §4.3).
	Number int
	Voice  int
	Instr  int
}

// Staff is an ordered list of staff-objects belonging to one staff line of
// one instrument.
type Staff struct {
	Index   int
	Lines   int // usually 5
	Objects []*StaffObject
}

// Instrument owns one or more staves (e.g. a piano's treble+bass staves).
type Instrument struct {
	Index  int
	Name   string
	Staves []*Staff
}

// Document is the read-only score: instruments plus relations, plus a
// derived time-ordered cross-instrument index (the "StaffObjs table",
// spec §3).
type Document struct {
	Instruments []*Instrument
	Relations   []*Relation
	Options     Options
}

// StaffObjsEntry is one row of the StaffObjs table: (staffobj, timepos,
// measure).
type StaffObjsEntry struct {
	Object  *StaffObject
	TimePos TimePos
	Measure int
}

// BuildStaffObjsTable returns every staff-object across every instrument in
// strict total order by (timepos, instrument, voice, staff), the ordering
// guarantee spec §5 requires for deterministic output. Ties on all four
// keys are broken by tiePrecedence, then by input (slice) order, since the
// sort is stable.
func (d *Document) BuildStaffObjsTable() []StaffObjsEntry {
	var entries []StaffObjsEntry
	for _, instr := range d.Instruments {
		for _, staff := range instr.Staves {
			measure := 0
			for _, obj := range staff.Objects {
				entries = append(entries, StaffObjsEntry{Object: obj, TimePos: obj.TimePos, Measure: measure})
				if obj.IsBarline() {
					measure++
				}
			}
		}
	}
	stableSortEntries(entries)
	return entries
}

func stableSortEntries(entries []StaffObjsEntry) {
	// insertion sort: stable and the table is small per-score relative to
	// full program runtime; determinism matters far more than asymptotic
	// cost here (spec §8 property 1).
	for i := 1; i < len(entries); i++ {
		j := i
		for j > 0 && less(entries[j], entries[j-1]) {
			entries[j], entries[j-1] = entries[j-1], entries[j]
			j--
		}
	}
}

func less(a, b StaffObjsEntry) bool {
	if a.TimePos != b.TimePos {
		return a.TimePos < b.TimePos
	}
	if a.Object.Instr != b.Object.Instr {
		return a.Object.Instr < b.Object.Instr
	}
	if a.Object.Voice != b.Object.Voice {
		return a.Object.Voice < b.Object.Voice
	}
	if a.Object.Staff != b.Object.Staff {
		return a.Object.Staff < b.Object.Staff
	}
	return tiePrecedence(a.Object) < tiePrecedence(b.Object)
}

// tiePrecedence breaks remaining ties deterministically: barlines sort
// before clefs, key and time signatures at the same instant, which sort
// before everything else (notes, rests, spacers), matching how a cursor
// would naturally visit prolog-before-content.
func tiePrecedence(o *StaffObject) int {
	switch {
	case o.IsBarline():
		return 0
	case o.Kind == ObjClef || o.Kind == ObjKeySignature || o.Kind == ObjTimeSignature:
		return 1
	default:
		return 2
	}
}

// NumInstrumentsWithTimeSignature counts instruments where any staff
// carries at least one time-signature object — used by the Column Breaker
// (spec §4.2) to size its consecutive-barlines threshold.
func (d *Document) NumInstrumentsWithTimeSignature() int {
	n := 0
	for _, instr := range d.Instruments {
		found := false
		for _, staff := range instr.Staves {
			for _, obj := range staff.Objects {
				if obj.IsTimeSignature() {
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if found {
			n++
		}
	}
	return n
}
