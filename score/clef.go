package score

// ClefKind enumerates concrete clef glyphs. The distilled spec only names
// "clef" as an opaque prolog element; SPEC_FULL §3 supplements it with the
// concrete glyph/line table original_source's ClefEngraver (lomse) derives
// a glyph index and symbol size from.
type ClefKind int

const (
	ClefNone ClefKind = iota
	ClefG2        // treble
	ClefF4        // bass
	ClefC3        // alto
	ClefC4        // tenor
	ClefPercussion
)

// ClefInfo is the per-kind geometry a clef engraver needs: which staff
// line the clef sits on (1 = bottom) and that line's position-on-staff.
type ClefInfo struct {
	Line        int // 1-based staff line the clef's reference glyph sits on
	PitchOffset int // position-on-staff (GLOSSARY) of that reference line
}

var clefTable = map[ClefKind]ClefInfo{
	ClefG2:         {Line: 2, PitchOffset: 2}, // G4 on the 2nd line
	ClefF4:         {Line: 4, PitchOffset: 6}, // F3 on the 4th line
	ClefC3:         {Line: 3, PitchOffset: 4}, // middle C on the 3rd line
	ClefC4:         {Line: 4, PitchOffset: 6}, // middle C on the 4th line
	ClefPercussion: {Line: 3, PitchOffset: 4},
}

// Info returns the clef's reference-line geometry, or the zero value for
// ClefNone.
func (c ClefKind) Info() ClefInfo { return clefTable[c] }
