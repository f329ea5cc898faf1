package score

// Meter is the pure function of spec §4.1: it converts score-relative
// tenths (1 tenth = 1/10 of a staff's interline space) to output-space
// logical units, deriving per-staff scaling once at construction and
// carrying no mutable state afterward.
type Meter struct {
	// scale[instr][staff] is logical-units-per-tenth for that staff.
	scale map[int]map[int]float64
	// lines[instr][staff] is the staff's line count, used by callers that
	// need to know a staff's full height in tenths (usually (5-1)*10=40).
	lines map[int]map[int]int
}

// DefaultLogicalUnitsPerTenth is used for any staff the document doesn't
// override — a staff space of 1mm maps 1 tenth to 0.1mm-equivalent
// logical units in most notation engines' default scale.
const DefaultLogicalUnitsPerTenth = 0.1

// NewMeter derives per-instrument, per-staff scaling from doc. A staff's
// scale may later be customized by the document (e.g. a cue-size staff);
// for now every staff uses the same default. The lookup table is built
// once here and never mutated afterward.
func NewMeter(doc *Document) *Meter {
	m := &Meter{scale: map[int]map[int]float64{}, lines: map[int]map[int]int{}}
	for _, instr := range doc.Instruments {
		m.scale[instr.Index] = map[int]float64{}
		m.lines[instr.Index] = map[int]int{}
		for _, staff := range instr.Staves {
			m.scale[instr.Index][staff.Index] = DefaultLogicalUnitsPerTenth
			lines := staff.Lines
			if lines == 0 {
				lines = 5
			}
			m.lines[instr.Index][staff.Index] = lines
		}
	}
	return m
}

// TenthsToLogical converts a tenths value to logical units for the given
// instrument/staff.
func (m *Meter) TenthsToLogical(tenths float64, instr, staff int) float64 {
	scale := DefaultLogicalUnitsPerTenth
	if byStaff, ok := m.scale[instr]; ok {
		if s, ok := byStaff[staff]; ok {
			scale = s
		}
	}
	return tenths * scale
}

// StaffHeightTenths returns the given staff's full height (top line to
// bottom line) in tenths: (lines-1) * 10.
func (m *Meter) StaffHeightTenths(instr, staff int) float64 {
	lines := 5
	if byStaff, ok := m.lines[instr]; ok {
		if l, ok := byStaff[staff]; ok {
			lines = l
		}
	}
	return float64(lines-1) * 10
}

// LineSpaceTenths is the distance between two adjacent staff lines, always
// 10 tenths by definition (GLOSSARY: "Tenth").
const LineSpaceTenths = 10.0

// PositionToTenths converts a position-on-staff (GLOSSARY: integer encoding
// of vertical placement, 0 = bottom line) to a tenths offset from the
// bottom staff line, used by the beam engraver's rest-repositioning step
// (spec §4.4 step 5: "tenths = 5*avg_pos").
func PositionToTenths(position float64) float64 {
	return 5 * position
}
