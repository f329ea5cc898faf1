package layout

import "github.com/ako-backing-tracks/scoreengrave/geom"

// ColumnLayouter owns one column's shapes (per instrument/staff) and its
// four horizontal edges (spec §4.6): start, first-symbol, last-symbol, and
// final. It exposes TrimmedWidth (first-symbol…final) and JustifiedWidth
// (set after System Layouter justification).
type ColumnLayouter struct {
	xStart, xFirstSymbol, xLastSymbol, xFinal float64

	// HasVisibleBarline marks that the column ends in a barline, which is
	// part of EndHook and is rigid — never compressed (spec §3).
	HasVisibleBarline bool

	// Shapes holds every shape this column produced, keyed by
	// (instrument, staff); order within a slice is left-to-right.
	Shapes map[InstrStaff][]*geom.Shape

	// JustifiedWidth is set by the System Layouter once the system has
	// been justified (spec §4.6); zero until then.
	JustifiedWidth float64
}

// InstrStaff keys ColumnLayouter.Shapes by the staff a group of shapes
// belongs to.
type InstrStaff struct {
	Instr, Staff int
}

// NewColumnLayouter builds a column layouter from its four edges in
// tenths-already-converted logical units.
func NewColumnLayouter(xStart, xFirstSymbol, xLastSymbol, xFinal float64) *ColumnLayouter {
	return &ColumnLayouter{
		xStart: xStart, xFirstSymbol: xFirstSymbol, xLastSymbol: xLastSymbol, xFinal: xFinal,
		Shapes: map[InstrStaff][]*geom.Shape{},
	}
}

// StartHook is the space left of the first symbol reserved for prior
// context (spec §3).
func (c *ColumnLayouter) StartHook() float64 { return c.xFirstSymbol - c.xStart }

// Body is the first-symbol-to-last-symbol extent.
func (c *ColumnLayouter) Body() float64 { return c.xLastSymbol - c.xFirstSymbol }

// EndHook is the space right of the last symbol (or a barline, if
// present — rigid, per spec §3).
func (c *ColumnLayouter) EndHook() float64 { return c.xFinal - c.xLastSymbol }

// TrimmedWidth is body + end_hook (spec §3 invariant).
func (c *ColumnLayouter) TrimmedWidth() float64 { return c.Body() + c.EndHook() }

// FullWidth is start_hook + trimmed_width (spec §3 invariant).
func (c *ColumnLayouter) FullWidth() float64 { return c.StartHook() + c.TrimmedWidth() }

// AddShape records shape as belonging to the given instrument/staff.
func (c *ColumnLayouter) AddShape(instr, staff int, shape *geom.Shape) {
	key := InstrStaff{Instr: instr, Staff: staff}
	c.Shapes[key] = append(c.Shapes[key], shape)
}

// BoundsRect returns the column's current horizontal extent as a Rect
// (origin at xStart, width = full_width), for attaching to a Slice box.
func (c *ColumnLayouter) BoundsRect() geom.Rect {
	return geom.Rect{Origin: geom.Point{X: c.xStart}, Size: geom.Size{W: c.FullWidth()}}
}

// SetEdges updates the column's four edges — used once the spacing
// algorithm and shapes creator have both run and the true extents of the
// column's content are known.
func (c *ColumnLayouter) SetEdges(xStart, xFirstSymbol, xLastSymbol, xFinal float64) {
	c.xStart, c.xFirstSymbol, c.xLastSymbol, c.xFinal = xStart, xFirstSymbol, xLastSymbol, xFinal
}
