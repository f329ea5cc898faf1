package layout

import (
	"fmt"
	"log/slog"

	"github.com/ako-backing-tracks/scoreengrave/engrave"
	"github.com/ako-backing-tracks/scoreengrave/geom"
	"github.com/ako-backing-tracks/scoreengrave/logging"
	"github.com/ako-backing-tracks/scoreengrave/score"
	"github.com/getsentry/sentry-go"
)

// PrologWidthTenths is a fixed approximation (10 tenths times 10) of the
// width of a clef+key+time prolog. It is used only as the left indent of
// the first system; no prolog shapes are synthesized at the start of
// later systems (see DESIGN.md).
const PrologWidthTenths = 10 * 10

// ScoreLayouter is the orchestrator of spec §4.8: it prepares the column
// stream once, then lays out one page at a time on repeated LayoutInBox
// calls (spec §5's cooperative single-threaded model).
type ScoreLayouter struct {
	Doc     *score.Document
	Meter   *score.Meter
	Storage *geom.ShapesStorage
	Creator *engrave.Creator
	Spacer  *Spacer
	System  *SystemLayouter
	Lines   *LinesBreaker

	columns        []*ColumnLayouter
	lineColumns    []LineColumn
	breaks         []int // system boundaries over columns, from Lines.Optimal
	nextSystem     int   // index into breaks of the next system to place
	prepared       bool
	staffBaselines map[InstrStaff]float64

	log *slog.Logger
}

// InterStaffGapTenths separates two adjacent staves within the same system,
// on top of each staff's own height.
const InterStaffGapTenths = 40

// NewScoreLayouter builds a score layouter over doc.
func NewScoreLayouter(doc *score.Document) *ScoreLayouter {
	meter := score.NewMeter(doc)
	storage := geom.NewShapesStorage()
	return &ScoreLayouter{
		Doc:     doc,
		Meter:   meter,
		Storage: storage,
		Creator: engrave.NewCreator(meter, storage),
		Spacer:  NewSpacer(DefaultSpacingParams()),
		System:  NewSystemLayouter(),
		Lines:   NewLinesBreaker(),
		log:     logging.For("scorelayouter"),
	}
}

// PrepareToStartLayout implements spec §4.8 phase 1: split the score into
// columns, run the spacing algorithm, and run the line breaker once
// against the target system width derived from the page options.
func (sl *ScoreLayouter) PrepareToStartLayout() {
	numInstrWithTimeSig := sl.Doc.NumInstrumentsWithTimeSignature()
	cur := NewCursor(sl.Doc)
	rawColumns := Partition(cur, numInstrWithTimeSig)

	sl.columns = make([]*ColumnLayouter, len(rawColumns))
	sl.lineColumns = make([]LineColumn, len(rawColumns))

	for i, rc := range rawColumns {
		cl := sl.buildColumn(rc)
		sl.columns[i] = cl
		sl.lineColumns[i] = LineColumn{Width: cl.TrimmedWidth(), ForcedBreak: rc.forcedBreak()}
	}

	targetWidth := sl.systemTargetWidth()
	penalty := TargetWidthPenalty(sl.lineColumns, targetWidth)
	sl.breaks = sl.Lines.Optimal(sl.lineColumns, penalty, nil)
	sl.nextSystem = 0
	sl.staffBaselines = sl.computeStaffBaselines()
	sl.prepared = true
}

// computeStaffBaselines assigns each (instrument, staff) a vertical offset
// within a system, stacking staves top to bottom in document order so that
// two staves never land on the same Y.
func (sl *ScoreLayouter) computeStaffBaselines() map[InstrStaff]float64 {
	baselines := map[InstrStaff]float64{}
	cursor := 0.0
	for _, instr := range sl.Doc.Instruments {
		for _, staff := range instr.Staves {
			key := InstrStaff{Instr: instr.Index, Staff: staff.Index}
			baselines[key] = cursor
			cursor += sl.Meter.TenthsToLogical(sl.Meter.StaffHeightTenths(instr.Index, staff.Index)+InterStaffGapTenths, instr.Index, staff.Index)
		}
	}
	return baselines
}

func (rc *Column) forcedBreak() bool {
	if len(rc.Entries) == 0 {
		return false
	}
	return rc.Entries[len(rc.Entries)-1].Object.GetForcedSystemBreak()
}

func (sl *ScoreLayouter) buildColumn(rc *Column) *ColumnLayouter {
	durations := make([]float64, 0, len(rc.Entries))
	hasBarline := false
	for _, e := range rc.Entries {
		if e.Object.IsNoteRest() {
			durations = append(durations, e.Object.GetDuration())
		}
		if e.Object.IsBarline() {
			hasBarline = true
		}
	}

	body := sl.Spacer.ColumnIntrinsicWidth(durations)
	cl := NewColumnLayouter(0, 0, body, body)
	cl.HasVisibleBarline = hasBarline

	for i, e := range rc.Entries {
		offset := body * float64(i) / float64(maxInt(len(rc.Entries), 1))
		shape := sl.Creator.CreateShape(e.Object, offset)
		cl.AddShape(e.Object.Instr, e.Object.Staff, shape)
	}

	return cl
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (sl *ScoreLayouter) systemTargetWidth() float64 {
	opts := sl.Doc.Options
	marginLeft := opts.Page.MarginLeft
	marginRight := opts.Page.MarginRight
	widthTenths := opts.Page.Size.Width - marginLeft - marginRight
	if widthTenths <= 0 {
		widthTenths = 1800 // DefaultOptions page minus default margins is still positive; this only guards a zero-value Options
	}
	return sl.Meter.TenthsToLogical(widthTenths, 0, 0)
}

// systemHeight approximates one system's vertical extent: every staff's
// height plus inter-staff spacing, summed across every staff of every
// instrument (spec doesn't specify inter-system spacing precisely; this
// uses a fixed gap consistent with the staff line-space unit).
func (sl *ScoreLayouter) systemHeight() float64 {
	total := 0.0
	for _, instr := range sl.Doc.Instruments {
		for _, staff := range instr.Staves {
			total += sl.Meter.TenthsToLogical(sl.Meter.StaffHeightTenths(instr.Index, staff.Index)+InterStaffGapTenths, instr.Index, staff.Index)
		}
	}
	if total == 0 {
		total = sl.Meter.TenthsToLogical(90, 0, 0)
	}
	return total
}

// LayoutResult is returned by LayoutInBox.
type LayoutResult struct {
	Finished bool // true once every column has been placed on some page
	Err      error
}

// LayoutInBox implements spec §4.8 phase 2: lay out as many whole systems
// as fit vertically inside pageBox, attaching each system's boxes and
// shapes. It returns Finished=false when pageBox is full but columns
// remain (the caller must allocate a new page and call again), or
// Finished=true once every column is placed, or if an unrecoverable
// error (a page too small for even one system) terminates layout early.
func (sl *ScoreLayouter) LayoutInBox(pageBox *geom.Box) LayoutResult {
	if !sl.prepared {
		sl.PrepareToStartLayout()
	}

	cursorY := pageBox.Bounds.Origin.Y
	bottom := pageBox.Bounds.Bottom()
	systemHeight := sl.systemHeight()
	placedAny := false

	for sl.nextSystem+1 < len(sl.breaks) {
		if cursorY+systemHeight > bottom {
			break
		}

		startCol, endCol := sl.breaks[sl.nextSystem], sl.breaks[sl.nextSystem+1]
		sysBox := sl.layoutSystem(pageBox, startCol, endCol, cursorY)
		pageBox.AddChildBox(sysBox)

		cursorY += systemHeight
		sl.nextSystem++
		placedAny = true
	}

	if !placedAny && sl.nextSystem+1 < len(sl.breaks) {
		sl.reportInsufficientSpace(pageBox)
		return LayoutResult{Finished: true, Err: fmt.Errorf("layout: page too small for a single system")}
	}

	if sl.Doc.Options.Score.FillPageWithEmptyStaves {
		sl.fillRemainingSpace(pageBox, cursorY, bottom, systemHeight)
	}

	done := sl.nextSystem+1 >= len(sl.breaks)
	return LayoutResult{Finished: done}
}

func (sl *ScoreLayouter) layoutSystem(pageBox *geom.Box, startCol, endCol int, y float64) *geom.Box {
	systemColumns := sl.columns[startCol:endCol]

	indent := 0.0
	if startCol == 0 {
		indent = sl.Meter.TenthsToLogical(PrologWidthTenths, 0, 0)
	}

	sysBox := geom.NewBox(geom.BoxSystem, geom.Rect{Origin: geom.Point{X: pageBox.Bounds.Origin.X, Y: y}})
	sl.System.PlaceColumns(systemColumns, pageBox.Bounds.Origin.X+indent)

	targetWidth := sl.systemTargetWidth() - indent
	used := 0.0
	sizes := sl.System.Sizes(systemColumns)
	for _, s := range sizes {
		used += s
	}
	free := targetWidth - used
	if free > 0 {
		sl.System.Justify(systemColumns, free)
	}

	var maxRight float64
	for _, col := range systemColumns {
		sliceBox := geom.NewBox(geom.BoxSlice, col.BoundsRect())
		for key, shapes := range col.Shapes {
			instrBox := geom.NewBox(geom.BoxSliceInstr, col.BoundsRect())
			for _, shape := range shapes {
				taken := sl.Storage.Take(shape.ID)
				if taken != nil {
					instrBox.Attach(taken)
				}
			}
			instrBox.MoveBy(0, sl.staffBaselines[key])
			sliceBox.AddChildBox(instrBox)
		}
		sysBox.AddChildBox(sliceBox)
		if r := col.BoundsRect().Right(); r > maxRight {
			maxRight = r
		}
	}

	sysBox.Bounds.Size.W = maxRight - sysBox.Bounds.Origin.X
	return sysBox
}

func (sl *ScoreLayouter) fillRemainingSpace(pageBox *geom.Box, fromY, bottom, systemHeight float64) {
	for fromY+systemHeight <= bottom {
		empty := geom.NewBox(geom.BoxSystem, geom.Rect{Origin: geom.Point{X: pageBox.Bounds.Origin.X, Y: fromY}, Size: geom.Size{W: pageBox.Bounds.Size.W, H: systemHeight}})
		pageBox.AddChildBox(empty)
		fromY += systemHeight
	}
}

func (sl *ScoreLayouter) reportInsufficientSpace(pageBox *geom.Box) {
	errShape := geom.NewShape(geom.ShapeErrorMessage, pageBox.Bounds)
	errShape.Color = geom.Color{R: 200, A: 255}
	pageBox.Attach(errShape)
	sl.log.Error("insufficient vertical space for a single system")
	sentry.CaptureMessage("scoreengrave: insufficient vertical space for a single system")
}
