package layout

// SystemLayouter positions a system's columns and justifies the result
// against the available width (spec §4.6).
type SystemLayouter struct{}

// NewSystemLayouter constructs a system layouter. It carries no state of
// its own; everything it needs is passed in per call.
func NewSystemLayouter() *SystemLayouter { return &SystemLayouter{} }

// PlaceColumns positions columns left to right starting at systemStart
// and mutates each column's edges via SetEdges. Column i's start
// position is systemStart for i=0; otherwise it is the previous column's
// last-symbol edge plus whatever of the previous column's end_hook isn't
// already covered by this column's own start_hook (spec §4.6):
//
//	start(i+1) = last_symbol(i) + max(0, end_hook(i) − start_hook(i+1))
//
// It returns each column's resolved start x.
func (sl *SystemLayouter) PlaceColumns(columns []*ColumnLayouter, systemStart float64) []float64 {
	starts := make([]float64, len(columns))
	prevLastSymbol, prevEndHook := 0.0, 0.0

	for i, col := range columns {
		var start float64
		if i == 0 {
			start = systemStart
		} else {
			overlap := prevEndHook - col.StartHook()
			if overlap < 0 {
				overlap = 0
			}
			start = prevLastSymbol + overlap
		}
		starts[i] = start

		firstSymbol := start + col.StartHook()
		lastSymbol := firstSymbol + col.Body()
		final := lastSymbol + col.EndHook()
		col.SetEdges(start, firstSymbol, lastSymbol, final)

		prevLastSymbol, prevEndHook = lastSymbol, col.EndHook()
	}

	return starts
}

// Sizes reports each column's contribution to the system's used width
// (spec §4.6 "Column size"): the first column contributes body+end_hook
// (its own start_hook falls outside the system's used width, since it
// sits at the system's own indent); every later column contributes its
// trimmed_width, widened if the previous column's end_hook exceeds this
// column's start_hook.
func (sl *SystemLayouter) Sizes(columns []*ColumnLayouter) []float64 {
	sizes := make([]float64, len(columns))
	for i, col := range columns {
		if i == 0 {
			sizes[i] = col.Body() + col.EndHook()
			continue
		}
		prev := columns[i-1]
		sizes[i] = col.TrimmedWidth()
		if prev.EndHook() > col.StartHook() {
			sizes[i] += prev.EndHook() - col.StartHook()
		}
	}
	return sizes
}

// Justify distributes positive free space across
// columns proportionally to each column's trimmed_width share of the
// system's total trimmed width (spec §4.6: new_width[i] = trimmed[i] ·
// (1 + free/Σtrimmed)). If freeSpace <= 0, widths are left as computed.
// It sets JustifiedWidth on each column and returns the per-column
// widened widths in order.
//
// With free=420 and trimmed widths {1800, 2400}, the shares are 180 and
// 240, giving justified widths {1980, 2640}.
func (sl *SystemLayouter) Justify(columns []*ColumnLayouter, freeSpace float64) []float64 {
	widths := make([]float64, len(columns))

	total := 0.0
	for _, col := range columns {
		total += col.TrimmedWidth()
	}

	if total <= 0 || freeSpace <= 0 {
		for i, col := range columns {
			widths[i] = col.TrimmedWidth()
			col.JustifiedWidth = widths[i]
		}
		return widths
	}

	for i, col := range columns {
		widths[i] = col.TrimmedWidth() * (1 + freeSpace/total)
		col.JustifiedWidth = widths[i]
	}
	return widths
}
