package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystemLayouter_PlaceColumns_StartPositions(t *testing.T) {
	sl := NewSystemLayouter()

	col0 := NewColumnLayouter(0, 0, 300, 300) // start_hook=0, body=300, end_hook=0
	col1 := NewColumnLayouter(0, 0, 600, 600) // start_hook=0

	starts := sl.PlaceColumns([]*ColumnLayouter{col0, col1}, 1500)

	assert.Equal(t, 1500.0, starts[0])
	assert.Equal(t, 1800.0, starts[1])
}

func TestSystemLayouter_PlaceColumns_OverlapsHooks(t *testing.T) {
	sl := NewSystemLayouter()

	// col0 ends with a 500-wide end_hook; col1 only needs a 200-wide
	// start_hook, so only the uncovered remainder (300) is added beyond
	// col0's last symbol, not the full end_hook.
	col0 := NewColumnLayouter(0, 0, 1000, 1500)
	col1 := NewColumnLayouter(0, 200, 800, 800)

	starts := sl.PlaceColumns([]*ColumnLayouter{col0, col1}, 0)

	assert.Equal(t, 0.0, starts[0])
	assert.Equal(t, 1300.0, starts[1])
}

func TestSystemLayouter_Sizes(t *testing.T) {
	sl := NewSystemLayouter()

	col0 := NewColumnLayouter(0, 0, 1000, 1500) // body=1000, end_hook=500
	col1 := NewColumnLayouter(0, 200, 800, 800) // start_hook=200, trimmed=600

	sizes := sl.Sizes([]*ColumnLayouter{col0, col1})

	assert.Equal(t, 1500.0, sizes[0]) // first column: body+end_hook
	// prev end_hook (500) exceeds this start_hook (200): trimmed (600) + 300
	assert.Equal(t, 900.0, sizes[1])
}

func TestSystemLayouter_Justify(t *testing.T) {
	sl := NewSystemLayouter()

	col0 := NewColumnLayouter(0, 0, 1800, 1800)
	col1 := NewColumnLayouter(0, 0, 2400, 2400)

	widths := sl.Justify([]*ColumnLayouter{col0, col1}, 420)

	assert.InDelta(t, 1980.0, widths[0], 1e-9)
	assert.InDelta(t, 2640.0, widths[1], 1e-9)
	assert.InDelta(t, 1980.0, col0.JustifiedWidth, 1e-9)
	assert.InDelta(t, 2640.0, col1.JustifiedWidth, 1e-9)
}

func TestSystemLayouter_Justify_ZeroTrimmedWidth(t *testing.T) {
	sl := NewSystemLayouter()
	col := NewColumnLayouter(0, 0, 0, 0)

	widths := sl.Justify([]*ColumnLayouter{col}, 100)
	assert.Equal(t, 0.0, widths[0])
}
