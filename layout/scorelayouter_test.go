package layout

import (
	"testing"

	"github.com/ako-backing-tracks/scoreengrave/engrave"
	"github.com/ako-backing-tracks/scoreengrave/geom"
	"github.com/ako-backing-tracks/scoreengrave/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoInstrumentDocument() *score.Document {
	data := []byte(`
options:
  page:
    size: a4
    margin_top: 100
    margin_bottom: 100
    margin_left: 100
    margin_right: 100
instruments:
  - name: Violin
    staves:
      - lines: 5
        events:
          - {kind: clef, time: 0, line: 0, clef: treble}
          - {kind: time, time: 0, measure_duration: 4}
          - {kind: note, time: 0, voice: 0, line: 2, duration: 4}
          - {kind: barline, time: 4}
  - name: Cello
    staves:
      - lines: 5
        events:
          - {kind: clef, time: 0, line: 0, clef: bass}
          - {kind: time, time: 0, measure_duration: 4}
          - {kind: note, time: 0, voice: 0, line: 2, duration: 4}
          - {kind: barline, time: 4}
`)
	doc, err := score.ParseDocument(data)
	if err != nil {
		panic(err)
	}
	return doc
}

func tinyDocument() *score.Document {
	data := []byte(`
options:
  page:
    size: a4
    margin_top: 100
    margin_bottom: 100
    margin_left: 100
    margin_right: 100
instruments:
  - name: Piano
    staves:
      - lines: 5
        events:
          - {kind: clef, time: 0, line: 0, clef: treble}
          - {kind: time, time: 0, measure_duration: 4}
          - {kind: note, time: 0, voice: 0, line: 2, duration: 1}
          - {kind: note, time: 1, voice: 0, line: 4, duration: 1}
          - {kind: barline, time: 2}
          - {kind: note, time: 2, voice: 0, line: 3, duration: 1}
          - {kind: note, time: 3, voice: 0, line: 1, duration: 1}
          - {kind: barline, time: 4}
`)
	doc, err := score.ParseDocument(data)
	if err != nil {
		panic(err)
	}
	return doc
}

func TestScoreLayouter_PrepareToStartLayout_BuildsColumnsAndBreaks(t *testing.T) {
	sl := NewScoreLayouter(tinyDocument())
	sl.PrepareToStartLayout()

	require.NotEmpty(t, sl.columns)
	require.NotEmpty(t, sl.breaks)
	assert.Equal(t, 0, sl.breaks[0])
	assert.Equal(t, len(sl.columns), sl.breaks[len(sl.breaks)-1])
}

func TestScoreLayouter_LayoutInBox_FinishesWhenEverythingFits(t *testing.T) {
	sl := NewScoreLayouter(tinyDocument())

	page := geom.NewBox(geom.BoxDocPage, geom.Rect{
		Origin: geom.Point{X: 0, Y: 0},
		Size:   geom.Size{W: 500, H: 500},
	})

	result := sl.LayoutInBox(page)

	require.NoError(t, result.Err)
	assert.True(t, result.Finished)
	assert.NotEmpty(t, page.Children)
	assert.Zero(t, sl.Storage.PendingCount())
}

func TestScoreLayouter_LayoutInBox_ReturnsUnfinishedWhenPageTooShortForAllSystems(t *testing.T) {
	sl := NewScoreLayouter(tinyDocument())
	sl.PrepareToStartLayout()

	// Force more than one system so a short page can only fit the first.
	sl.breaks = []int{0, 1, len(sl.columns)}

	shortPage := geom.NewBox(geom.BoxDocPage, geom.Rect{
		Origin: geom.Point{X: 0, Y: 0},
		Size:   geom.Size{W: 500, H: sl.systemHeight() + 1},
	})

	result := sl.LayoutInBox(shortPage)

	require.NoError(t, result.Err)
	assert.False(t, result.Finished)
	assert.Len(t, shortPage.Children, 1)
}

func TestScoreLayouter_LayoutInBox_ReportsErrorWhenPageTooSmallForOneSystem(t *testing.T) {
	sl := NewScoreLayouter(tinyDocument())

	tinyPage := geom.NewBox(geom.BoxDocPage, geom.Rect{
		Origin: geom.Point{X: 0, Y: 0},
		Size:   geom.Size{W: 500, H: 1},
	})

	result := sl.LayoutInBox(tinyPage)

	require.Error(t, result.Err)
	assert.True(t, result.Finished)
	require.Len(t, tinyPage.Shapes, 1)
	assert.Equal(t, geom.ShapeErrorMessage, tinyPage.Shapes[0].Kind)
}

func TestScoreLayouter_LayoutInBox_StacksMultipleInstrumentsWithoutOverlap(t *testing.T) {
	sl := NewScoreLayouter(twoInstrumentDocument())

	page := geom.NewBox(geom.BoxDocPage, geom.Rect{
		Origin: geom.Point{X: 0, Y: 0},
		Size:   geom.Size{W: 500, H: 500},
	})

	result := sl.LayoutInBox(page)
	require.NoError(t, result.Err)
	require.NotEmpty(t, page.Children)

	noteheadYByInstr := map[int]float64{}
	for _, system := range page.Children {
		for _, slice := range system.Children {
			for _, instrBox := range slice.Children {
				assert.Equal(t, geom.BoxSliceInstr, instrBox.Kind)
				for _, shape := range instrBox.Shapes {
					if shape.Kind != geom.ShapeNotehead {
						continue
					}
					np, ok := shape.Payload.(*engrave.NotePayload)
					require.True(t, ok)
					noteheadYByInstr[np.Object.Instr] = shape.Bounds.Origin.Y
				}
			}
		}
	}

	require.Contains(t, noteheadYByInstr, 0)
	require.Contains(t, noteheadYByInstr, 1)
	assert.NotEqual(t, noteheadYByInstr[0], noteheadYByInstr[1])

	expectedOffset := sl.staffBaselines[InstrStaff{Instr: 1, Staff: 0}] - sl.staffBaselines[InstrStaff{Instr: 0, Staff: 0}]
	assert.Greater(t, expectedOffset, 0.0)
	assert.InDelta(t, expectedOffset, noteheadYByInstr[1]-noteheadYByInstr[0], 1e-9)
}

func TestScoreLayouter_LayoutInBox_EmptyDocumentFinishesImmediately(t *testing.T) {
	sl := NewScoreLayouter(&score.Document{Options: score.DefaultOptions()})

	page := geom.NewBox(geom.BoxDocPage, geom.Rect{
		Origin: geom.Point{X: 0, Y: 0},
		Size:   geom.Size{W: 500, H: 500},
	})

	result := sl.LayoutInBox(page)

	require.NoError(t, result.Err)
	assert.True(t, result.Finished)
	assert.Empty(t, page.Children)
}
