package engrave

import (
	"testing"

	"github.com/ako-backing-tracks/scoreengrave/geom"
	"github.com/ako-backing-tracks/scoreengrave/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMeter(t *testing.T) *score.Meter {
	t.Helper()
	doc := &score.Document{Instruments: []*score.Instrument{{Index: 0, Staves: []*score.Staff{{Index: 0, Lines: 5}}}}}
	return score.NewMeter(doc)
}

func TestCreator_CreateShape_Barline(t *testing.T) {
	c := NewCreator(testMeter(t), geom.NewShapesStorage())
	shape := c.CreateShape(&score.StaffObject{Kind: score.ObjBarline}, 100)
	require.NotNil(t, shape)
	assert.Equal(t, geom.ShapeBarline, shape.Kind)
	assert.Equal(t, 1, c.Storage.PendingCount())
}

func TestCreator_CreateShape_InvisibleSpacer(t *testing.T) {
	c := NewCreator(testMeter(t), geom.NewShapesStorage())
	shape := c.CreateShape(&score.StaffObject{Kind: score.ObjNote, Invisible: true, Width: 20}, 0)
	assert.Equal(t, geom.ShapeInvisible, shape.Kind)
}

func TestCreator_ChordAccumulator_ReversesAdjacentSeconds(t *testing.T) {
	c := NewCreator(testMeter(t), geom.NewShapesStorage())
	root := &score.StaffObject{Kind: score.ObjNote, Line: 4}

	first := c.CreateShape(&score.StaffObject{Kind: score.ObjNote, Line: 4, ChordMember: true, ChordRoot: root}, 100)
	second := c.CreateShape(&score.StaffObject{Kind: score.ObjNote, Line: 5, ChordMember: true, ChordRoot: root}, 100)

	assert.Equal(t, first.Bounds.Origin.X, 100.0)
	assert.NotEqual(t, second.Bounds.Origin.X, 100.0, "adjacent second should be shifted to the opposite side")
}

func TestCreator_RelationProtocol_TieStartContinueFinish(t *testing.T) {
	c := NewCreator(testMeter(t), geom.NewShapesStorage())
	rel := &score.Relation{Kind: score.RelTie}

	firstObj := &score.StaffObject{Kind: score.ObjNote, Line: 4}
	firstShape := c.CreateShape(firstObj, 0)
	lastObj := &score.StaffObject{Kind: score.ObjNote, Line: 4}
	lastShape := c.CreateShape(lastObj, 50)

	eng := NewTieEngraver()
	c.StartRelation(rel, eng, firstObj, firstShape)
	shapes := c.FinishRelation(rel, lastObj, lastShape, 0)

	require.Len(t, shapes, 1)
	assert.Equal(t, geom.ShapeTie, shapes[0].Kind)
	assert.Equal(t, 0, c.Storage.LiveEngraverCount())
}

func TestCreator_LyricProtocol_KeyedByInstrNumberVoiceNotRelationIdentity(t *testing.T) {
	c := NewCreator(testMeter(t), geom.NewShapesStorage())

	firstObj := &score.StaffObject{Kind: score.ObjNote, Line: 4, Instr: 0, Voice: 0}
	firstShape := c.CreateShape(firstObj, 0)
	lastObj := &score.StaffObject{Kind: score.ObjNote, Line: 4, Instr: 0, Voice: 0}
	lastShape := c.CreateShape(lastObj, 50)

	// Start and Finish use distinct *score.Relation values, as a lyric's
	// identity isn't stable across phases; only the (instr, number, voice)
	// tag matches.
	startRel := &score.Relation{Kind: score.RelLyric, Instr: 0, Number: 1, Voice: 0}
	finishRel := &score.Relation{Kind: score.RelLyric, Instr: 0, Number: 1, Voice: 0}

	eng := NewLyricEngraver("ly-ric")
	c.StartLyric(startRel, eng, firstObj, firstShape)
	shapes := c.FinishLyric(finishRel, lastObj, lastShape, 0)

	require.Len(t, shapes, 1)
	assert.Equal(t, geom.ShapeLyric, shapes[0].Kind)
	assert.Equal(t, "ly-ric", shapes[0].Payload)
	assert.Equal(t, 0, c.Storage.LiveEngraverCount())
}

func TestCreator_FinishLyric_DifferentVoice_LogsAndReturnsNil(t *testing.T) {
	c := NewCreator(testMeter(t), geom.NewShapesStorage())

	firstObj := &score.StaffObject{Kind: score.ObjNote, Line: 4, Instr: 0, Voice: 0}
	firstShape := c.CreateShape(firstObj, 0)

	c.StartLyric(&score.Relation{Kind: score.RelLyric, Instr: 0, Number: 1, Voice: 0}, NewLyricEngraver("a"), firstObj, firstShape)

	shapes := c.FinishLyric(&score.Relation{Kind: score.RelLyric, Instr: 0, Number: 1, Voice: 1}, &score.StaffObject{}, geom.NewInvisibleShape(0, 0), 0)
	assert.Nil(t, shapes)
}

func TestCreator_FinishRelation_WithoutStart_LogsAndReturnsNil(t *testing.T) {
	c := NewCreator(testMeter(t), geom.NewShapesStorage())
	rel := &score.Relation{Kind: score.RelSlur}
	shapes := c.FinishRelation(rel, &score.StaffObject{}, geom.NewInvisibleShape(0, 0), 0)
	assert.Nil(t, shapes)
}
