package engrave

import (
	"log/slog"

	"github.com/ako-backing-tracks/scoreengrave/geom"
	"github.com/ako-backing-tracks/scoreengrave/logging"
	"github.com/ako-backing-tracks/scoreengrave/score"
)

// ChordAccumulator collects every member shape of a chord as notes are
// created, so notehead-reversal/accidental-shift adjustments can see the
// whole chord immediately (spec §4.3's chord-membership exception).
type ChordAccumulator struct {
	Members []*geom.Shape
}

// Creator is the Shapes Creator of spec §4.3: a factory dispatching on
// object kind, plus the three-phase relation-engraver protocol for beam,
// tie, slur, tuplet, and lyric relations.
type Creator struct {
	Meter   *score.Meter
	Storage *geom.ShapesStorage

	chords map[*score.StaffObject]*ChordAccumulator
	log    *slog.Logger
}

// NewCreator builds a shapes creator over meter, holding pending shapes
// and in-progress relation engravers in storage.
func NewCreator(meter *score.Meter, storage *geom.ShapesStorage) *Creator {
	return &Creator{
		Meter:   meter,
		Storage: storage,
		chords:  map[*score.StaffObject]*ChordAccumulator{},
		log:     logging.For("creator"),
	}
}

// CreateShape dispatches obj to its engraver and returns the produced
// shape, holding it in storage until the owning column/system commits it
// (spec §5: "every shape is owned by exactly one box after attachment,
// and by the storage before attachment").
func (c *Creator) CreateShape(obj *score.StaffObject, x float64) *geom.Shape {
	if obj.Invisible {
		shape := geom.NewInvisibleShape(c.Meter.TenthsToLogical(obj.Width, obj.Instr, obj.Staff), 0)
		c.Storage.Hold(shape)
		return shape
	}

	var shape *geom.Shape
	switch obj.Kind {
	case score.ObjBarline:
		shape = EngraveBarline(c.Meter, obj, x)
	case score.ObjClef:
		shape = EngraveClef(c.Meter, obj, x)
	case score.ObjKeySignature:
		shape = EngraveKeySignature(c.Meter, obj, x)
	case score.ObjTimeSignature:
		shape = EngraveTimeSignature(c.Meter, obj, x)
	case score.ObjNote:
		shape = EngraveNote(c.Meter, obj, x)
	case score.ObjRest:
		shape = EngraveRest(c.Meter, obj, x)
	case score.ObjSpacer, score.ObjMetronome:
		shape = geom.NewInvisibleShape(c.Meter.TenthsToLogical(obj.Width, obj.Instr, obj.Staff), 0)
	default:
		// Dynamics/articulation/fermata/ornament/score-text/score-line/
		// technical: a generic auxiliary marker, positioned but otherwise
		// undecorated — these kinds don't carry engraving detail of their
		// own in this model.
		shape = geom.NewShape(shapeKindFor(obj.Kind), geom.Rect{Origin: geom.Point{X: x}})
	}

	c.Storage.Hold(shape)

	if obj.IsNote() && obj.ChordMember && obj.ChordRoot != nil {
		acc, ok := c.chords[obj.ChordRoot]
		if !ok {
			acc = &ChordAccumulator{}
			c.chords[obj.ChordRoot] = acc
		}
		c.adjustChordMember(acc, shape)
		acc.Members = append(acc.Members, shape)
	}

	return shape
}

// adjustChordMember implements notehead-side reversal for seconds: a
// member whose position-on-staff is exactly one step from the previous
// member's is shifted to the opposite side to avoid overlapping
// noteheads.
func (c *Creator) adjustChordMember(acc *ChordAccumulator, shape *geom.Shape) {
	if len(acc.Members) == 0 {
		return
	}
	prev := acc.Members[len(acc.Members)-1]
	prevPayload, ok := prev.Payload.(*NotePayload)
	if !ok {
		return
	}
	payload, ok := shape.Payload.(*NotePayload)
	if !ok {
		return
	}
	if abs(payload.PositionOnStaff-prevPayload.PositionOnStaff) == 1 {
		shape.Translate(NoteheadWidthTenths*DefaultRestScale, 0)
	}
}

// NoteheadWidthTenths approximates a notehead's advance width, used to
// offset a reversed chord member clear of its neighbor.
const NoteheadWidthTenths = 8.0

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

func shapeKindFor(kind score.ObjectKind) geom.ShapeKind {
	switch kind {
	case score.ObjDynamics:
		return geom.ShapeDynamics
	case score.ObjArticulation:
		return geom.ShapeArticulation
	case score.ObjFermata:
		return geom.ShapeFermata
	case score.ObjOrnament:
		return geom.ShapeOrnament
	case score.ObjScoreText:
		return geom.ShapeScoreText
	case score.ObjScoreLine:
		return geom.ShapeScoreLine
	case score.ObjTechnical:
		return geom.ShapeTechnical
	default:
		return geom.ShapeComposite
	}
}

// StartRelation begins the three-phase protocol (spec §4.3 step 1) for a
// beam/tie/slur/tuplet relation, keyed by the relation's own identity.
func (c *Creator) StartRelation(rel *score.Relation, engraver RelationEngraver, firstObj *score.StaffObject, firstShape *geom.Shape) {
	c.StartRelationKeyed(rel, engraver, firstObj, firstShape)
}

// ContinueRelation feeds an intermediate member (spec §4.3 step 2).
func (c *Creator) ContinueRelation(rel *score.Relation, obj *score.StaffObject, shape *geom.Shape) {
	c.ContinueRelationKeyed(rel, obj, shape)
}

// FinishRelation completes the relation and returns its produced shapes,
// releasing the engraver (spec §4.3 step 3, §7 "finish called without
// start" contract failure).
func (c *Creator) FinishRelation(rel *score.Relation, lastObj *score.StaffObject, lastShape *geom.Shape, prologWidth float64) []*geom.Shape {
	return c.FinishRelationKeyed(rel, lastObj, lastShape, prologWidth)
}

// StartRelationKeyed is StartRelation generalized to an arbitrary
// comparable key, for relations (lyrics) whose identity isn't a stable
// *score.Relation pointer across phases; see LyricKey.
func (c *Creator) StartRelationKeyed(key interface{}, engraver RelationEngraver, firstObj *score.StaffObject, firstShape *geom.Shape) {
	c.Storage.StartEngraver(key, engraver)
	engraver.Start(firstObj, firstShape)
}

// ContinueRelationKeyed is ContinueRelation generalized to an arbitrary key.
func (c *Creator) ContinueRelationKeyed(key interface{}, obj *score.StaffObject, shape *geom.Shape) {
	eng, ok := c.Storage.Engraver(key)
	if !ok {
		c.log.Warn("continue called without start", "key", key)
		return
	}
	eng.(RelationEngraver).Continue(obj, shape)
}

// FinishRelationKeyed is FinishRelation generalized to an arbitrary key.
func (c *Creator) FinishRelationKeyed(key interface{}, lastObj *score.StaffObject, lastShape *geom.Shape, prologWidth float64) []*geom.Shape {
	eng, ok := c.Storage.Engraver(key)
	if !ok {
		c.log.Warn("finish called without start", "key", key)
		return nil
	}
	defer c.Storage.FinishEngraver(key)
	return eng.(RelationEngraver).Finish(lastObj, lastShape, prologWidth)
}

// StartLyric, ContinueLyric, and FinishLyric drive a lyric relation's
// three-phase protocol keyed by LyricKey rather than rel itself, since a
// lyric's member objects don't share one stable *score.Relation across
// phases the way a beam, tie, slur, or tuplet's do.
func (c *Creator) StartLyric(rel *score.Relation, engraver *LyricEngraver, firstObj *score.StaffObject, firstShape *geom.Shape) {
	c.StartRelationKeyed(lyricKeyFor(rel), engraver, firstObj, firstShape)
}

func (c *Creator) ContinueLyric(rel *score.Relation, obj *score.StaffObject, shape *geom.Shape) {
	c.ContinueRelationKeyed(lyricKeyFor(rel), obj, shape)
}

func (c *Creator) FinishLyric(rel *score.Relation, lastObj *score.StaffObject, lastShape *geom.Shape, prologWidth float64) []*geom.Shape {
	return c.FinishRelationKeyed(lyricKeyFor(rel), lastObj, lastShape, prologWidth)
}

func lyricKeyFor(rel *score.Relation) LyricKey {
	return LyricKey{Instr: rel.Instr, Number: rel.Number, Voice: rel.Voice}
}
