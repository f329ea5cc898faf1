package engrave

import (
	"github.com/ako-backing-tracks/scoreengrave/geom"
	"github.com/ako-backing-tracks/scoreengrave/score"
)

// RelationEngraver is the three-phase contract of spec §4.3: allocate on
// Start, feed intermediate members via Continue, and compute the final
// shape(s) on Finish once every member's position is settled.
type RelationEngraver interface {
	Start(firstObj *score.StaffObject, firstShape *geom.Shape)
	Continue(obj *score.StaffObject, shape *geom.Shape)
	Finish(lastObj *score.StaffObject, lastShape *geom.Shape, prologWidth float64) []*geom.Shape
}

// arcEngraver is the shared implementation behind ties and slurs: a
// single curved (approximated as straight, since there's no bezier
// primitive in the Drawer contract beyond lines) shape spanning first to
// last notehead.
type arcEngraver struct {
	kind            geom.ShapeKind
	firstX, firstY  float64
	lastX, lastY    float64
	below           bool
}

func newArcEngraver(kind geom.ShapeKind) *arcEngraver { return &arcEngraver{kind: kind} }

func (e *arcEngraver) Start(firstObj *score.StaffObject, firstShape *geom.Shape) {
	e.firstX, e.firstY = firstShape.Bounds.Origin.X, firstShape.Bounds.Origin.Y
	if payload, ok := firstShape.Payload.(*NotePayload); ok {
		e.below = payload.StemDir == score.StemUp
	}
}

func (e *arcEngraver) Continue(obj *score.StaffObject, shape *geom.Shape) {}

func (e *arcEngraver) Finish(lastObj *score.StaffObject, lastShape *geom.Shape, prologWidth float64) []*geom.Shape {
	e.lastX, e.lastY = lastShape.Bounds.Origin.X, lastShape.Bounds.Origin.Y

	bow := 6.0
	if e.below {
		bow = -bow
	}
	midY := (e.firstY+e.lastY)/2 + bow

	shape := geom.NewShape(e.kind, geom.Rect{
		Origin: geom.Point{X: e.firstX, Y: minF(e.firstY, midY)},
		Size:   geom.Size{W: e.lastX - e.firstX, H: absF(e.lastY-e.firstY) + absF(bow)},
	})
	return []*geom.Shape{shape}
}

// NewTieEngraver returns a relation engraver for tie relations.
func NewTieEngraver() RelationEngraver { return newArcEngraver(geom.ShapeTie) }

// NewSlurEngraver returns a relation engraver for slur relations.
func NewSlurEngraver() RelationEngraver { return newArcEngraver(geom.ShapeSlur) }

// TupletEngraver draws a bracket (with an optional number, carried as
// Payload) spanning its members.
type TupletEngraver struct {
	Number  int
	firstX  float64
	lastX   float64
	y       float64
}

// NewTupletEngraver returns a relation engraver for a tuplet showing
// number above its bracket.
func NewTupletEngraver(number int) *TupletEngraver { return &TupletEngraver{Number: number} }

func (e *TupletEngraver) Start(firstObj *score.StaffObject, firstShape *geom.Shape) {
	e.firstX = firstShape.Bounds.Origin.X
	e.y = firstShape.Bounds.Origin.Y
}

func (e *TupletEngraver) Continue(obj *score.StaffObject, shape *geom.Shape) {}

func (e *TupletEngraver) Finish(lastObj *score.StaffObject, lastShape *geom.Shape, prologWidth float64) []*geom.Shape {
	e.lastX = lastShape.Bounds.Origin.X
	shape := geom.NewShape(geom.ShapeTuplet, geom.Rect{
		Origin: geom.Point{X: e.firstX, Y: e.y},
		Size:   geom.Size{W: e.lastX - e.firstX},
	})
	shape.Payload = e.Number
	return []*geom.Shape{shape}
}

// LyricEngraver places syllable text under a note; it is keyed by a
// (instr, number, voice) tag rather than relation identity, since no
// single relation object is stable across its phases for lyrics
// (spec §4.3).
type LyricEngraver struct {
	Text string
	x, y float64
}

// NewLyricEngraver returns a relation engraver for one lyric line's
// syllable attachment under text.
func NewLyricEngraver(text string) *LyricEngraver { return &LyricEngraver{Text: text} }

func (e *LyricEngraver) Start(firstObj *score.StaffObject, firstShape *geom.Shape) {
	e.x = firstShape.Bounds.Origin.X
	e.y = firstShape.Bounds.Bottom()
}

func (e *LyricEngraver) Continue(obj *score.StaffObject, shape *geom.Shape) {}

func (e *LyricEngraver) Finish(lastObj *score.StaffObject, lastShape *geom.Shape, prologWidth float64) []*geom.Shape {
	shape := geom.NewShape(geom.ShapeLyric, geom.Rect{Origin: geom.Point{X: e.x, Y: e.y}})
	shape.Payload = e.Text
	return []*geom.Shape{shape}
}

// LyricKey identifies a lyric relation's engraver when no single object
// identity is stable across phases (spec §4.3).
type LyricKey struct {
	Instr, Number, Voice int
}
