// Package geom holds the geometric model produced by the engravers: shapes
// positioned inside a box hierarchy, ready for a rasterizer to draw.
package geom

import "github.com/google/uuid"

// ZLayer orders shapes for painting within a box.
type ZLayer int

const (
	ZBackground ZLayer = iota
	ZStaffLines
	ZNotes
	ZAuxObjs
	ZTop
)

// ShapeKind tags the payload a Shape carries. A full notation engine draws
// 40+ concrete shape variants; this collapses them to the kinds the
// engravers in this package actually produce.
type ShapeKind int

const (
	ShapeInvisible ShapeKind = iota
	ShapeBarline
	ShapeClef
	ShapeKeySignature
	ShapeTimeSignature
	ShapeNotehead
	ShapeStem
	ShapeFlag
	ShapeRest
	ShapeAccidental
	ShapeDot
	ShapeLedgerLine
	ShapeBeam
	ShapeTie
	ShapeSlur
	ShapeTuplet
	ShapeLyric
	ShapeDynamics
	ShapeArticulation
	ShapeFermata
	ShapeOrnament
	ShapeScoreText
	ShapeScoreLine
	ShapeTechnical
	ShapeStaffLine
	ShapeErrorMessage
	ShapeComposite
)

// Color is a simple RGBA color; the drawer backend interprets it.
type Color struct {
	R, G, B, A uint8
}

var ColorBlack = Color{0, 0, 0, 255}

// Point and Size are logical-unit coordinates.
type Point struct{ X, Y float64 }
type Size struct{ W, H float64 }

// Rect is an axis-aligned bounding rectangle in logical units.
type Rect struct {
	Origin Point
	Size   Size
}

func (r Rect) Right() float64  { return r.Origin.X + r.Size.W }
func (r Rect) Bottom() float64 { return r.Origin.Y + r.Size.H }

// Translate returns r shifted by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.Origin.X += dx
	r.Origin.Y += dy
	return r
}

// ShapeID is a weak, non-owning handle into ShapesStorage (spec §9: "index
// into a central storage… cleared on destruction" in place of raw cyclic
// pointers).
type ShapeID uuid.UUID

func newShapeID() ShapeID { return ShapeID(uuid.New()) }

// Shape is the geometric entity produced for a music object. Per spec §3:
// it has a bounding rect, a color, a z-layer, may hold owned children, and
// is attached to exactly one box.
type Shape struct {
	ID       ShapeID
	Kind     ShapeKind
	Bounds   Rect
	Color    Color
	Layer    ZLayer
	Children []*Shape // owned

	// Box is the box this shape is attached to. The zero BoxID while the shape is
	// still held by ShapesStorage, prior to attachment (spec §5: "every
	// shape is owned by exactly one box after attachment, and by the
	// storage before attachment").
	Box BoxID

	// Payload carries kind-specific data (e.g. *BeamPayload, *NotePayload).
	// Engravers type-assert on Kind before reading it.
	Payload interface{}
}

// NewShape allocates a shape with a fresh ID. It is not yet attached to any
// box; the caller (a Shapes Creator or engraver) must attach it via
// ShapesStorage before it is considered owned.
func NewShape(kind ShapeKind, bounds Rect) *Shape {
	return &Shape{ID: newShapeID(), Kind: kind, Bounds: bounds, Color: ColorBlack, Layer: layerFor(kind)}
}

// NewInvisibleShape returns a zero-painting placeholder of the given width,
// used for spacers and go-forward rests, or to degrade a failed engraver
// contract (spec §7) to a visible-but-empty result.
func NewInvisibleShape(width, height float64) *Shape {
	s := NewShape(ShapeInvisible, Rect{Size: Size{W: width, H: height}})
	s.Color = Color{}
	return s
}

func layerFor(kind ShapeKind) ZLayer {
	switch kind {
	case ShapeStaffLine:
		return ZStaffLines
	case ShapeNotehead, ShapeStem, ShapeFlag, ShapeRest, ShapeBeam, ShapeAccidental, ShapeDot, ShapeLedgerLine:
		return ZNotes
	case ShapeTie, ShapeSlur, ShapeTuplet, ShapeLyric, ShapeDynamics, ShapeArticulation, ShapeFermata, ShapeOrnament, ShapeTechnical:
		return ZAuxObjs
	case ShapeErrorMessage:
		return ZTop
	default:
		return ZBackground
	}
}

// AddChild attaches a child shape, taking ownership of it (spec §3:
// "may hold child shapes (composites), then owns them").
func (s *Shape) AddChild(child *Shape) {
	s.Children = append(s.Children, child)
}

// Translate moves the shape and all of its owned children by (dx, dy).
// Called when a box is moved (spec §3: "moving a box translates all
// descendants").
func (s *Shape) Translate(dx, dy float64) {
	s.Bounds = s.Bounds.Translate(dx, dy)
	for _, c := range s.Children {
		c.Translate(dx, dy)
	}
}
