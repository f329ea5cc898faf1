package geom

import "github.com/google/uuid"

// BoxID is a weak handle to a Box, used by Shape.Box so that shapes never
// hold a raw pointer back into the box tree (spec §9: cyclic references are
// realized as exclusive ownership one way plus weak back-references).
type BoxID uuid.UUID

// BoxKind tags a node in the DocPage ⊃ ScorePage ⊃ System ⊃ Slice ⊃
// SliceInstr containment hierarchy (spec §3).
type BoxKind int

const (
	BoxDocPage BoxKind = iota
	BoxScorePage
	BoxSystem
	BoxSlice
	BoxSliceInstr
)

// Box is a node in the containment hierarchy. A box exclusively owns its
// child boxes and its attached shapes (spec §3 Ownership).
type Box struct {
	ID       BoxID
	Kind     BoxKind
	Bounds   Rect
	Parent   *Box
	Children []*Box
	Shapes   []*Shape
}

// NewBox allocates an empty box of the given kind at origin.
func NewBox(kind BoxKind, bounds Rect) *Box {
	return &Box{ID: BoxID(uuid.New()), Kind: kind, Bounds: bounds}
}

// AddChildBox attaches child as an owned descendant of b.
func (b *Box) AddChildBox(child *Box) {
	child.Parent = b
	b.Children = append(b.Children, child)
}

// Attach binds shape to b, setting shape.Box and transferring ownership
// from ShapesStorage to the box (spec §5). Shapes may only be attached
// after the owning column/system is committed.
func (b *Box) Attach(shape *Shape) {
	shape.Box = b.ID
	b.Shapes = append(b.Shapes, shape)
}

// MoveTo repositions b's origin to (x, y), translating every owned shape
// and child box by the delta (spec §3: "moving a box translates all
// descendants").
func (b *Box) MoveTo(x, y float64) {
	dx := x - b.Bounds.Origin.X
	dy := y - b.Bounds.Origin.Y
	b.MoveBy(dx, dy)
}

// MoveBy shifts b and everything it owns by (dx, dy).
func (b *Box) MoveBy(dx, dy float64) {
	b.Bounds = b.Bounds.Translate(dx, dy)
	for _, s := range b.Shapes {
		s.Translate(dx, dy)
	}
	for _, c := range b.Children {
		c.MoveBy(dx, dy)
	}
}

// Walk visits b and every descendant box in pre-order.
func (b *Box) Walk(fn func(*Box)) {
	fn(b)
	for _, c := range b.Children {
		c.Walk(fn)
	}
}

// AllShapes returns every shape owned transitively by b, in box pre-order.
func (b *Box) AllShapes() []*Shape {
	var out []*Shape
	b.Walk(func(box *Box) {
		out = append(out, box.Shapes...)
	})
	return out
}
