package engrave

import (
	"github.com/ako-backing-tracks/scoreengrave/geom"
	"github.com/ako-backing-tracks/scoreengrave/score"
)

// AccidentalGlyphWidthTenths approximates one sharp/flat glyph's width,
// including the small gap to the next accidental.
const AccidentalGlyphWidthTenths = 8.0

// EngraveKeySignature produces one composite shape holding a child
// accidental shape per sharp/flat in obj.Key, positioned at the
// standard position-on-staff for each (spec §3 supplemented concrete
// detail).
func EngraveKeySignature(meter *score.Meter, obj *score.StaffObject, x float64) *geom.Shape {
	positions := obj.Key.Positions()
	root := geom.NewShape(geom.ShapeComposite, geom.Rect{Origin: geom.Point{X: x}})
	root.Payload = obj.Key

	cursor := x
	for _, pos := range positions {
		y := meter.TenthsToLogical(score.PositionToTenths(float64(pos)), obj.Instr, obj.Staff)
		w := meter.TenthsToLogical(AccidentalGlyphWidthTenths, obj.Instr, obj.Staff)
		acc := geom.NewShape(geom.ShapeKeySignature, geom.Rect{Origin: geom.Point{X: cursor, Y: y}, Size: geom.Size{W: w}})
		root.AddChild(acc)
		cursor += w
	}
	root.Bounds.Size.W = cursor - x

	return root
}
