package engrave

import (
	"github.com/ako-backing-tracks/scoreengrave/geom"
	"github.com/ako-backing-tracks/scoreengrave/score"
)

// ClefGlyphWidthTenths approximates a clef glyph's advance width; a
// faithful reimplementation would measure the actual glyph via TextMeter
// (spec §6), left as an approximation the same way prolog width is
// (spec §9 open question).
const ClefGlyphWidthTenths = 14.0

// EngraveClef produces the clef shape, anchored on its reference line
// (score.ClefKind.Info().Line).
func EngraveClef(meter *score.Meter, obj *score.StaffObject, x float64) *geom.Shape {
	line := obj.Clef.Info().Line
	y := meter.TenthsToLogical(score.PositionToTenths(float64(2*(line-1))), obj.Instr, obj.Staff)
	w := meter.TenthsToLogical(ClefGlyphWidthTenths, obj.Instr, obj.Staff)

	shape := geom.NewShape(geom.ShapeClef, geom.Rect{Origin: geom.Point{X: x, Y: y}, Size: geom.Size{W: w}})
	shape.Payload = obj.Clef
	return shape
}
