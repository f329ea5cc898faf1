package engrave

import (
	"github.com/ako-backing-tracks/scoreengrave/geom"
	"github.com/ako-backing-tracks/scoreengrave/score"
)

// TimeSignatureWidthTenths approximates a two-digit time signature's
// advance width.
const TimeSignatureWidthTenths = 16.0

// EngraveTimeSignature produces the time-signature shape, vertically
// centered on the staff.
func EngraveTimeSignature(meter *score.Meter, obj *score.StaffObject, x float64) *geom.Shape {
	y := meter.TenthsToLogical(score.PositionToTenths(4), obj.Instr, obj.Staff)
	w := meter.TenthsToLogical(TimeSignatureWidthTenths, obj.Instr, obj.Staff)
	return geom.NewShape(geom.ShapeTimeSignature, geom.Rect{Origin: geom.Point{X: x, Y: y}, Size: geom.Size{W: w}})
}
