package engrave

import (
	"github.com/ako-backing-tracks/scoreengrave/geom"
	"github.com/ako-backing-tracks/scoreengrave/score"
)

// EngraveBarline produces a thin full-staff-height vertical line at x.
func EngraveBarline(meter *score.Meter, obj *score.StaffObject, x float64) *geom.Shape {
	height := meter.TenthsToLogical(meter.StaffHeightTenths(obj.Instr, obj.Staff), obj.Instr, obj.Staff)
	return geom.NewShape(geom.ShapeBarline, geom.Rect{Origin: geom.Point{X: x, Y: 0}, Size: geom.Size{W: meter.TenthsToLogical(1.5, obj.Instr, obj.Staff), H: height}})
}
