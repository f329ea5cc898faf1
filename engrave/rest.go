package engrave

import (
	"github.com/ako-backing-tracks/scoreengrave/geom"
	"github.com/ako-backing-tracks/scoreengrave/score"
)

// RestDurationHeight returns a rest glyph's approximate height in tenths,
// scaled loosely by duration: the shorter the rest, the taller its glyph.
func RestDurationHeight(duration float64) float64 {
	switch {
	case duration >= 4:
		return 10
	case duration >= 1:
		return 14
	default:
		return 20
	}
}

// EngraveRest produces a rest shape at x, vertically centered on obj.Line
// (the canonical rest position unless later repositioned by a beam
// engraver — spec §4.4 step 5).
func EngraveRest(meter *score.Meter, obj *score.StaffObject, x float64) *geom.Shape {
	y := meter.TenthsToLogical(score.PositionToTenths(float64(obj.Line)), obj.Instr, obj.Staff)
	h := meter.TenthsToLogical(RestDurationHeight(obj.Duration), obj.Instr, obj.Staff)

	shape := geom.NewShape(geom.ShapeRest, geom.Rect{Origin: geom.Point{X: x, Y: y - h/2}, Size: geom.Size{H: h, W: h / 2}})
	shape.Payload = &RestPayload{Object: obj, PositionOnStaff: obj.Line}
	return shape
}
