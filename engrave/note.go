package engrave

import (
	"github.com/ako-backing-tracks/scoreengrave/geom"
	"github.com/ako-backing-tracks/scoreengrave/score"
)

// EngraveNote produces the notehead+stem composite shape for obj at x
// (logical units). The stem direction defaults to the single-note rule
// (position > 6 ⇒ down) unless obj forces one; beam membership may later
// override both direction and length via the beam engraver.
func EngraveNote(meter *score.Meter, obj *score.StaffObject, x float64) *geom.Shape {
	noteY := meter.TenthsToLogical(score.PositionToTenths(float64(obj.Line)), obj.Instr, obj.Staff)

	dir := obj.StemDir
	forced := dir != score.StemDefault
	if !forced {
		if obj.Line > 6 {
			dir = score.StemDown
		} else {
			dir = score.StemUp
		}
	}

	stemHeight := meter.TenthsToLogical(StdStemLength, obj.Instr, obj.Staff)
	flagY := noteY - stemHeight
	if dir == score.StemDown {
		flagY = noteY + stemHeight
	}

	notehead := geom.NewShape(geom.ShapeNotehead, geom.Rect{Origin: geom.Point{X: x, Y: noteY}})
	notehead.Payload = &NotePayload{
		Object:          obj,
		PositionOnStaff: obj.Line,
		StemDir:         dir,
		StemForced:      forced,
		StemX:           x,
		NoteY:           noteY,
		FlagY:           flagY,
		StemHeight:      stemHeight,
		IsChordMember:   obj.ChordMember,
	}

	stem := geom.NewShape(geom.ShapeStem, geom.Rect{Origin: geom.Point{X: x, Y: minF(noteY, flagY)}, Size: geom.Size{H: absF(flagY - noteY)}})
	notehead.AddChild(stem)

	return notehead
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func absF(a float64) float64 {
	if a < 0 {
		return -a
	}
	return a
}
