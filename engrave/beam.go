package engrave

import (
	"log/slog"

	"github.com/ako-backing-tracks/scoreengrave/geom"
	"github.com/ako-backing-tracks/scoreengrave/logging"
	"github.com/ako-backing-tracks/scoreengrave/score"
)

type beamMember struct {
	Obj     *score.StaffObject
	Shape   *geom.Shape
	Payload *NotePayload // nil when Shape isn't a note (treated as a rest for positioning, spec §4.4 failure mode)
}

// BeamEngraver is the hardest engraver (spec §4.4): it decides stem
// direction for a beam group, fits every member's stem length to a
// straight line, repositions interior rests, and walks up to six
// beaming levels to emit beam segments. It implements RelationEngraver,
// accumulating members across Start/Continue and running the full
// pipeline once Finish sees the last member.
type BeamEngraver struct {
	members []beamMember
	log     *slog.Logger
}

// NewBeamEngraver returns a fresh beam engraver for one beam group.
func NewBeamEngraver() *BeamEngraver {
	return &BeamEngraver{log: logging.For("beam")}
}

func (b *BeamEngraver) Start(firstObj *score.StaffObject, firstShape *geom.Shape) {
	b.add(firstObj, firstShape)
}

func (b *BeamEngraver) Continue(obj *score.StaffObject, shape *geom.Shape) {
	b.add(obj, shape)
}

func (b *BeamEngraver) add(obj *score.StaffObject, shape *geom.Shape) {
	payload, _ := shape.Payload.(*NotePayload)
	b.members = append(b.members, beamMember{Obj: obj, Shape: shape, Payload: payload})
}

// Finish appends the last member and runs the full beam pipeline,
// returning the beam shape. Empty groups are ignored (spec §4.4 failure
// modes).
func (b *BeamEngraver) Finish(lastObj *score.StaffObject, lastShape *geom.Shape, prologWidth float64) []*geom.Shape {
	b.add(lastObj, lastShape)
	if len(b.members) == 0 {
		return nil
	}

	stemsDown, mixed := b.decideStemDirections()
	below := stemsDown
	b.applyStemDirections(stemsDown, mixed)
	b.fitStemLengths()
	b.repositionRests()
	segments := b.computeSegments(below)

	beamShape := geom.NewShape(geom.ShapeBeam, b.boundsFor(segments))
	beamShape.Payload = &BeamPayload{Segments: segments, StemsDown: stemsDown, Mixed: mixed}

	for _, m := range b.members {
		if m.Payload != nil {
			m.Payload.BeamID = beamShape.ID
		}
	}

	return []*geom.Shape{beamShape}
}

// decideStemDirections implements §4.4 step 1. It does not implement
// tied-back stem-direction inheritance (see engrave/beam_test.go and
// DESIGN.md for that decision).
func (b *BeamEngraver) decideStemDirections() (stemsDown, mixed bool) {
	forcedSeen := false
	var forcedDir score.StemDirection

	sum, n := 0, 0
	for _, m := range b.members {
		if m.Payload == nil {
			continue
		}
		if m.Payload.StemForced {
			if !forcedSeen {
				forcedDir = m.Payload.StemDir
				forcedSeen = true
			} else if m.Payload.StemDir != forcedDir {
				mixed = true
			}
		}
		sum += m.Payload.PositionOnStaff
		n++
	}

	if forcedSeen {
		return forcedDir == score.StemDown, mixed
	}
	if n == 0 {
		return false, false
	}
	avg := float64(sum) / float64(n)
	return avg > 6, false
}

// applyStemDirections implements spec §4.4 steps 2-3.
func (b *BeamEngraver) applyStemDirections(stemsDown, mixed bool) {
	dir := score.StemUp
	if stemsDown {
		dir = score.StemDown
	}
	for _, m := range b.members {
		if m.Payload == nil || m.Payload.StemForced {
			continue
		}
		if m.Payload.StemDir == dir {
			continue
		}
		m.Payload.StemDir = dir
		if dir == score.StemDown {
			m.Payload.FlagY = m.Payload.NoteY + m.Payload.StemHeight
		} else {
			m.Payload.FlagY = m.Payload.NoteY - m.Payload.StemHeight
		}
	}
}

// fitStemLengths implements spec §4.4 step 4: fit a line through the
// first and last note's stem-end, re-project every intermediate one onto
// it, then clamp the shortest resulting stem into [⅔·std_len, std_len].
func (b *BeamEngraver) fitStemLengths() {
	first, last := b.firstNote(), b.lastNote()
	if first == nil || last == nil || first == last {
		return
	}

	x0, y0 := first.Payload.StemX, first.Payload.FlagY
	x1, y1 := last.Payload.StemX, last.Payload.FlagY
	dx := x1 - x0
	var slope float64
	if dx != 0 {
		slope = (y1 - y0) / dx
	}

	lengths := make([]float64, len(b.members))
	minLen := InfinitePenalty
	for i, m := range b.members {
		if m.Payload == nil {
			lengths[i] = -1
			continue
		}
		newFlagY := y0 + slope*(m.Payload.StemX-x0)
		m.Payload.FlagY = newFlagY
		length := absF(m.Payload.NoteY-newFlagY) - m.Payload.ChordExtra
		lengths[i] = length
		if length < minLen {
			minLen = length
		}
	}
	if minLen == InfinitePenalty {
		return
	}

	stdLen := (first.Payload.StemHeight + last.Payload.StemHeight) / 2
	dyMin := (2.0 / 3.0) * stdLen

	var delta float64
	switch {
	case minLen < dyMin:
		delta = dyMin - minLen
	case minLen > stdLen:
		delta = stdLen - minLen // negative: shorten
	default:
		return
	}

	for _, m := range b.members {
		if m.Payload == nil {
			continue
		}
		if m.Payload.StemDir == score.StemDown {
			m.Payload.FlagY += delta
		} else {
			m.Payload.FlagY -= delta
		}
		adjustStemShape(m.Shape, m.Payload)
	}
}

func (b *BeamEngraver) firstNote() *beamMember {
	for i := range b.members {
		if b.members[i].Payload != nil {
			return &b.members[i]
		}
	}
	return nil
}

func (b *BeamEngraver) lastNote() *beamMember {
	for i := len(b.members) - 1; i >= 0; i-- {
		if b.members[i].Payload != nil {
			return &b.members[i]
		}
	}
	return nil
}

// adjustStemShape commits a note's recomputed flag position to its stem
// child shape's geometry.
func adjustStemShape(noteShape *geom.Shape, payload *NotePayload) {
	for _, child := range noteShape.Children {
		if child.Kind != geom.ShapeStem {
			continue
		}
		top := minF(payload.NoteY, payload.FlagY)
		child.Bounds.Origin.Y = top
		child.Bounds.Size.H = absF(payload.FlagY - payload.NoteY)
	}
}

// repositionRests implements spec §4.4 step 5: shift each rest member to
// the average notehead position-on-staff, converted to tenths and
// offset from the canonical rest position.
func (b *BeamEngraver) repositionRests() {
	sum, n := 0, 0
	for _, m := range b.members {
		if m.Payload != nil {
			sum += m.Payload.PositionOnStaff
			n++
		}
	}
	if n == 0 {
		return
	}
	avgPos := float64(sum) / float64(n)
	targetTenths := 5 * avgPos
	shiftTenths := CanonicalRestPositionTenths - targetTenths

	for _, m := range b.members {
		if m.Payload != nil {
			continue
		}
		_, ok := m.Shape.Payload.(*RestPayload)
		if !ok {
			continue
		}
		m.Shape.Translate(0, shiftTenths*DefaultRestScale)
	}
}

// DefaultRestScale approximates tenths-to-logical for rest repositioning
// when no meter is threaded into the beam engraver (it operates purely
// on already-placed shapes). It matches score.DefaultLogicalUnitsPerTenth.
const DefaultRestScale = 0.1

// computeSegments implements spec §4.4 step 6: walk each of up to six
// beaming levels, tracking a pending segment/hook per level.
func (b *BeamEngraver) computeSegments(below bool) []BeamSegment {
	var segments []BeamSegment

	for level := 0; level < score.MaxBeamLevels; level++ {
		levelOffset := float64(level) * signedSpacing(below)

		var segStartX, segStartY float64
		haveStart := false
		var pendingHookX, pendingHookY float64
		havePendingHook := false

		for i, m := range b.members {
			bt := score.BeamNone
			if m.Obj != nil {
				bt = m.Obj.GetBeamType(level)
			}
			x := m.Shape.Bounds.Origin.X
			var y float64
			if m.Payload != nil {
				y = m.Payload.FlagY + levelOffset
			} else if i > 0 {
				y = b.members[i-1].Shape.Bounds.Origin.Y + levelOffset
			}

			switch bt {
			case score.BeamBegin:
				segStartX, segStartY = x, y
				haveStart = true
			case score.BeamEnd:
				if haveStart {
					segments = append(segments, BeamSegment{Level: level, X0: segStartX, Y0: segStartY, X1: x, Y1: y})
					haveStart = false
				}
			case score.BeamForwardHook:
				pendingHookX, pendingHookY = x, y
				havePendingHook = true
			case score.BeamBackwardHook:
				segments = append(segments, BeamSegment{Level: level, X0: x - BeamHookLength, Y0: y, X1: x, Y1: y})
			}

			if havePendingHook && bt != score.BeamForwardHook {
				segments = append(segments, BeamSegment{Level: level, X0: pendingHookX, Y0: pendingHookY, X1: pendingHookX + BeamHookLength, Y1: pendingHookY})
				havePendingHook = false
			}
		}
	}

	return segments
}

func signedSpacing(below bool) float64 {
	if below {
		return -(BeamSpacing + BeamThickness)
	}
	return BeamSpacing + BeamThickness
}

func (b *BeamEngraver) boundsFor(segments []BeamSegment) geom.Rect {
	if len(segments) == 0 {
		return geom.Rect{}
	}
	minX, minY := segments[0].X0, minF(segments[0].Y0, segments[0].Y1)
	maxX, maxY := segments[0].X0, maxF(segments[0].Y0, segments[0].Y1)
	for _, s := range segments {
		minX = minF(minX, minF(s.X0, s.X1))
		maxX = maxF(maxX, maxF(s.X0, s.X1))
		minY = minF(minY, minF(s.Y0, s.Y1))
		maxY = maxF(maxY, maxF(s.Y0, s.Y1))
	}
	return geom.Rect{Origin: geom.Point{X: minX, Y: minY}, Size: geom.Size{W: maxX - minX, H: maxY - minY}}
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
