package engrave

import (
	"testing"

	"github.com/ako-backing-tracks/scoreengrave/geom"
	"github.com/ako-backing-tracks/scoreengrave/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTupletEngraver_SpansFirstToLast(t *testing.T) {
	e := NewTupletEngraver(3)
	first := geom.NewShape(geom.ShapeNotehead, geom.Rect{Origin: geom.Point{X: 10, Y: 5}})
	last := geom.NewShape(geom.ShapeNotehead, geom.Rect{Origin: geom.Point{X: 70, Y: 5}})

	e.Start(&score.StaffObject{}, first)
	shapes := e.Finish(&score.StaffObject{}, last, 0)

	require.Len(t, shapes, 1)
	assert.Equal(t, 60.0, shapes[0].Bounds.Size.W)
	assert.Equal(t, 3, shapes[0].Payload)
}

func TestLyricEngraver_PlacesBelowNotehead(t *testing.T) {
	e := NewLyricEngraver("la")
	first := geom.NewShape(geom.ShapeNotehead, geom.Rect{Origin: geom.Point{X: 10, Y: 5}, Size: geom.Size{H: 10}})

	e.Start(&score.StaffObject{}, first)
	shapes := e.Finish(&score.StaffObject{}, first, 0)

	require.Len(t, shapes, 1)
	assert.Equal(t, 15.0, shapes[0].Bounds.Origin.Y)
	assert.Equal(t, "la", shapes[0].Payload)
}
