package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/ako-backing-tracks/scoreengrave/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePage() *geom.Box {
	page := geom.NewBox(geom.BoxDocPage, geom.Rect{Size: geom.Size{W: 210, H: 297}})
	system := geom.NewBox(geom.BoxSystem, geom.Rect{Origin: geom.Point{X: 10, Y: 10}, Size: geom.Size{W: 190, H: 40}})
	note := geom.NewShape(geom.ShapeNotehead, geom.Rect{Origin: geom.Point{X: 20, Y: 15}, Size: geom.Size{W: 2, H: 2}})
	system.Attach(note)
	page.AddChildBox(system)
	return page
}

func TestBuildDocument_WalksBoxTree(t *testing.T) {
	doc := BuildDocument([]*geom.Box{samplePage()})

	require.Equal(t, 1, doc.PageCount)
	require.Len(t, doc.Pages, 1)
	require.Len(t, doc.Pages[0].Boxes, 1)
	assert.Equal(t, "system", doc.Pages[0].Boxes[0].Kind)
	require.Len(t, doc.Pages[0].Boxes[0].Shapes, 1)
	assert.Equal(t, "notehead", doc.Pages[0].Boxes[0].Shapes[0].Kind)
	assert.Equal(t, 20.0, doc.Pages[0].Boxes[0].Shapes[0].X)
}

func TestWrite_ProducesValidJSON(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []*geom.Box{samplePage()})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, float64(1), decoded["page_count"])
}

func TestMarshal_EmptyPagesProducesEmptyArray(t *testing.T) {
	data, err := Marshal(nil)
	require.NoError(t, err)

	var decoded Document
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 0, decoded.PageCount)
	assert.Empty(t, decoded.Pages)
}
