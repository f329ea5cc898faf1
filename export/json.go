// Package export serializes a committed geom.Box tree to JSON, the
// engine's one non-interactive rendering target: a rasterizer or any other
// downstream tool consumes this instead of the Go types directly.
package export

import (
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/ako-backing-tracks/scoreengrave/geom"
)

var api = jsoniter.ConfigCompatibleWithStandardLibrary

// Document is the top-level JSON document written by Write: a small
// header followed by the committed page array.
type Document struct {
	FormatVersion int    `json:"format_version"`
	PageCount     int    `json:"page_count"`
	Pages         []Page `json:"pages"`
}

// Page is one geom.Box of kind BoxDocPage, flattened to its JSON shape.
type Page struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Boxes  []Box   `json:"boxes"`
}

// Box mirrors geom.Box: bounds plus the shapes it owns and its child
// boxes, recursively.
type Box struct {
	Kind     string  `json:"kind"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Shapes   []Shape `json:"shapes,omitempty"`
	Children []Box   `json:"children,omitempty"`
}

// Shape mirrors geom.Shape: bounds, color, and the shape's kind-specific
// payload value, encoded as-is from its Go type.
type Shape struct {
	Kind     string      `json:"kind"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Color    [4]uint8    `json:"color"`
	Payload  interface{} `json:"payload,omitempty"`
	Children []Shape     `json:"children,omitempty"`
}

const FormatVersion = 1

// BuildDocument converts pages (every top-level geom.Box of kind
// BoxDocPage produced by a completed layout) into the JSON-serializable
// Document shape.
func BuildDocument(pages []*geom.Box) Document {
	doc := Document{FormatVersion: FormatVersion, PageCount: len(pages), Pages: []Page{}}
	for _, p := range pages {
		doc.Pages = append(doc.Pages, Page{
			Width:  p.Bounds.Size.W,
			Height: p.Bounds.Size.H,
			Boxes:  boxesFrom(p.Children),
		})
	}
	return doc
}

func boxesFrom(boxes []*geom.Box) []Box {
	out := make([]Box, 0, len(boxes))
	for _, b := range boxes {
		out = append(out, Box{
			Kind:     boxKindName(b.Kind),
			X:        b.Bounds.Origin.X,
			Y:        b.Bounds.Origin.Y,
			Width:    b.Bounds.Size.W,
			Height:   b.Bounds.Size.H,
			Shapes:   shapesFrom(b.Shapes),
			Children: boxesFrom(b.Children),
		})
	}
	return out
}

func shapesFrom(shapes []*geom.Shape) []Shape {
	out := make([]Shape, 0, len(shapes))
	for _, s := range shapes {
		out = append(out, Shape{
			Kind:     shapeKindName(s.Kind),
			X:        s.Bounds.Origin.X,
			Y:        s.Bounds.Origin.Y,
			Width:    s.Bounds.Size.W,
			Height:   s.Bounds.Size.H,
			Color:    [4]uint8{s.Color.R, s.Color.G, s.Color.B, s.Color.A},
			Payload:  payloadFor(s.Payload),
			Children: shapesFrom(s.Children),
		})
	}
	return out
}

// payloadFor returns a shape's typed payload unchanged, so jsoniter
// encodes engrave's payload types directly; a nil payload is omitted
// entirely via the Payload field's omitempty tag.
func payloadFor(p interface{}) interface{} {
	if p == nil {
		return nil
	}
	return p
}

// Write serializes pages as a single JSON document to w.
func Write(w io.Writer, pages []*geom.Box) error {
	doc := BuildDocument(pages)
	enc := api.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Marshal serializes pages to a JSON byte slice.
func Marshal(pages []*geom.Box) ([]byte, error) {
	return api.Marshal(BuildDocument(pages))
}

var boxKindNames = map[geom.BoxKind]string{
	geom.BoxDocPage:   "doc_page",
	geom.BoxScorePage: "score_page",
	geom.BoxSystem:    "system",
	geom.BoxSlice:     "slice",
	geom.BoxSliceInstr: "slice_instr",
}

func boxKindName(k geom.BoxKind) string {
	if name, ok := boxKindNames[k]; ok {
		return name
	}
	return "unknown"
}

var shapeKindNames = map[geom.ShapeKind]string{
	geom.ShapeInvisible:     "invisible",
	geom.ShapeBarline:       "barline",
	geom.ShapeClef:          "clef",
	geom.ShapeKeySignature:  "key_signature",
	geom.ShapeTimeSignature: "time_signature",
	geom.ShapeNotehead:      "notehead",
	geom.ShapeStem:          "stem",
	geom.ShapeFlag:          "flag",
	geom.ShapeRest:          "rest",
	geom.ShapeAccidental:    "accidental",
	geom.ShapeDot:           "dot",
	geom.ShapeLedgerLine:    "ledger_line",
	geom.ShapeBeam:          "beam",
	geom.ShapeTie:           "tie",
	geom.ShapeSlur:          "slur",
	geom.ShapeTuplet:        "tuplet",
	geom.ShapeLyric:         "lyric",
	geom.ShapeDynamics:      "dynamics",
	geom.ShapeArticulation:  "articulation",
	geom.ShapeFermata:       "fermata",
	geom.ShapeOrnament:      "ornament",
	geom.ShapeScoreText:     "score_text",
	geom.ShapeScoreLine:     "score_line",
	geom.ShapeTechnical:     "technical",
	geom.ShapeStaffLine:     "staff_line",
	geom.ShapeErrorMessage:  "error_message",
	geom.ShapeComposite:     "composite",
}

func shapeKindName(k geom.ShapeKind) string {
	if name, ok := shapeKindNames[k]; ok {
		return name
	}
	return "unknown"
}
