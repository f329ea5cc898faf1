package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureYAML = `
options:
  score:
    justify_final_barline: true
instruments:
  - name: Violin
    staves:
      - lines: 5
        events:
          - {kind: clef, time: 0, clef: treble}
          - {kind: key, time: 0, fifths: 2}
          - {kind: time, time: 0, measure_duration: 4}
          - {kind: note, time: 0, duration: 1, line: 4}
          - {kind: note, time: 1, duration: 1, line: 5}
          - {kind: barline, time: 4}
`

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument([]byte(fixtureYAML))
	require.NoError(t, err)
	require.Len(t, doc.Instruments, 1)
	assert.Equal(t, "Violin", doc.Instruments[0].Name)
	require.Len(t, doc.Instruments[0].Staves, 1)
	objs := doc.Instruments[0].Staves[0].Objects
	require.Len(t, objs, 6)
	assert.Equal(t, ObjClef, objs[0].Kind)
	assert.Equal(t, ClefG2, objs[0].Clef)
	assert.Equal(t, ObjKeySignature, objs[1].Kind)
	assert.Equal(t, 2, objs[1].Key.Fifths)
	assert.True(t, doc.Options.Score.JustifyFinalBarline)
}

func TestParseDocument_UnknownKind(t *testing.T) {
	_, err := ParseDocument([]byte("instruments:\n  - staves:\n      - events:\n          - {kind: bogus}\n"))
	assert.Error(t, err)
}
