package session

import (
	"testing"
	"time"

	"github.com/ako-backing-tracks/scoreengrave/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallDocument(t *testing.T) *score.Document {
	t.Helper()
	data := []byte(`
options:
  page:
    size: a4
    margin_top: 100
    margin_bottom: 100
    margin_left: 100
    margin_right: 100
instruments:
  - name: Piano
    staves:
      - lines: 5
        events:
          - {kind: clef, time: 0, line: 0, clef: treble}
          - {kind: note, time: 0, voice: 0, line: 2, duration: 1}
          - {kind: barline, time: 1}
`)
	doc, err := score.ParseDocument(data)
	require.NoError(t, err)
	return doc
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition never became true")
}

func TestController_StartProducesPagesUntilFinished(t *testing.T) {
	c := NewController(smallDocument(t))
	c.Start()
	defer c.Stop()

	waitFor(t, time.Second, c.Finished)

	assert.NoError(t, c.Err())
	assert.GreaterOrEqual(t, c.PageCount(), 1)
}

func TestController_PauseStopsProducingPages(t *testing.T) {
	c := NewController(smallDocument(t))
	c.Pause()
	c.Start()
	defer c.Stop()

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, c.PageCount())

	c.Resume()
	waitFor(t, time.Second, c.Finished)
	assert.GreaterOrEqual(t, c.PageCount(), 1)
}

func TestController_SeekClampsToCommittedRange(t *testing.T) {
	c := NewController(smallDocument(t))
	c.Start()
	defer c.Stop()

	waitFor(t, time.Second, c.Finished)

	c.SeekToPage(1000)
	assert.Equal(t, c.PageCount()-1, c.CursorIndex())

	c.SeekToPage(-5)
	assert.Equal(t, 0, c.CursorIndex())

	page, ok := c.CurrentPage()
	require.True(t, ok)
	require.NotNil(t, page)
}

func TestController_StartIsIdempotent(t *testing.T) {
	c := NewController(smallDocument(t))
	c.Start()
	c.Start()
	defer c.Stop()

	waitFor(t, time.Second, c.Finished)
	assert.GreaterOrEqual(t, c.PageCount(), 1)
}
