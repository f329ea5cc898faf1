// Package session drives a ScoreLayouter page by page in the background so
// a preview surface can browse pages as they become ready, instead of
// blocking on the whole document up front.
package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/ako-backing-tracks/scoreengrave/geom"
	"github.com/ako-backing-tracks/scoreengrave/layout"
	"github.com/ako-backing-tracks/scoreengrave/logging"
	"github.com/ako-backing-tracks/scoreengrave/score"
)

// Controller wraps layout.ScoreLayouter's cooperative
// PrepareToStartLayout/LayoutInBox calls behind a play/pause/seek state
// machine, so an interactive preview can request "the next page" or "page
// N" without itself driving the layout loop.
type Controller struct {
	mu       sync.Mutex
	layouter *layout.ScoreLayouter
	pageSize geom.Size

	started  bool
	paused   bool
	finished bool
	err      error

	pages  []*geom.Box // committed pages, in order
	cursor int         // page index the preview is currently viewing

	stopChan chan struct{}
	stopOnce sync.Once

	log *slog.Logger
}

// NewController builds a controller over doc, using the page size from
// doc.Options (spec §6 page geometry).
func NewController(doc *score.Document) *Controller {
	pageSize := geom.Size{W: doc.Options.Page.Size.Width * score.DefaultLogicalUnitsPerTenth, H: doc.Options.Page.Size.Height * score.DefaultLogicalUnitsPerTenth}
	return &Controller{
		layouter: layout.NewScoreLayouter(doc),
		pageSize: pageSize,
		stopChan: make(chan struct{}),
		log:      logging.For("session"),
	}
}

// Start begins pagination: it prepares the layouter and spawns the
// background goroutine that produces pages one at a time, honoring Pause.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.layouter.PrepareToStartLayout()
	c.mu.Unlock()

	go c.paginationLoop()
}

// Stop halts pagination permanently; a stopped controller cannot restart.
func (c *Controller) Stop() {
	c.stopOnce.Do(func() { close(c.stopChan) })
}

// paginationLoop lays out one page at a time, sleeping briefly whenever
// paused — the same "tick, check state under lock, act" shape the
// teacher's own playback loop uses, with page production standing in for
// event scheduling.
func (c *Controller) paginationLoop() {
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.mu.Lock()
			if c.paused || c.finished {
				c.mu.Unlock()
				continue
			}

			page := geom.NewBox(geom.BoxDocPage, geom.Rect{Size: c.pageSize})
			result := c.layouter.LayoutInBox(page)
			c.pages = append(c.pages, page)
			if result.Err != nil {
				c.err = result.Err
				c.finished = true
			} else if result.Finished {
				c.finished = true
			}
			c.mu.Unlock()
		}
	}
}

// Pause suspends pagination; already-committed pages remain available.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = true
}

// Resume resumes pagination after Pause.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = false
}

// TogglePause flips the paused state and reports the new value.
func (c *Controller) TogglePause() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = !c.paused
	return c.paused
}

// PageCount reports how many pages have been committed so far.
func (c *Controller) PageCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pages)
}

// Finished reports whether layout has consumed every column (or
// terminated early on an unrecoverable error — see Err).
func (c *Controller) Finished() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.finished
}

// Err reports the error layout terminated on, if any.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Page returns the page at index i and whether it has been committed yet.
func (c *Controller) Page(i int) (*geom.Box, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.pages) {
		return nil, false
	}
	return c.pages[i], true
}

// CurrentPage returns the page the preview cursor currently points at.
func (c *Controller) CurrentPage() (*geom.Box, bool) {
	c.mu.Lock()
	i := c.cursor
	c.mu.Unlock()
	return c.Page(i)
}

// SeekToPage moves the preview cursor to page i, clamped to
// [0, PageCount()-1]. It never re-runs layout: pages already committed are
// just re-displayed, matching spec §5's append-only layout model.
func (c *Controller) SeekToPage(i int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 {
		i = 0
	}
	if max := len(c.pages) - 1; max >= 0 && i > max {
		i = max
	}
	c.cursor = i
}

// SeekRelative moves the preview cursor by delta pages.
func (c *Controller) SeekRelative(delta int) {
	c.mu.Lock()
	cursor := c.cursor
	c.mu.Unlock()
	c.SeekToPage(cursor + delta)
}

// CursorIndex reports the preview cursor's current page index.
func (c *Controller) CursorIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}
