// Package layout implements the score layout orchestrator: the Staff-Objs
// Cursor, Column Breaker, Spacing Algorithm, Column/System Layouters,
// Lines Breaker, and Score Layouter (spec §4). It is single-threaded and
// cooperative (spec §5): the caller drives PrepareToStartLayout then
// repeated LayoutInBox calls; there is no concurrency inside the package.
package layout

import (
	"log/slog"

	"github.com/ako-backing-tracks/scoreengrave/logging"
	"github.com/ako-backing-tracks/scoreengrave/score"
)

// Cursor iterates a score's StaffObjs table in time order, emitting one
// event per staff-object with (timepos, instr, staff, voice, line) — spec
// §2's "Staff-Objs Cursor".
type Cursor struct {
	entries []score.StaffObjsEntry
	pos     int
	log     *slog.Logger
}

// NewCursor builds a cursor over doc's full staff-objs table, already
// ordered deterministically by score.Document.BuildStaffObjsTable.
func NewCursor(doc *score.Document) *Cursor {
	return &Cursor{entries: doc.BuildStaffObjsTable(), log: logging.For("cursor")}
}

// More reports whether the cursor has more events to emit.
func (c *Cursor) More() bool { return c.pos < len(c.entries) }

// Current returns the entry the cursor currently points at, without
// advancing. Panics if More() is false — callers must check first.
func (c *Cursor) Current() score.StaffObjsEntry {
	return c.entries[c.pos]
}

// Advance moves the cursor to the next event.
func (c *Cursor) Advance() {
	if c.pos < len(c.entries) {
		c.pos++
	}
}

// Reset rewinds the cursor to the first event so the same score can be
// walked again.
func (c *Cursor) Reset() { c.pos = 0 }

// Len reports the total number of events in the table.
func (c *Cursor) Len() int { return len(c.entries) }

// All returns the whole table, including entries already consumed, without
// moving the cursor, for random access rather than a strict forward walk.
func (c *Cursor) All() []score.StaffObjsEntry { return c.entries }
