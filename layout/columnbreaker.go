package layout

import (
	"log/slog"

	"github.com/ako-backing-tracks/scoreengrave/logging"
	"github.com/ako-backing-tracks/scoreengrave/score"
)

// lineKey identifies one of the "lines" the Column Breaker tracks in-beam
// and tied-forward flags for: a voice within a staff within an instrument.
type lineKey struct {
	Instr, Staff, Voice int
}

// ColumnBreaker is the single-pass stream filter of spec §4.2: it decides,
// for each incoming staff-object, whether a new column should start before
// that object is emitted.
type ColumnBreaker struct {
	numInstrWithTimeSig int

	consecutiveBarlines int
	inBeam              map[lineKey]bool
	tiedForward         map[lineKey]bool
	measureDurByInstr   map[int]float64
	maxMeasureDuration  float64
	lastBarlineTime     score.TimePos
	lastBreakTime       score.TimePos
	targetTime          score.TimePos

	log *slog.Logger
}

// NewColumnBreaker constructs a breaker for a document with
// numInstrWithTimeSig instruments carrying a time signature (spec §4.2's
// threshold for "consecutive barlines" forcing a break).
func NewColumnBreaker(numInstrWithTimeSig int) *ColumnBreaker {
	return &ColumnBreaker{
		numInstrWithTimeSig: numInstrWithTimeSig,
		inBeam:              map[lineKey]bool{},
		tiedForward:         map[lineKey]bool{},
		measureDurByInstr:   map[int]float64{},
		log:                 logging.For("columnbreaker"),
	}
}

// ShouldBreakBefore reports whether a new column must start before obj is
// emitted, per the decision rule in spec §4.2. It does not mutate state;
// call Observe(obj) after emitting obj into whichever column was chosen.
func (cb *ColumnBreaker) ShouldBreakBefore(obj *score.StaffObject) bool {
	if !obj.IsBarline() && cb.consecutiveBarlines >= cb.numInstrWithTimeSig && cb.numInstrWithTimeSig > 0 {
		return true
	}

	if obj.IsNoteRest() &&
		obj.TimePos > cb.lastBreakTime &&
		obj.TimePos > cb.lastBarlineTime+score.TimePos(cb.maxMeasureDuration) &&
		cb.isSuitableBreakPoint(obj) {
		return true
	}

	return false
}

// isSuitableBreakPoint implements spec §4.2's "suitable" predicate: no
// line is mid-beam or tied-forward, the object itself isn't tied-back (for
// notes), and its time has reached the running target time (the latest
// note-end seen so far, so a column never splits a long note away from a
// shorter concurrent voice still sounding under it).
func (cb *ColumnBreaker) isSuitableBreakPoint(obj *score.StaffObject) bool {
	for _, inBeam := range cb.inBeam {
		if inBeam {
			return false
		}
	}
	for _, tied := range cb.tiedForward {
		if tied {
			return false
		}
	}
	if obj.IsNote() && obj.GetTiedPrev() {
		return false
	}
	return obj.TimePos >= cb.targetTime
}

// Observe updates the breaker's running state after obj has been emitted
// into a column (in-beam/tied flags, measure durations, barline counters,
// last-break/last-barline times, and the note-end target time).
func (cb *ColumnBreaker) Observe(obj *score.StaffObject, brokeBefore bool) {
	key := lineKey{Instr: obj.Instr, Staff: obj.Staff, Voice: obj.Voice}

	if brokeBefore {
		cb.lastBreakTime = obj.TimePos
	}

	if obj.IsBarline() {
		cb.consecutiveBarlines++
		cb.lastBarlineTime = obj.TimePos
	} else {
		cb.consecutiveBarlines = 0
	}

	if obj.IsTimeSignature() {
		cb.measureDurByInstr[obj.Instr] = obj.GetMeasureDuration()
		cb.maxMeasureDuration = 0
		for _, d := range cb.measureDurByInstr {
			if d > cb.maxMeasureDuration {
				cb.maxMeasureDuration = d
			}
		}
	}

	if obj.IsNoteRest() {
		cb.inBeam[key] = obj.GetBeamed() && !obj.GetEndOfBeam()
		cb.tiedForward[key] = obj.GetTiedNext()

		end := obj.TimePos + score.TimePos(obj.GetDuration())
		if end > cb.targetTime {
			cb.targetTime = end
		}
	}
}

// Column is a slice of StaffObjsEntry sharing a contiguous time interval
// across all instruments, bounded by breakpoints the Column Breaker chose
// (GLOSSARY: "Column").
type Column struct {
	Entries []score.StaffObjsEntry
}

// Partition consumes every entry from cur and groups it into columns. The
// union of the returned columns' entries equals the cursor's stream in
// order, and the columns are disjoint (spec §8 property 2).
func Partition(cur *Cursor, numInstrWithTimeSig int) []*Column {
	cb := NewColumnBreaker(numInstrWithTimeSig)
	var columns []*Column
	var current *Column

	for cur.More() {
		entry := cur.Current()
		obj := entry.Object

		brk := current != nil && cb.ShouldBreakBefore(obj)
		if current == nil || brk {
			current = &Column{}
			columns = append(columns, current)
		}
		current.Entries = append(current.Entries, entry)
		cb.Observe(obj, brk)
		cur.Advance()
	}

	return columns
}
