package score

import (
	"sort"

	"gitlab.com/gomidi/midi/v2/smf"
)

// ImportSMF builds a read-only Document from a Standard MIDI File: each
// SMF track becomes one instrument/staff, note-on/note-off pairs become
// ObjNote staff-objects, and a closing ObjBarline is inserted at the end
// of every bar implied by the time signature meta event (default 4/4).
//
// This uses gitlab.com/gomidi/midi/v2 (and its smf sub-package) purely as
// an input path rather than for playback, which is out of scope: only
// smf.ReadTracks is exercised here, never a MIDI output port.
func ImportSMF(path string) (*Document, error) {
	type pending struct {
		tick     int64
		note     uint8
		velocity uint8
	}

	var (
		ticksPerQuarter = 480.0
		beatsPerBar     = 4
		instruments     []*Instrument
		openNotes       = map[int]map[uint8]pending{} // track -> note -> onset
	)

	err := smf.ReadTracks(path, func(te smf.TrackEvent) bool {
		trackNo := int(te.TrackNo)
		for len(instruments) <= trackNo {
			idx := len(instruments)
			instruments = append(instruments, &Instrument{
				Index:  idx,
				Name:   "track",
				Staves: []*Staff{{Index: 0, Lines: 5}},
			})
			openNotes[idx] = map[uint8]pending{}
		}

		if bpm, num, _, ok := te.Message.GetMetaTimeSig(); ok {
			_ = bpm
			if num > 0 {
				beatsPerBar = int(num)
			}
		}
		if mt, ok := te.Message.GetMetaTempo(); ok {
			_ = mt // tempo does not affect the notation-space object graph
		}

		if ch, key, vel, ok := te.Message.GetNoteStart(); ok {
			_ = ch
			openNotes[trackNo][key] = pending{tick: int64(te.AbsTicks), note: key, velocity: vel}
			return true
		}
		if ch, key, ok := te.Message.GetNoteEnd(); ok {
			_ = ch
			onset, ok := openNotes[trackNo][key]
			if !ok {
				return true
			}
			delete(openNotes[trackNo], key)
			staff := instruments[trackNo].Staves[0]
			durQuarters := float64(int64(te.AbsTicks)-onset.tick) / ticksPerQuarter
			staff.Objects = append(staff.Objects, &StaffObject{
				Kind:     ObjNote,
				TimePos:  TimePos(float64(onset.tick) / ticksPerQuarter),
				Instr:    trackNo,
				Staff:    0,
				Line:     pitchToLine(onset.note),
				Duration: durQuarters,
			})
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	doc := &Document{Instruments: instruments}
	insertBarlines(doc, float64(beatsPerBar))
	return doc, nil
}

// pitchToLine maps a MIDI pitch to a crude position-on-staff (GLOSSARY),
// treble clef reference: MIDI 71 (B4) sits on line 4 (position 6).
func pitchToLine(pitch uint8) int {
	return int(pitch) - 71 + 6
}

// insertBarlines sorts each staff's notes by time and appends an
// ObjBarline staff-object at each beatsPerBar boundary a note crosses.
func insertBarlines(doc *Document, beatsPerBar float64) {
	for _, instr := range doc.Instruments {
		for _, staff := range instr.Staves {
			sort.Slice(staff.Objects, func(i, j int) bool {
				return staff.Objects[i].TimePos < staff.Objects[j].TimePos
			})
			if len(staff.Objects) == 0 {
				continue
			}
			last := staff.Objects[len(staff.Objects)-1]
			endTime := float64(last.TimePos) + last.Duration
			var withBars []*StaffObject
			nextBar := beatsPerBar
			for _, obj := range staff.Objects {
				for float64(obj.TimePos) >= nextBar {
					withBars = append(withBars, &StaffObject{Kind: ObjBarline, TimePos: TimePos(nextBar), Instr: instr.Index, Staff: staff.Index})
					nextBar += beatsPerBar
				}
				withBars = append(withBars, obj)
			}
			for endTime >= nextBar {
				withBars = append(withBars, &StaffObject{Kind: ObjBarline, TimePos: TimePos(nextBar), Instr: instr.Index, Staff: staff.Index})
				nextBar += beatsPerBar
			}
			staff.Objects = withBars
		}
	}
}
