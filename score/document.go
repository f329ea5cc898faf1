package score

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// docFile is the on-disk YAML shape a score.Document loads from: a small
// declarative description (instruments/staves/events) rather than a full
// notation-language parse, which is out of scope.
type docFile struct {
	Options     Options          `yaml:"options"`
	Instruments []instrumentFile `yaml:"instruments"`
}

type instrumentFile struct {
	Name   string       `yaml:"name"`
	Staves []staffFile  `yaml:"staves"`
}

type staffFile struct {
	Lines  int          `yaml:"lines"`
	Events []eventFile  `yaml:"events"`
}

// eventFile is one staff-object as written in the YAML fixture format.
// Kind accepts the same short tokens a hand-written test fixture would use
// ("note", "rest", "barline", "clef", "key", "time", "spacer").
type eventFile struct {
	Kind     string  `yaml:"kind"`
	Time     float64 `yaml:"time"`
	Voice    int     `yaml:"voice"`
	Line     int     `yaml:"line"`
	Duration float64 `yaml:"duration"`
	Beamed   bool    `yaml:"beamed"`
	EndBeam  bool    `yaml:"end_beam"`
	TiedPrev bool    `yaml:"tied_prev"`
	TiedNext bool    `yaml:"tied_next"`
	Clef     string  `yaml:"clef"`
	Fifths   int      `yaml:"fifths"`
	MeasureDuration float64 `yaml:"measure_duration"`
}

var kindTokens = map[string]ObjectKind{
	"barline": ObjBarline,
	"clef":    ObjClef,
	"key":     ObjKeySignature,
	"time":    ObjTimeSignature,
	"note":    ObjNote,
	"rest":    ObjRest,
	"spacer":  ObjSpacer,
}

var clefTokens = map[string]ClefKind{
	"G2": ClefG2, "treble": ClefG2,
	"F4": ClefF4, "bass": ClefF4,
	"C3": ClefC3, "alto": ClefC3,
	"C4": ClefC4, "tenor": ClefC4,
	"perc": ClefPercussion,
}

// LoadDocument reads and parses a score-description YAML file.
func LoadDocument(filename string) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseDocument(data)
}

// ParseDocument decodes YAML score-description bytes into a Document.
func ParseDocument(data []byte) (*Document, error) {
	var df docFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, err
	}

	doc := &Document{Options: df.Options}
	for ii, instr := range df.Instruments {
		in := &Instrument{Index: ii, Name: instr.Name}
		for si, st := range instr.Staves {
			lines := st.Lines
			if lines == 0 {
				lines = 5
			}
			staff := &Staff{Index: si, Lines: lines}
			for _, ev := range st.Events {
				obj, err := buildStaffObject(ev, ii, si)
				if err != nil {
					return nil, err
				}
				staff.Objects = append(staff.Objects, obj)
			}
			in.Staves = append(in.Staves, staff)
		}
		doc.Instruments = append(doc.Instruments, in)
	}
	return doc, nil
}

func buildStaffObject(ev eventFile, instr, staff int) (*StaffObject, error) {
	kind, ok := kindTokens[ev.Kind]
	if !ok {
		return nil, fmt.Errorf("score: unknown event kind %q", ev.Kind)
	}
	obj := &StaffObject{
		Kind:       kind,
		TimePos:    TimePos(ev.Time),
		Instr:      instr,
		Staff:      staff,
		Voice:      ev.Voice,
		Line:       ev.Line,
		Duration:   ev.Duration,
		IsBeamed:   ev.Beamed,
		IsEndBeam:  ev.EndBeam,
		TiedPrev:   ev.TiedPrev,
		TiedNext:   ev.TiedNext,
		MeasureDur: ev.MeasureDuration,
	}
	if ev.Clef != "" {
		c, ok := clefTokens[ev.Clef]
		if !ok {
			return nil, fmt.Errorf("score: unknown clef %q", ev.Clef)
		}
		obj.Clef = c
	}
	if kind == ObjKeySignature {
		obj.Key = KeySignature{Fifths: ev.Fifths}
	}
	if kind == ObjSpacer {
		obj.Invisible = true
		obj.Width = ev.Duration
	}
	return obj, nil
}
