package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeter_TenthsToLogical(t *testing.T) {
	doc := &Document{Instruments: []*Instrument{
		{Index: 0, Staves: []*Staff{{Index: 0}}},
	}}
	m := NewMeter(doc)
	assert.Equal(t, 10*DefaultLogicalUnitsPerTenth, m.TenthsToLogical(10, 0, 0))
}

func TestMeter_UnknownStaffFallsBackToDefault(t *testing.T) {
	doc := &Document{}
	m := NewMeter(doc)
	assert.Equal(t, 5*DefaultLogicalUnitsPerTenth, m.TenthsToLogical(5, 9, 9))
}

func TestMeter_StaffHeightTenths(t *testing.T) {
	doc := &Document{Instruments: []*Instrument{
		{Index: 0, Staves: []*Staff{{Index: 0, Lines: 5}}},
	}}
	m := NewMeter(doc)
	assert.Equal(t, 40.0, m.StaffHeightTenths(0, 0))
}

func TestPositionToTenths(t *testing.T) {
	assert.Equal(t, 35.0, PositionToTenths(7))
}
