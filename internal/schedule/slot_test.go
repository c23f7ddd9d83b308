package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valegrete/academia_bot/internal/model"
)

func slotAt(day Day, start, end int) Slot {
	return Slot{Day: day, StartMinute: start, EndMinute: end}
}

func TestOverlaps_HalfOpen(t *testing.T) {
	// Una clase que termina a las 10:00 y otra que empieza a las 10:00
	// no chocan.
	a := slotAt(Monday, 9*60, 10*60)
	b := slotAt(Monday, 10*60, 11*60)
	assert.False(t, a.Overlaps(b))
	assert.False(t, b.Overlaps(a))

	c := slotAt(Monday, 9*60, 10*60+30)
	assert.True(t, c.Overlaps(b))
	assert.True(t, b.Overlaps(c))
}

func TestOverlaps_DifferentDays(t *testing.T) {
	a := slotAt(Monday, 9*60, 10*60)
	b := slotAt(Tuesday, 9*60, 10*60)
	assert.False(t, a.Overlaps(b))
}

func TestOverlaps_Containment(t *testing.T) {
	outer := slotAt(Friday, 9*60, 12*60)
	inner := slotAt(Friday, 10*60, 11*60)
	assert.True(t, outer.Overlaps(inner))
	assert.True(t, inner.Overlaps(outer))
}

func TestNormalizeSlot(t *testing.T) {
	raw := model.ClassSlot{Day: "lunes", StartTime: "09:00", EndTime: "10:30"}
	slot, err := NormalizeSlot(raw)
	require.NoError(t, err)
	assert.Equal(t, Monday, slot.Day)
	assert.Equal(t, 540, slot.StartMinute)
	assert.Equal(t, 630, slot.EndMinute)
}

func TestNormalizeSlot_Invalid(t *testing.T) {
	cases := []model.ClassSlot{
		{Day: "marciano", StartTime: "09:00", EndTime: "10:00"},
		{Day: "lunes", StartTime: "25:00", EndTime: "26:00"},
		{Day: "lunes", StartTime: "10:00", EndTime: "09:00"}, // inicio después del fin
		{Day: "lunes", StartTime: "10:00", EndTime: "10:00"}, // rango vacío
	}
	for _, raw := range cases {
		_, err := NormalizeSlot(raw)
		assert.Error(t, err, "slot %+v", raw)
	}
}

func TestMatchesDate_Regular(t *testing.T) {
	class := &model.Class{ID: uuid.New(), Name: "Guitarra I"}
	slot := slotAt(Monday, 9*60, 10*60)

	monday := time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)
	require.Equal(t, time.Monday, monday.Weekday())

	assert.True(t, MatchesDate(slot, class, monday))
	assert.False(t, MatchesDate(slot, class, tuesday))
	// Una clase regular se repite: el lunes siguiente también aplica.
	assert.True(t, MatchesDate(slot, class, monday.AddDate(0, 0, 7)))
}

func TestMatchesDate_EmergencyExactDateOnly(t *testing.T) {
	anchor := time.Date(2025, 6, 27, 0, 0, 0, 0, time.UTC) // viernes
	class := &model.Class{
		ID:            uuid.New(),
		Name:          "Refuerzo piano",
		IsEmergency:   true,
		EmergencyDate: &anchor,
	}
	slot := slotAt(Friday, 16*60, 17*60)

	assert.True(t, MatchesDate(slot, class, anchor))
	// El viernes siguiente NO: una clase de emergencia no se repite.
	assert.False(t, MatchesDate(slot, class, anchor.AddDate(0, 0, 7)))
}
