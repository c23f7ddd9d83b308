package schedule

import (
	"fmt"
	"time"

	"github.com/valegrete/academia_bot/internal/model"
)

// Slot es un horario ya normalizado: día canónico y minutos desde
// medianoche, con rango semiabierto [StartMinute, EndMinute).
type Slot struct {
	Day         Day
	StartMinute int
	EndMinute   int
}

// Overlaps indica si dos slots se solapan. El rango es semiabierto:
// una clase que termina a las 10:00 no choca con otra que empieza
// a las 10:00.
func (s Slot) Overlaps(other Slot) bool {
	if s.Day != other.Day {
		return false
	}
	return s.StartMinute < other.EndMinute && other.StartMinute < s.EndMinute
}

func (s Slot) String() string {
	return fmt.Sprintf("%s %s-%s", s.Day, FormatMinutes(s.StartMinute), FormatMinutes(s.EndMinute))
}

// NormalizeSlot valida y normaliza un slot crudo del almacén.
func NormalizeSlot(raw model.ClassSlot) (Slot, error) {
	day, err := NormalizeDay(raw.Day)
	if err != nil {
		return Slot{}, err
	}
	start, err := ParseTimeToMinutes(raw.StartTime)
	if err != nil {
		return Slot{}, err
	}
	end, err := ParseTimeToMinutes(raw.EndTime)
	if err != nil {
		return Slot{}, err
	}
	if start >= end {
		return Slot{}, &InvalidTimeError{
			Value:  fmt.Sprintf("%s-%s", raw.StartTime, raw.EndTime),
			Reason: "start must be before end",
		}
	}
	return Slot{Day: day, StartMinute: start, EndMinute: end}, nil
}

// SameDate compara sólo año/mes/día, en la zona de cada fecha.
// Las fechas de sesión y de emergencia se guardan como fecha UTC.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// MatchesDate indica si un slot normalizado aplica a la fecha dada para
// la clase dueña. Una clase regular aplica cada semana en su día; una
// clase de emergencia aplica únicamente en su fecha exacta (la semana
// siguiente, mismo día, ya no existe).
func MatchesDate(slot Slot, class *model.Class, date time.Time) bool {
	if class.IsEmergency {
		return class.EmergencyDate != nil && SameDate(date, *class.EmergencyDate)
	}
	return slot.Day == DayOf(date)
}
