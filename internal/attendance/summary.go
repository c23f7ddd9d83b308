package attendance

import (
	"github.com/google/uuid"
	"github.com/valegrete/academia_bot/internal/model"
)

// Summary son los recuentos de una sesión. PendingJustified es el
// subconjunto de Justified cuya solicitud sigue pendiente: el recuento
// de justificados no es definitivo mientras sea mayor que cero.
type Summary struct {
	Present          int
	Absent           int
	Late             int
	Justified        int
	PendingJustified int
	Unmarked         int
}

// Summarize cuenta los estados de una sesión. Las solicitudes se pasan
// para distinguir justificaciones firmes de provisionales.
func Summarize(records []model.AttendanceRecord, requests []model.JustificationRequest) Summary {
	pending := make(map[uuid.UUID]bool, len(requests))
	for _, req := range requests {
		if req.Status == model.JustificationPending {
			pending[req.ID] = true
		}
	}

	var s Summary
	for _, rec := range records {
		switch rec.Status {
		case model.AttendancePresent:
			s.Present++
		case model.AttendanceAbsent:
			s.Absent++
		case model.AttendanceLate:
			s.Late++
		case model.AttendanceJustified:
			s.Justified++
			if rec.JustificationID != nil && pending[*rec.JustificationID] {
				s.PendingJustified++
			}
		default:
			s.Unmarked++
		}
	}
	return s
}
