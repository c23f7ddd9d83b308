// Package attendance implementa la máquina de estados de asistencia por
// alumno y sesión, incluida la justificación de ausencias. Todas las
// funciones son puras: reciben registros por valor y devuelven copias
// nuevas; persistirlas es trabajo de la capa de servicio.
package attendance

import (
	"fmt"
	"time"

	"github.com/valegrete/academia_bot/internal/model"
)

// TransitionError es una transición de asistencia no permitida. Se
// devuelve siempre al llamador: descartarla en silencio corrompería
// el registro.
type TransitionError struct {
	From   model.AttendanceStatus
	To     model.AttendanceStatus
	Reason string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("attendance transition %s -> %s not allowed: %s", e.From, e.To, e.Reason)
}

// directStatuses son los estados que un profesor puede asignar
// directamente, desde cualquier estado (corregir un toque errado de
// "presente" a "ausente" no exige pasos intermedios). Justified queda
// fuera: sólo se llega ahí creando una solicitud de justificación.
var directStatuses = map[model.AttendanceStatus]bool{
	model.AttendanceUnmarked: true,
	model.AttendancePresent:  true,
	model.AttendanceAbsent:   true,
	model.AttendanceLate:     true,
}

// Apply asigna un nuevo estado por acción directa del profesor y
// devuelve el registro resultante con la marca de tiempo actualizada.
func Apply(record model.AttendanceRecord, to model.AttendanceStatus, now time.Time) (model.AttendanceRecord, error) {
	if to == model.AttendanceJustified {
		return record, &TransitionError{
			From:   record.Status,
			To:     to,
			Reason: "justified is only reachable through a justification request",
		}
	}
	if !directStatuses[to] {
		return record, &TransitionError{
			From:   record.Status,
			To:     to,
			Reason: "unknown status",
		}
	}

	record.Status = to
	record.JustificationID = nil
	record.UpdatedAt = now
	return record, nil
}
