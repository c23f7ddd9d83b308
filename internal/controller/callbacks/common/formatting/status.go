package formatting

import "github.com/valegrete/academia_bot/internal/model"

// StatusDisplay contiene emoji y texto para mostrar un estado.
type StatusDisplay struct {
	Emoji string
	Text  string
}

// GetAttendanceStatusDisplay devuelve emoji y texto de un estado de
// asistencia.
func GetAttendanceStatusDisplay(status model.AttendanceStatus) StatusDisplay {
	switch status {
	case model.AttendancePresent:
		return StatusDisplay{Emoji: "✅", Text: "Presente"}
	case model.AttendanceAbsent:
		return StatusDisplay{Emoji: "❌", Text: "Ausente"}
	case model.AttendanceLate:
		return StatusDisplay{Emoji: "🕐", Text: "Tarde"}
	case model.AttendanceJustified:
		return StatusDisplay{Emoji: "📝", Text: "Justificado"}
	default:
		return StatusDisplay{Emoji: "⬜", Text: "Sin marcar"}
	}
}

// GetJustificationStatusDisplay devuelve emoji y texto del estado de
// una solicitud de justificación.
func GetJustificationStatusDisplay(status model.JustificationStatus) StatusDisplay {
	switch status {
	case model.JustificationApproved:
		return StatusDisplay{Emoji: "✅", Text: "Aprobada"}
	case model.JustificationRejected:
		return StatusDisplay{Emoji: "❌", Text: "Rechazada"}
	default:
		return StatusDisplay{Emoji: "⏳", Text: "Pendiente"}
	}
}
