package attendance

import (
	"time"

	"github.com/google/uuid"
	"github.com/valegrete/academia_bot/internal/model"
)

// JustificationTTL es la ventana para resolver una solicitud pendiente.
const JustificationTTL = 7 * 24 * time.Hour

// NewJustification crea la solicitud de justificación de una ausencia y
// pasa el registro a Justified de forma optimista (mientras la solicitud
// esté pendiente el alumno se muestra como justificado provisional).
// Sólo una ausencia puede justificarse.
func NewJustification(record model.AttendanceRecord, reason string, now time.Time) (model.AttendanceRecord, model.JustificationRequest, error) {
	if record.Status != model.AttendanceAbsent {
		return record, model.JustificationRequest{}, &TransitionError{
			From:   record.Status,
			To:     model.AttendanceJustified,
			Reason: "only an absence can be justified",
		}
	}

	req := model.JustificationRequest{
		ID:        uuid.New(),
		StudentID: record.StudentID,
		ClassID:   record.ClassID,
		Date:      record.Date,
		Reason:    reason,
		Status:    model.JustificationPending,
		CreatedAt: now,
		ExpiresAt: now.Add(JustificationTTL),
	}

	record.Status = model.AttendanceJustified
	record.JustificationID = &req.ID
	record.UpdatedAt = now
	return record, req, nil
}

// ResolveJustification aplica el veredicto a una solicitud pendiente.
// Aprobar deja el registro en Justified; rechazar lo revierte a Absent.
// Salir de pending es definitivo: resolver dos veces es un error.
//
// El rechazo sólo revierte el registro si sigue ligado a esta solicitud
// y sigue en Justified: si el profesor ya lo corrigió (Apply rompe el
// vínculo), la solicitud se rechaza sin tocar el registro.
func ResolveJustification(record model.AttendanceRecord, req model.JustificationRequest, verdict model.JustificationStatus, now time.Time) (model.AttendanceRecord, model.JustificationRequest, error) {
	if req.Status != model.JustificationPending {
		return record, req, &TransitionError{
			From:   record.Status,
			To:     record.Status,
			Reason: "justification request already resolved",
		}
	}

	switch verdict {
	case model.JustificationApproved:
		req.Status = model.JustificationApproved
	case model.JustificationRejected:
		req.Status = model.JustificationRejected
		if record.Status == model.AttendanceJustified &&
			record.JustificationID != nil && *record.JustificationID == req.ID {
			record.Status = model.AttendanceAbsent
			record.JustificationID = nil
			record.UpdatedAt = now
		}
	default:
		return record, req, &TransitionError{
			From:   record.Status,
			To:     record.Status,
			Reason: "verdict must be approved or rejected",
		}
	}

	resolved := now
	req.ResolvedAt = &resolved
	return record, req, nil
}

// Expired indica si una solicitud pendiente superó su ventana.
func Expired(req model.JustificationRequest, now time.Time) bool {
	return req.Status == model.JustificationPending && now.After(req.ExpiresAt)
}
