package model

import (
	"time"

	"github.com/google/uuid"
)

type AttendanceStatus string

const (
	AttendanceUnmarked  AttendanceStatus = "unmarked"
	AttendancePresent   AttendanceStatus = "present"
	AttendanceAbsent    AttendanceStatus = "absent"
	AttendanceLate      AttendanceStatus = "late"
	AttendanceJustified AttendanceStatus = "justified"
)

// AttendanceRecord es la asistencia de un alumno en una sesión concreta
// de una clase. Existe como máximo un registro por (clase, fecha, alumno).
type AttendanceRecord struct {
	ID              uuid.UUID        `json:"id"`
	ClassID         uuid.UUID        `json:"class_id"`
	StudentID       uuid.UUID        `json:"student_id"`
	Date            time.Time        `json:"date"` // sólo fecha, UTC
	Status          AttendanceStatus `json:"status"`
	JustificationID *uuid.UUID       `json:"justification_id,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}
