package model

import (
	"time"

	"github.com/google/uuid"
)

type CollaboratorRole string

const (
	RolePrincipal    CollaboratorRole = "principal"
	RoleAssistant    CollaboratorRole = "assistant"
	RoleCollaborator CollaboratorRole = "collaborator"
)

// CollaboratorGrant representa a un profesor colaborador de una clase
// con sus permisos explícitos. El profesor titular no aparece aquí:
// su permiso es implícito vía Class.TeacherID.
type CollaboratorGrant struct {
	TeacherID                uuid.UUID        `json:"teacher_id"`
	Role                     CollaboratorRole `json:"role"`
	CanTakeAttendance        bool             `json:"can_take_attendance"`
	CanAddObservations       bool             `json:"can_add_observations"`
	CanViewAttendanceHistory bool             `json:"can_view_attendance_history"`
}

// ClassSlot es un horario semanal tal como llega del almacén.
// Day, StartTime y EndTime se guardan crudos ("lunes", "1", "Monday" /
// "09:00") porque los datos migrados del almacén de documentos antiguo
// son heterogéneos; la normalización ocurre al leer (paquete schedule).
type ClassSlot struct {
	ID        uuid.UUID `json:"id"`
	ClassID   uuid.UUID `json:"class_id"`
	Day       string    `json:"day"`
	StartTime string    `json:"start_time"` // "HH:MM"
	EndTime   string    `json:"end_time"`   // "HH:MM"
}

// Class es una clase de la academia: titular, colaboradores, alumnos y
// horarios. Una clase de emergencia (refuerzo puntual) está anclada a
// una fecha exacta y no se repite semanalmente.
type Class struct {
	ID            uuid.UUID           `json:"id"`
	Name          string              `json:"name"`
	TeacherID     uuid.UUID           `json:"teacher_id"` // profesor titular
	Collaborators []CollaboratorGrant `json:"collaborators"`
	StudentIDs    []uuid.UUID         `json:"student_ids"`
	Slots         []ClassSlot         `json:"slots"`
	IsEmergency   bool                `json:"is_emergency"`
	EmergencyDate *time.Time          `json:"emergency_date,omitempty"` // sólo fecha, UTC
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// CollaboratorGrantFor devuelve la concesión del profesor dado, o nil.
func (c *Class) CollaboratorGrantFor(teacherID uuid.UUID) *CollaboratorGrant {
	for i := range c.Collaborators {
		if c.Collaborators[i].TeacherID == teacherID {
			return &c.Collaborators[i]
		}
	}
	return nil
}
