package model

import (
	"time"

	"github.com/google/uuid"
)

type JustificationStatus string

const (
	JustificationPending  JustificationStatus = "pending"
	JustificationApproved JustificationStatus = "approved"
	JustificationRejected JustificationStatus = "rejected"
)

// JustificationRequest es la solicitud de justificación de una ausencia.
// Una vez que sale de pending la resolución es definitiva.
type JustificationRequest struct {
	ID         uuid.UUID           `json:"id"`
	StudentID  uuid.UUID           `json:"student_id"`
	ClassID    uuid.UUID           `json:"class_id"`
	Date       time.Time           `json:"date"` // sesión a la que corresponde
	Reason     string              `json:"reason"`
	Status     JustificationStatus `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
	ExpiresAt  time.Time           `json:"expires_at"`
	ResolvedAt *time.Time          `json:"resolved_at,omitempty"`
}
