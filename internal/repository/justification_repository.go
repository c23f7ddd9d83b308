package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/valegrete/academia_bot/internal/model"
	"github.com/valegrete/academia_bot/internal/repository/base"
)

type JustificationRepository struct {
	*base.Repository
}

func NewJustificationRepository(pool *pgxpool.Pool) *JustificationRepository {
	return &JustificationRepository{Repository: base.NewRepository(pool)}
}

// Create guarda una solicitud de justificación nueva.
func (r *JustificationRepository) Create(ctx context.Context, req *model.JustificationRequest) error {
	query := `
		INSERT INTO justification_requests
			(id, student_id, class_id, date, reason, status, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.Pool().Exec(ctx, query,
		req.ID,
		req.StudentID,
		req.ClassID,
		req.Date,
		req.Reason,
		req.Status,
		req.CreatedAt,
		req.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("create justification request: %w", err)
	}

	return nil
}

// Update persiste la resolución de una solicitud.
func (r *JustificationRepository) Update(ctx context.Context, req *model.JustificationRequest) error {
	affected, err := r.ExecAffected(ctx, `
		UPDATE justification_requests
		SET status = $1, resolved_at = $2
		WHERE id = $3
	`, req.Status, req.ResolvedAt, req.ID)
	if err != nil {
		return fmt.Errorf("update justification request: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("justification request not found")
	}
	return nil
}

// GetByID obtiene una solicitud por ID, o nil.
func (r *JustificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.JustificationRequest, error) {
	query := `
		SELECT id, student_id, class_id, date, reason, status, created_at, expires_at, resolved_at
		FROM justification_requests
		WHERE id = $1
	`

	var req model.JustificationRequest
	err := r.QueryRow(ctx, query, id).Scan(
		&req.ID,
		&req.StudentID,
		&req.ClassID,
		&req.Date,
		&req.Reason,
		&req.Status,
		&req.CreatedAt,
		&req.ExpiresAt,
		&req.ResolvedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get justification by id: %w", err)
	}

	return &req, nil
}

// GetByClassDate obtiene las solicitudes de una sesión.
func (r *JustificationRepository) GetByClassDate(ctx context.Context, classID uuid.UUID, date time.Time) ([]model.JustificationRequest, error) {
	query := `
		SELECT id, student_id, class_id, date, reason, status, created_at, expires_at, resolved_at
		FROM justification_requests
		WHERE class_id = $1 AND date = $2
	`

	rows, err := r.Query(ctx, query, classID, date)
	if err != nil {
		return nil, fmt.Errorf("get justifications by class/date: %w", err)
	}
	defer rows.Close()

	return scanJustifications(rows)
}

// ListExpiredPending obtiene las solicitudes pendientes cuya ventana ya
// venció. El planificador de fondo las rechaza de oficio.
func (r *JustificationRepository) ListExpiredPending(ctx context.Context, now time.Time) ([]model.JustificationRequest, error) {
	query := `
		SELECT id, student_id, class_id, date, reason, status, created_at, expires_at, resolved_at
		FROM justification_requests
		WHERE status = 'pending' AND expires_at < $1
		ORDER BY expires_at
	`

	rows, err := r.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("list expired pending justifications: %w", err)
	}
	defer rows.Close()

	return scanJustifications(rows)
}

func scanJustifications(rows pgx.Rows) ([]model.JustificationRequest, error) {
	var reqs []model.JustificationRequest
	for rows.Next() {
		var req model.JustificationRequest
		err := rows.Scan(
			&req.ID,
			&req.StudentID,
			&req.ClassID,
			&req.Date,
			&req.Reason,
			&req.Status,
			&req.CreatedAt,
			&req.ExpiresAt,
			&req.ResolvedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan justification request: %w", err)
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}
