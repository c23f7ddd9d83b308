package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/valegrete/academia_bot/internal/model"
	"github.com/valegrete/academia_bot/internal/repository/base"
)

type AttendanceRepository struct {
	*base.Repository
}

func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{Repository: base.NewRepository(pool)}
}

// Upsert guarda un registro de asistencia. La clave (clase, fecha,
// alumno) es única: marcar de nuevo sobreescribe el estado anterior,
// nunca duplica la fila.
func (r *AttendanceRepository) Upsert(ctx context.Context, record *model.AttendanceRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	query := `
		INSERT INTO attendance_records (id, class_id, student_id, date, status, justification_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (class_id, date, student_id) DO UPDATE
		SET status = EXCLUDED.status,
		    justification_id = EXCLUDED.justification_id,
		    updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`

	err := r.QueryRow(ctx, query,
		record.ID,
		record.ClassID,
		record.StudentID,
		record.Date,
		record.Status,
		record.JustificationID,
		record.UpdatedAt,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert attendance record: %w", err)
	}

	return nil
}

// Get obtiene el registro de un alumno en una sesión, o nil.
func (r *AttendanceRepository) Get(ctx context.Context, classID uuid.UUID, date time.Time, studentID uuid.UUID) (*model.AttendanceRecord, error) {
	query := `
		SELECT id, class_id, student_id, date, status, justification_id, created_at, updated_at
		FROM attendance_records
		WHERE class_id = $1 AND date = $2 AND student_id = $3
	`

	var record model.AttendanceRecord
	err := r.QueryRow(ctx, query, classID, date, studentID).Scan(
		&record.ID,
		&record.ClassID,
		&record.StudentID,
		&record.Date,
		&record.Status,
		&record.JustificationID,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get attendance record: %w", err)
	}

	return &record, nil
}

// GetByClassDate obtiene todos los registros de una sesión.
func (r *AttendanceRepository) GetByClassDate(ctx context.Context, classID uuid.UUID, date time.Time) ([]model.AttendanceRecord, error) {
	query := `
		SELECT id, class_id, student_id, date, status, justification_id, created_at, updated_at
		FROM attendance_records
		WHERE class_id = $1 AND date = $2
	`

	rows, err := r.Query(ctx, query, classID, date)
	if err != nil {
		return nil, fmt.Errorf("get attendance by class/date: %w", err)
	}
	defer rows.Close()

	var records []model.AttendanceRecord
	for rows.Next() {
		var record model.AttendanceRecord
		err := rows.Scan(
			&record.ID,
			&record.ClassID,
			&record.StudentID,
			&record.Date,
			&record.Status,
			&record.JustificationID,
			&record.CreatedAt,
			&record.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan attendance record: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// GetByJustificationID obtiene el registro ligado a una justificación.
func (r *AttendanceRepository) GetByJustificationID(ctx context.Context, justificationID uuid.UUID) (*model.AttendanceRecord, error) {
	query := `
		SELECT id, class_id, student_id, date, status, justification_id, created_at, updated_at
		FROM attendance_records
		WHERE justification_id = $1
	`

	var record model.AttendanceRecord
	err := r.QueryRow(ctx, query, justificationID).Scan(
		&record.ID,
		&record.ClassID,
		&record.StudentID,
		&record.Date,
		&record.Status,
		&record.JustificationID,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get attendance by justification: %w", err)
	}

	return &record, nil
}
