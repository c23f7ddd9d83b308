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

type ClassRepository struct {
	*base.Repository
}

func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{Repository: base.NewRepository(pool)}
}

// Create guarda una clase con sus slots, colaboradores y alumnos en una
// sola transacción.
func (r *ClassRepository) Create(ctx context.Context, class *model.Class) error {
	if class.ID == uuid.Nil {
		class.ID = uuid.New()
	}

	tx, err := r.Pool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO classes (id, name, teacher_id, is_emergency, emergency_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`, class.ID, class.Name, class.TeacherID, class.IsEmergency, class.EmergencyDate).
		Scan(&class.CreatedAt, &class.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create class: %w", err)
	}

	for i := range class.Slots {
		slot := &class.Slots[i]
		if slot.ID == uuid.Nil {
			slot.ID = uuid.New()
		}
		slot.ClassID = class.ID
		_, err = tx.Exec(ctx, `
			INSERT INTO class_slots (id, class_id, day, start_time, end_time)
			VALUES ($1, $2, $3, $4, $5)
		`, slot.ID, slot.ClassID, slot.Day, slot.StartTime, slot.EndTime)
		if err != nil {
			return fmt.Errorf("create class slot: %w", err)
		}
	}

	for _, grant := range class.Collaborators {
		_, err = tx.Exec(ctx, `
			INSERT INTO class_collaborators
				(class_id, teacher_id, role, can_take_attendance, can_add_observations, can_view_attendance_history)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, class.ID, grant.TeacherID, grant.Role, grant.CanTakeAttendance,
			grant.CanAddObservations, grant.CanViewAttendanceHistory)
		if err != nil {
			return fmt.Errorf("create collaborator grant: %w", err)
		}
	}

	for _, studentID := range class.StudentIDs {
		_, err = tx.Exec(ctx, `
			INSERT INTO class_students (class_id, student_id)
			VALUES ($1, $2)
		`, class.ID, studentID)
		if err != nil {
			return fmt.Errorf("enroll student: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetByID obtiene una clase completa (slots, colaboradores y alumnos).
func (r *ClassRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Class, error) {
	query := `
		SELECT id, name, teacher_id, is_emergency, emergency_date, created_at, updated_at
		FROM classes
		WHERE id = $1
	`

	var class model.Class
	var emergencyDate *time.Time
	err := r.QueryRow(ctx, query, id).Scan(
		&class.ID,
		&class.Name,
		&class.TeacherID,
		&class.IsEmergency,
		&emergencyDate,
		&class.CreatedAt,
		&class.UpdatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get class by id: %w", err)
	}
	class.EmergencyDate = emergencyDate

	if err := r.loadChildren(ctx, []*model.Class{&class}); err != nil {
		return nil, err
	}

	return &class, nil
}

// List carga el roster completo de la academia: clases regulares y de
// emergencia unificadas en la misma forma (la tabla ya las mezcla con
// el discriminante is_emergency, así que la fusión al leer es trivial).
func (r *ClassRepository) List(ctx context.Context) ([]*model.Class, error) {
	query := `
		SELECT id, name, teacher_id, is_emergency, emergency_date, created_at, updated_at
		FROM classes
		ORDER BY name
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	defer rows.Close()

	var classes []*model.Class
	for rows.Next() {
		var class model.Class
		var emergencyDate *time.Time
		err := rows.Scan(
			&class.ID,
			&class.Name,
			&class.TeacherID,
			&class.IsEmergency,
			&emergencyDate,
			&class.CreatedAt,
			&class.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan class: %w", err)
		}
		class.EmergencyDate = emergencyDate
		classes = append(classes, &class)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}

	if err := r.loadChildren(ctx, classes); err != nil {
		return nil, err
	}

	return classes, nil
}

// loadChildren completa slots, colaboradores y alumnos de un lote de
// clases con tres consultas en total.
func (r *ClassRepository) loadChildren(ctx context.Context, classes []*model.Class) error {
	if len(classes) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*model.Class, len(classes))
	ids := make([]uuid.UUID, 0, len(classes))
	for _, class := range classes {
		byID[class.ID] = class
		ids = append(ids, class.ID)
	}

	rows, err := r.Query(ctx, `
		SELECT id, class_id, day, start_time, end_time
		FROM class_slots
		WHERE class_id = ANY($1)
		ORDER BY class_id, start_time
	`, ids)
	if err != nil {
		return fmt.Errorf("load slots: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var slot model.ClassSlot
		if err := rows.Scan(&slot.ID, &slot.ClassID, &slot.Day, &slot.StartTime, &slot.EndTime); err != nil {
			return fmt.Errorf("scan slot: %w", err)
		}
		if class, ok := byID[slot.ClassID]; ok {
			class.Slots = append(class.Slots, slot)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load slots: %w", err)
	}

	rows, err = r.Query(ctx, `
		SELECT class_id, teacher_id, role, can_take_attendance, can_add_observations, can_view_attendance_history
		FROM class_collaborators
		WHERE class_id = ANY($1)
	`, ids)
	if err != nil {
		return fmt.Errorf("load collaborators: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var classID uuid.UUID
		var grant model.CollaboratorGrant
		err := rows.Scan(&classID, &grant.TeacherID, &grant.Role,
			&grant.CanTakeAttendance, &grant.CanAddObservations, &grant.CanViewAttendanceHistory)
		if err != nil {
			return fmt.Errorf("scan collaborator: %w", err)
		}
		if class, ok := byID[classID]; ok {
			class.Collaborators = append(class.Collaborators, grant)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load collaborators: %w", err)
	}

	rows, err = r.Query(ctx, `
		SELECT class_id, student_id
		FROM class_students
		WHERE class_id = ANY($1)
	`, ids)
	if err != nil {
		return fmt.Errorf("load students: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var classID, studentID uuid.UUID
		if err := rows.Scan(&classID, &studentID); err != nil {
			return fmt.Errorf("scan enrollment: %w", err)
		}
		if class, ok := byID[classID]; ok {
			class.StudentIDs = append(class.StudentIDs, studentID)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load students: %w", err)
	}

	return nil
}
