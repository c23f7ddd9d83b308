package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/valegrete/academia_bot/internal/model"
	"github.com/valegrete/academia_bot/internal/repository/base"
)

type StudentRepository struct {
	*base.Repository
}

func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{Repository: base.NewRepository(pool)}
}

// Create registra un alumno nuevo.
func (r *StudentRepository) Create(ctx context.Context, student *model.Student) error {
	if student.ID == uuid.Nil {
		student.ID = uuid.New()
	}

	query := `
		INSERT INTO students (id, name)
		VALUES ($1, $2)
		RETURNING created_at
	`

	err := r.QueryRow(ctx, query, student.ID, student.Name).Scan(&student.CreatedAt)
	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}

	return nil
}

// GetByID obtiene un alumno por ID.
func (r *StudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	query := `
		SELECT id, name, created_at
		FROM students
		WHERE id = $1
	`

	var student model.Student
	err := r.QueryRow(ctx, query, id).Scan(&student.ID, &student.Name, &student.CreatedAt)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get student by id: %w", err)
	}

	return &student, nil
}

// GetByIDs obtiene varios alumnos de una vez, indexados por ID.
func (r *StudentRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*model.Student, error) {
	students := make(map[uuid.UUID]*model.Student, len(ids))
	if len(ids) == 0 {
		return students, nil
	}

	query := `
		SELECT id, name, created_at
		FROM students
		WHERE id = ANY($1)
	`

	rows, err := r.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get students by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var student model.Student
		if err := rows.Scan(&student.ID, &student.Name, &student.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students[student.ID] = &student
	}

	return students, rows.Err()
}
