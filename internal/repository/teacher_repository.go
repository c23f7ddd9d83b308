package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/valegrete/academia_bot/internal/model"
	"github.com/valegrete/academia_bot/internal/repository/base"
)

type TeacherRepository struct {
	*base.Repository
}

func NewTeacherRepository(pool *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{Repository: base.NewRepository(pool)}
}

// Create registra un profesor nuevo.
func (r *TeacherRepository) Create(ctx context.Context, teacher *model.Teacher) error {
	if teacher.ID == uuid.Nil {
		teacher.ID = uuid.New()
	}

	query := `
		INSERT INTO teachers (id, telegram_id, name)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	err := r.QueryRow(ctx, query, teacher.ID, teacher.TelegramID, teacher.Name).
		Scan(&teacher.CreatedAt)
	if err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}

	return nil
}

// GetByID obtiene un profesor por ID.
func (r *TeacherRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Teacher, error) {
	query := `
		SELECT id, telegram_id, name, created_at
		FROM teachers
		WHERE id = $1
	`

	var teacher model.Teacher
	err := r.QueryRow(ctx, query, id).Scan(
		&teacher.ID,
		&teacher.TelegramID,
		&teacher.Name,
		&teacher.CreatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get teacher by id: %w", err)
	}

	return &teacher, nil
}

// GetByTelegramID obtiene el profesor vinculado a una cuenta de Telegram.
func (r *TeacherRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Teacher, error) {
	query := `
		SELECT id, telegram_id, name, created_at
		FROM teachers
		WHERE telegram_id = $1
	`

	var teacher model.Teacher
	err := r.QueryRow(ctx, query, telegramID).Scan(
		&teacher.ID,
		&teacher.TelegramID,
		&teacher.Name,
		&teacher.CreatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get teacher by telegram id: %w", err)
	}

	return &teacher, nil
}

// LinkTelegram vincula la cuenta de Telegram a un profesor existente.
func (r *TeacherRepository) LinkTelegram(ctx context.Context, id uuid.UUID, telegramID int64) error {
	affected, err := r.ExecAffected(ctx, `
		UPDATE teachers SET telegram_id = $1 WHERE id = $2
	`, telegramID, id)
	if err != nil {
		return fmt.Errorf("link telegram: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("teacher not found")
	}
	return nil
}
