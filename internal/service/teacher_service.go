package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/valegrete/academia_bot/internal/model"
	"github.com/valegrete/academia_bot/internal/repository"
)

type TeacherService struct {
	teacherRepo *repository.TeacherRepository
	logger      *zap.Logger
}

func NewTeacherService(teacherRepo *repository.TeacherRepository, logger *zap.Logger) *TeacherService {
	return &TeacherService{
		teacherRepo: teacherRepo,
		logger:      logger,
	}
}

// ByTelegramID devuelve el profesor vinculado a esa cuenta, o nil.
func (s *TeacherService) ByTelegramID(ctx context.Context, telegramID int64) (*model.Teacher, error) {
	return s.teacherRepo.GetByTelegramID(ctx, telegramID)
}

// Register da de alta al profesor la primera vez que habla con el bot.
// Si la cuenta ya estaba vinculada devuelve el registro existente.
func (s *TeacherService) Register(ctx context.Context, telegramID int64, name string) (*model.Teacher, error) {
	existing, err := s.teacherRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get teacher: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	teacher := &model.Teacher{
		TelegramID: telegramID,
		Name:       name,
	}
	if err := s.teacherRepo.Create(ctx, teacher); err != nil {
		return nil, fmt.Errorf("register teacher: %w", err)
	}

	s.logger.Info("Teacher registered",
		zap.String("teacher_id", teacher.ID.String()),
		zap.Int64("telegram_id", telegramID),
		zap.String("name", name))

	return teacher, nil
}
