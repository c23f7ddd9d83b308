package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/valegrete/academia_bot/internal/model"
	"github.com/valegrete/academia_bot/internal/repository"
	"github.com/valegrete/academia_bot/internal/schedule"
)

type ScheduleService struct {
	classRepo *repository.ClassRepository
	logger    *zap.Logger
}

func NewScheduleService(classRepo *repository.ClassRepository, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{
		classRepo: classRepo,
		logger:    logger,
	}
}

// DaySchedule es la agenda resuelta de un profesor para una fecha.
type DaySchedule struct {
	Date       time.Time
	Resolution *schedule.Resolution
	Conflicts  []schedule.Conflict
}

// ForTeacherOnDate carga el roster y resuelve qué clases puede atender
// el profesor ese día, con el diagnóstico de solapes. Los avisos de
// slots ilegibles se registran aquí: son un problema de calidad de
// datos, no un fallo de la consulta.
func (s *ScheduleService) ForTeacherOnDate(ctx context.Context, teacherID uuid.UUID, date time.Time) (*DaySchedule, error) {
	roster, err := s.classRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}

	return s.resolve(roster, teacherID, date), nil
}

// WeekForTeacher resuelve los siete días de la semana que empieza en
// weekStart, cargando el roster una sola vez.
func (s *ScheduleService) WeekForTeacher(ctx context.Context, teacherID uuid.UUID, weekStart time.Time) ([]*DaySchedule, error) {
	roster, err := s.classRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}

	days := make([]*DaySchedule, 0, 7)
	for i := 0; i < 7; i++ {
		days = append(days, s.resolve(roster, teacherID, weekStart.AddDate(0, 0, i)))
	}
	return days, nil
}

func (s *ScheduleService) resolve(roster []*model.Class, teacherID uuid.UUID, date time.Time) *DaySchedule {
	res := schedule.ResolveForTeacher(roster, teacherID, date)

	for _, warning := range res.Warnings {
		fields := []zap.Field{
			zap.String("class_id", warning.ClassID.String()),
			zap.String("class_name", warning.ClassName),
			zap.String("teacher_id", teacherID.String()),
			zap.Time("date", date),
		}
		for _, err := range warning.Errs {
			fields = append(fields, zap.NamedError("slot_error", err))
		}
		s.logger.Warn("Class skipped: no readable slots", fields...)
	}

	conflicts := schedule.DetectConflicts(res.Classes)
	if len(conflicts) > 0 {
		s.logger.Info("Schedule conflicts detected",
			zap.String("teacher_id", teacherID.String()),
			zap.Time("date", date),
			zap.Int("conflicts", len(conflicts)))
	}

	return &DaySchedule{Date: date, Resolution: res, Conflicts: conflicts}
}
