package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/valegrete/academia_bot/internal/attendance"
	"github.com/valegrete/academia_bot/internal/model"
	"github.com/valegrete/academia_bot/internal/repository"
	"github.com/valegrete/academia_bot/internal/schedule"
)

var (
	ErrClassNotFound     = errors.New("class not found")
	ErrNotEligible       = errors.New("teacher cannot take attendance for this class on this date")
	ErrStudentNotInClass = errors.New("student is not enrolled in this class")
	ErrRequestNotFound   = errors.New("justification request not found")
)

type AttendanceService struct {
	classRepo         *repository.ClassRepository
	studentRepo       *repository.StudentRepository
	attendanceRepo    *repository.AttendanceRepository
	justificationRepo *repository.JustificationRepository
	logger            *zap.Logger
}

func NewAttendanceService(
	classRepo *repository.ClassRepository,
	studentRepo *repository.StudentRepository,
	attendanceRepo *repository.AttendanceRepository,
	justificationRepo *repository.JustificationRepository,
	logger *zap.Logger,
) *AttendanceService {
	return &AttendanceService{
		classRepo:         classRepo,
		studentRepo:       studentRepo,
		attendanceRepo:    attendanceRepo,
		justificationRepo: justificationRepo,
		logger:            logger,
	}
}

// SheetEntry es una fila de la hoja de asistencia: alumno más su
// registro (sintetizado como Unmarked si aún no se marcó nada).
type SheetEntry struct {
	Student *model.Student
	Record  model.AttendanceRecord
}

// eligibleClass verifica que el profesor pueda pasar lista en esa clase
// y fecha, con la misma regla que usa la agenda: titular o colaborador
// con permiso, y un slot aplicable al día.
func (s *AttendanceService) eligibleClass(ctx context.Context, teacherID, classID uuid.UUID, date time.Time) (*model.Class, error) {
	class, err := s.classRepo.GetByID(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("get class: %w", err)
	}
	if class == nil {
		return nil, ErrClassNotFound
	}

	res := schedule.ResolveForTeacher([]*model.Class{class}, teacherID, date)
	if len(res.Classes) == 0 {
		s.logger.Info("Attendance denied",
			zap.String("teacher_id", teacherID.String()),
			zap.String("class_id", classID.String()),
			zap.Time("date", date),
			zap.Int("slot_warnings", len(res.Warnings)))
		return nil, ErrNotEligible
	}

	return class, nil
}

// Sheet arma la hoja de asistencia de una sesión: todos los alumnos de
// la clase con su estado actual, ordenados por nombre. Los registros
// inexistentes se sintetizan como Unmarked sin persistirlos.
func (s *AttendanceService) Sheet(ctx context.Context, teacherID, classID uuid.UUID, date time.Time) ([]SheetEntry, error) {
	class, err := s.eligibleClass(ctx, teacherID, classID, date)
	if err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.GetByClassDate(ctx, classID, date)
	if err != nil {
		return nil, fmt.Errorf("load attendance: %w", err)
	}
	byStudent := make(map[uuid.UUID]model.AttendanceRecord, len(records))
	for _, record := range records {
		byStudent[record.StudentID] = record
	}

	students, err := s.studentRepo.GetByIDs(ctx, class.StudentIDs)
	if err != nil {
		return nil, fmt.Errorf("load students: %w", err)
	}

	entries := make([]SheetEntry, 0, len(class.StudentIDs))
	for _, studentID := range class.StudentIDs {
		student := students[studentID]
		if student == nil {
			// Alumno matriculado pero borrado del padrón: lo saltamos.
			s.logger.Warn("Enrolled student missing",
				zap.String("class_id", classID.String()),
				zap.String("student_id", studentID.String()))
			continue
		}

		record, ok := byStudent[studentID]
		if !ok {
			record = model.AttendanceRecord{
				ClassID:   classID,
				StudentID: studentID,
				Date:      date,
				Status:    model.AttendanceUnmarked,
			}
		}
		entries = append(entries, SheetEntry{Student: student, Record: record})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Student.Name < entries[j].Student.Name
	})

	return entries, nil
}

// Mark asigna un estado directo (presente/ausente/tarde/sin marcar) al
// alumno en la sesión, previa verificación de elegibilidad del profesor.
func (s *AttendanceService) Mark(ctx context.Context, teacherID, classID uuid.UUID, date time.Time, studentID uuid.UUID, status model.AttendanceStatus) (*model.AttendanceRecord, error) {
	class, err := s.eligibleClass(ctx, teacherID, classID, date)
	if err != nil {
		return nil, err
	}
	if !enrolled(class, studentID) {
		return nil, ErrStudentNotInClass
	}

	current, err := s.attendanceRepo.Get(ctx, classID, date, studentID)
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	if current == nil {
		current = &model.AttendanceRecord{
			ClassID:   classID,
			StudentID: studentID,
			Date:      date,
			Status:    model.AttendanceUnmarked,
		}
	}

	updated, err := attendance.Apply(*current, status, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.attendanceRepo.Upsert(ctx, &updated); err != nil {
		return nil, fmt.Errorf("save record: %w", err)
	}

	s.logger.Info("Attendance marked",
		zap.String("class_id", classID.String()),
		zap.String("student_id", studentID.String()),
		zap.Time("date", date),
		zap.String("status", string(status)),
		zap.String("by_teacher", teacherID.String()))

	return &updated, nil
}

// Justify crea la solicitud de justificación de una ausencia ya
// registrada y pasa el registro a justificado provisional.
func (s *AttendanceService) Justify(ctx context.Context, classID uuid.UUID, date time.Time, studentID uuid.UUID, reason string) (*model.JustificationRequest, error) {
	current, err := s.attendanceRepo.Get(ctx, classID, date, studentID)
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	if current == nil {
		return nil, fmt.Errorf("no absence recorded for this student and session")
	}

	updated, req, err := attendance.NewJustification(*current, reason, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	// La solicitud primero: el registro la referencia.
	if err := s.justificationRepo.Create(ctx, &req); err != nil {
		return nil, fmt.Errorf("save justification: %w", err)
	}
	if err := s.attendanceRepo.Upsert(ctx, &updated); err != nil {
		return nil, fmt.Errorf("save record: %w", err)
	}

	s.logger.Info("Justification requested",
		zap.String("request_id", req.ID.String()),
		zap.String("class_id", classID.String()),
		zap.String("student_id", studentID.String()),
		zap.Time("expires_at", req.ExpiresAt))

	return &req, nil
}

// ResolveJustification aprueba o rechaza una solicitud pendiente.
// El profesor debe ser elegible para la clase y fecha de la solicitud.
func (s *AttendanceService) ResolveJustification(ctx context.Context, teacherID, requestID uuid.UUID, verdict model.JustificationStatus) error {
	req, err := s.justificationRepo.GetByID(ctx, requestID)
	if err != nil {
		return fmt.Errorf("get request: %w", err)
	}
	if req == nil {
		return ErrRequestNotFound
	}

	if _, err := s.eligibleClass(ctx, teacherID, req.ClassID, req.Date); err != nil {
		return err
	}

	return s.resolve(ctx, req, verdict, time.Now().UTC())
}

// ExpireStale rechaza de oficio las solicitudes pendientes vencidas.
// Devuelve cuántas se rechazaron.
func (s *AttendanceService) ExpireStale(ctx context.Context, now time.Time) (int, error) {
	expired, err := s.justificationRepo.ListExpiredPending(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("list expired: %w", err)
	}

	rejected := 0
	for i := range expired {
		req := expired[i]
		if err := s.resolve(ctx, &req, model.JustificationRejected, now); err != nil {
			s.logger.Error("Failed to expire justification",
				zap.String("request_id", req.ID.String()),
				zap.Error(err))
			continue
		}
		rejected++
	}

	return rejected, nil
}

func (s *AttendanceService) resolve(ctx context.Context, req *model.JustificationRequest, verdict model.JustificationStatus, now time.Time) error {
	record, err := s.attendanceRepo.Get(ctx, req.ClassID, req.Date, req.StudentID)
	if err != nil {
		return fmt.Errorf("get record: %w", err)
	}
	if record == nil {
		return fmt.Errorf("attendance record for request %s not found", req.ID)
	}

	updatedRecord, updatedReq, err := attendance.ResolveJustification(*record, *req, verdict, now)
	if err != nil {
		return err
	}

	if err := s.justificationRepo.Update(ctx, &updatedReq); err != nil {
		return fmt.Errorf("save request: %w", err)
	}
	if err := s.attendanceRepo.Upsert(ctx, &updatedRecord); err != nil {
		return fmt.Errorf("save record: %w", err)
	}

	s.logger.Info("Justification resolved",
		zap.String("request_id", req.ID.String()),
		zap.String("verdict", string(verdict)))

	return nil
}

// PendingJustifications devuelve las solicitudes pendientes de una
// sesión, con los nombres de los alumnos para mostrarlas. El profesor
// debe ser elegible para la clase y fecha.
func (s *AttendanceService) PendingJustifications(ctx context.Context, teacherID, classID uuid.UUID, date time.Time) ([]model.JustificationRequest, map[uuid.UUID]string, error) {
	if _, err := s.eligibleClass(ctx, teacherID, classID, date); err != nil {
		return nil, nil, err
	}

	requests, err := s.justificationRepo.GetByClassDate(ctx, classID, date)
	if err != nil {
		return nil, nil, fmt.Errorf("load justifications: %w", err)
	}

	var pending []model.JustificationRequest
	ids := make([]uuid.UUID, 0, len(requests))
	for _, req := range requests {
		if req.Status == model.JustificationPending {
			pending = append(pending, req)
			ids = append(ids, req.StudentID)
		}
	}

	students, err := s.studentRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("load students: %w", err)
	}
	names := make(map[uuid.UUID]string, len(students))
	for id, student := range students {
		names[id] = student.Name
	}

	return pending, names, nil
}

// SessionSummary cuenta los estados de una sesión, distinguiendo las
// justificaciones provisionales de las firmes.
func (s *AttendanceService) SessionSummary(ctx context.Context, classID uuid.UUID, date time.Time) (attendance.Summary, error) {
	records, err := s.attendanceRepo.GetByClassDate(ctx, classID, date)
	if err != nil {
		return attendance.Summary{}, fmt.Errorf("load attendance: %w", err)
	}
	requests, err := s.justificationRepo.GetByClassDate(ctx, classID, date)
	if err != nil {
		return attendance.Summary{}, fmt.Errorf("load justifications: %w", err)
	}
	return attendance.Summarize(records, requests), nil
}

func enrolled(class *model.Class, studentID uuid.UUID) bool {
	for _, id := range class.StudentIDs {
		if id == studentID {
			return true
		}
	}
	return false
}
