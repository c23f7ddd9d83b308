package handlers

import (
	"go.uber.org/zap"

	"github.com/valegrete/academia_bot/internal/controller/state"
	"github.com/valegrete/academia_bot/internal/service"
)

// Handlers contiene las dependencias de los comandos del bot.
type Handlers struct {
	teacherService    *service.TeacherService
	scheduleService   *service.ScheduleService
	attendanceService *service.AttendanceService
	stateManager      *state.Manager
	logger            *zap.Logger
}

// NewHandlers crea el manejador de comandos.
func NewHandlers(
	teacherService *service.TeacherService,
	scheduleService *service.ScheduleService,
	attendanceService *service.AttendanceService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		teacherService:    teacherService,
		scheduleService:   scheduleService,
		attendanceService: attendanceService,
		stateManager:      stateManager,
		logger:            logger,
	}
}
