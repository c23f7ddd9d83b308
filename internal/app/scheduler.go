package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/valegrete/academia_bot/internal/service"
)

// Scheduler gestiona las tareas de fondo del bot.
type Scheduler struct {
	attendanceService *service.AttendanceService
	logger            *zap.Logger
	stopChan          chan struct{}
}

// NewScheduler crea el planificador de tareas de fondo.
func NewScheduler(attendanceService *service.AttendanceService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		attendanceService: attendanceService,
		logger:            logger,
		stopChan:          make(chan struct{}),
	}
}

// Start lanza las tareas de fondo.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")

	go s.runJustificationExpiryTask(ctx)
}

// Stop detiene las tareas de fondo.
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runJustificationExpiryTask rechaza de oficio, cada hora, las
// solicitudes de justificación pendientes cuya ventana venció.
func (s *Scheduler) runJustificationExpiryTask(ctx context.Context) {
	// Primera pasada al arrancar.
	s.expireJustifications(ctx)

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.expireJustifications(ctx)
		case <-s.stopChan:
			s.logger.Info("Justification expiry task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Justification expiry task cancelled")
			return
		}
	}
}

func (s *Scheduler) expireJustifications(ctx context.Context) {
	rejected, err := s.attendanceService.ExpireStale(ctx, time.Now().UTC())
	if err != nil {
		s.logger.Error("Failed to expire justifications", zap.Error(err))
		return
	}

	if rejected > 0 {
		s.logger.Info("Expired pending justifications rejected",
			zap.Int("count", rejected))
	}
}
