package callbacks

import (
	"context"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/valegrete/academia_bot/internal/controller/state"
	"github.com/valegrete/academia_bot/internal/model"
	"github.com/valegrete/academia_bot/internal/service"
)

// ========================
// Formatos de callback data
// ========================

const (
	// Navegación de agenda
	Day  = "day:"  // day:2025-06-23
	Week = "week:" // week:2025-06-22 (domingo de inicio)

	// Hoja de asistencia
	Sheet   = "sheet:"   // sheet:class_id:2025-06-23
	Mark    = "mark:"    // mark:class_id:2025-06-23:student_id:present
	Summary = "summary:" // summary:class_id:2025-06-23

	// Justificaciones
	Justify = "justify:"  // justify:class_id:2025-06-23:student_id
	Pending = "justs:"    // justs:class_id:2025-06-23
	Approve = "japprove:" // japprove:request_id:class_id:2025-06-23
	Reject  = "jreject:"  // jreject:request_id:class_id:2025-06-23
)

const dateLayout = "2006-01-02"

// Handler contiene las dependencias de todos los callbacks del bot.
type Handler struct {
	teacherService    *service.TeacherService
	scheduleService   *service.ScheduleService
	attendanceService *service.AttendanceService
	stateManager      *state.Manager
	logger            *zap.Logger
}

func NewHandler(
	teacherService *service.TeacherService,
	scheduleService *service.ScheduleService,
	attendanceService *service.AttendanceService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		teacherService:    teacherService,
		scheduleService:   scheduleService,
		attendanceService: attendanceService,
		stateManager:      stateManager,
		logger:            logger,
	}
}

// HandleCallbackQuery distribuye cada callback a su manejador.
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	callback := update.CallbackQuery
	if callback == nil {
		return
	}
	data := callback.Data

	h.logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("telegram_id", callback.From.ID))

	// Siempre respondemos el callback para que el cliente no se quede
	// con el reloj girando.
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callback.ID,
	})

	teacher, err := h.teacherService.ByTelegramID(ctx, callback.From.ID)
	if err != nil {
		h.logger.Error("Failed to load teacher", zap.Error(err))
		return
	}
	if teacher == nil {
		h.reply(ctx, b, callback, "Usa /start para registrarte primero.")
		return
	}

	switch {
	case strings.HasPrefix(data, Day):
		h.handleDay(ctx, b, callback, teacher, strings.TrimPrefix(data, Day))
	case strings.HasPrefix(data, Week):
		h.handleWeek(ctx, b, callback, teacher, strings.TrimPrefix(data, Week))
	case strings.HasPrefix(data, Sheet):
		h.handleSheet(ctx, b, callback, teacher, strings.TrimPrefix(data, Sheet))
	case strings.HasPrefix(data, Mark):
		h.handleMark(ctx, b, callback, teacher, strings.TrimPrefix(data, Mark))
	case strings.HasPrefix(data, Summary):
		h.handleSummary(ctx, b, callback, teacher, strings.TrimPrefix(data, Summary))
	case strings.HasPrefix(data, Justify):
		h.handleJustifyPrompt(ctx, b, callback, teacher, strings.TrimPrefix(data, Justify))
	case strings.HasPrefix(data, Pending):
		h.handlePendingList(ctx, b, callback, teacher, strings.TrimPrefix(data, Pending))
	case strings.HasPrefix(data, Approve):
		h.handleResolve(ctx, b, callback, teacher, strings.TrimPrefix(data, Approve), model.JustificationApproved)
	case strings.HasPrefix(data, Reject):
		h.handleResolve(ctx, b, callback, teacher, strings.TrimPrefix(data, Reject), model.JustificationRejected)
	default:
		h.logger.Warn("Unknown callback", zap.String("data", data))
	}
}

// reply manda un mensaje simple al chat del callback.
func (h *Handler) reply(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, text string) {
	if callback.Message.Message == nil {
		return
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: callback.Message.Message.Chat.ID,
		Text:   text,
	})
}

// edit reemplaza el texto y teclado del mensaje del callback.
func (h *Handler) edit(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, text string, markup *models.InlineKeyboardMarkup) {
	if callback.Message.Message == nil {
		return
	}
	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      callback.Message.Message.Chat.ID,
		MessageID:   callback.Message.Message.ID,
		Text:        text,
		ReplyMarkup: markup,
	})
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}

func formatDateParam(t time.Time) string {
	return t.Format(dateLayout)
}
