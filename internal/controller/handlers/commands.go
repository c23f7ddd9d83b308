package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/valegrete/academia_bot/internal/controller/callbacks"
	"github.com/valegrete/academia_bot/internal/controller/state"
	"github.com/valegrete/academia_bot/internal/model"
)

// HandleStart procesa /start: registra (o recupera) al profesor.
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	from := update.Message.From
	name := strings.TrimSpace(from.FirstName + " " + from.LastName)

	teacher, err := h.teacherService.Register(ctx, from.ID, name)
	if err != nil {
		h.logger.Error("Failed to register teacher", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Ocurrió un error al registrarte. Inténtalo más tarde.",
		})
		return
	}

	welcomeText := fmt.Sprintf(
		"👋 ¡Hola, %s!\n\n"+
			"Este es el asistente de la academia: consulta tu agenda, "+
			"pasa lista y gestiona justificaciones desde aquí.\n\n"+
			"Comandos:\n"+
			"/hoy - Tus clases de hoy\n"+
			"/semana - Tu semana en imagen\n"+
			"/ayuda - Ayuda\n"+
			"/cancelar - Cancelar el diálogo actual",
		teacher.Name,
	)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   welcomeText,
	})
}

// HandleAyuda procesa /ayuda.
func (h *Handlers) HandleAyuda(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Ayuda:\n\n" +
		"/hoy - Clases que puedes atender hoy, con avisos de solape\n" +
		"/semana - Imagen de tu semana\n" +
		"/cancelar - Cancelar el diálogo actual\n\n" +
		"Desde la agenda abre una clase para pasar lista: marca " +
		"presente ✅, ausente ❌ o tarde 🕐, y gestiona las " +
		"justificaciones 📝 de las ausencias."

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   helpText,
	})
}

// HandleHoy procesa /hoy: la agenda del día.
func (h *Handlers) HandleHoy(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	teacher, ok := h.requireTeacher(ctx, b, update)
	if !ok {
		return
	}

	now := time.Now().UTC()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	ds, err := h.scheduleService.ForTeacherOnDate(ctx, teacher.ID, date)
	if err != nil {
		h.logger.Error("Failed to resolve day", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ No se pudo cargar la agenda. Inténtalo más tarde.",
		})
		return
	}

	text, markup := callbacks.BuildDayView(ds)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        text,
		ReplyMarkup: markup,
	})
}

// HandleSemana procesa /semana delegando en el callback de semana.
func (h *Handlers) HandleSemana(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	teacher, ok := h.requireTeacher(ctx, b, update)
	if !ok {
		return
	}

	ds, err := h.scheduleService.ForTeacherOnDate(ctx, teacher.ID, time.Now().UTC())
	if err == nil {
		_, markup := callbacks.BuildDayView(ds)
		// El botón "Ver semana" del teclado dispara el render.
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      update.Message.Chat.ID,
			Text:        "🗓 Elige desde la agenda, o toca \"Ver semana\":",
			ReplyMarkup: markup,
		})
		return
	}

	h.logger.Error("Failed to resolve day", zap.Error(err))
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "❌ No se pudo cargar la semana. Inténtalo más tarde.",
	})
}

// HandleCancelar procesa /cancelar: aborta el diálogo activo.
func (h *Handlers) HandleCancelar(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.stateManager.ClearState(update.Message.From.ID)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "👌 Diálogo cancelado.",
	})
}

// HandleTextMessage procesa mensajes de texto libres según el estado
// del diálogo. Hoy sólo existe un diálogo: el motivo de justificación.
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	if h.stateManager.GetState(telegramID) != state.StateJustifyReason {
		return
	}

	reason := strings.TrimSpace(update.Message.Text)
	if reason == "" {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "El motivo no puede estar vacío. Escribe el motivo o usa /cancelar.",
		})
		return
	}

	classID, date, studentID, err := h.justifyContext(telegramID)
	if err != nil {
		h.logger.Error("Broken justify dialog state", zap.Error(err))
		h.stateManager.ClearState(telegramID)
		return
	}

	req, err := h.attendanceService.Justify(ctx, classID, date, studentID, reason)
	if err != nil {
		h.logger.Warn("Failed to create justification", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "⚠️ No se pudo crear la justificación. El alumno debe estar marcado como ausente.",
		})
		h.stateManager.ClearState(telegramID)
		return
	}

	h.stateManager.ClearState(telegramID)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text: fmt.Sprintf(
			"📝 Justificación registrada (pendiente de aprobación).\n"+
				"Vence el %s.", req.ExpiresAt.Format("02/01/2006")),
	})
}

// justifyContext recupera los datos guardados por el botón 📝.
func (h *Handlers) justifyContext(telegramID int64) (uuid.UUID, time.Time, uuid.UUID, error) {
	rawClass, ok := h.stateManager.GetData(telegramID, "justify_class_id")
	if !ok {
		return uuid.Nil, time.Time{}, uuid.Nil, fmt.Errorf("missing justify_class_id")
	}
	rawDate, ok := h.stateManager.GetData(telegramID, "justify_date")
	if !ok {
		return uuid.Nil, time.Time{}, uuid.Nil, fmt.Errorf("missing justify_date")
	}
	rawStudent, ok := h.stateManager.GetData(telegramID, "justify_student_id")
	if !ok {
		return uuid.Nil, time.Time{}, uuid.Nil, fmt.Errorf("missing justify_student_id")
	}

	classID, err := uuid.Parse(rawClass.(string))
	if err != nil {
		return uuid.Nil, time.Time{}, uuid.Nil, fmt.Errorf("parse class id: %w", err)
	}
	date, err := time.ParseInLocation("2006-01-02", rawDate.(string), time.UTC)
	if err != nil {
		return uuid.Nil, time.Time{}, uuid.Nil, fmt.Errorf("parse date: %w", err)
	}
	studentID, err := uuid.Parse(rawStudent.(string))
	if err != nil {
		return uuid.Nil, time.Time{}, uuid.Nil, fmt.Errorf("parse student id: %w", err)
	}

	return classID, date, studentID, nil
}

// requireTeacher busca al profesor del mensaje; si no está registrado
// le pide usar /start.
func (h *Handlers) requireTeacher(ctx context.Context, b *bot.Bot, update *models.Update) (*model.Teacher, bool) {
	t, err := h.teacherService.ByTelegramID(ctx, update.Message.From.ID)
	if err != nil {
		h.logger.Error("Failed to load teacher", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Algo salió mal. Inténtalo más tarde.",
		})
		return nil, false
	}
	if t == nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "Usa /start para registrarte primero.",
		})
		return nil, false
	}
	return t, true
}
