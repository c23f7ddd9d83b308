package callbacks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/valegrete/academia_bot/internal/attendance"
	"github.com/valegrete/academia_bot/internal/controller/callbacks/common/formatting"
	"github.com/valegrete/academia_bot/internal/controller/callbacks/common/keyboard"
	"github.com/valegrete/academia_bot/internal/controller/state"
	"github.com/valegrete/academia_bot/internal/model"
	"github.com/valegrete/academia_bot/internal/service"
)

// parseClassDate parsea "class_id:2025-06-23[:resto]". Devuelve el
// resto sin consumir para los callbacks con más campos.
func parseClassDate(param string) (uuid.UUID, time.Time, string, error) {
	parts := strings.SplitN(param, ":", 3)
	if len(parts) < 2 {
		return uuid.Nil, time.Time{}, "", fmt.Errorf("malformed callback param %q", param)
	}
	classID, err := uuid.Parse(parts[0])
	if err != nil {
		return uuid.Nil, time.Time{}, "", fmt.Errorf("parse class id: %w", err)
	}
	date, err := parseDate(parts[1])
	if err != nil {
		return uuid.Nil, time.Time{}, "", fmt.Errorf("parse date: %w", err)
	}
	rest := ""
	if len(parts) == 3 {
		rest = parts[2]
	}
	return classID, date, rest, nil
}

// renderSheet arma la hoja de asistencia: una fila por alumno con su
// estado actual y los botones para marcarlo.
func (h *Handler) renderSheet(ctx context.Context, teacher *model.Teacher, classID uuid.UUID, date time.Time) (string, *models.InlineKeyboardMarkup, error) {
	entries, err := h.attendanceService.Sheet(ctx, teacher.ID, classID, date)
	if err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 Asistencia — %s\n\n", formatting.FormatDateWithWeekday(date)))

	kb := keyboard.NewBuilder()
	for _, entry := range entries {
		display := formatting.GetAttendanceStatusDisplay(entry.Record.Status)
		sb.WriteString(fmt.Sprintf("%s %s — %s\n", display.Emoji, entry.Student.Name, display.Text))

		prefix := classID.String() + ":" + formatDateParam(date) + ":" + entry.Student.ID.String()
		kb.Row(
			keyboard.Button(entry.Student.Name, Sheet+classID.String()+":"+formatDateParam(date)),
			keyboard.Button("✅", Mark+prefix+":"+string(model.AttendancePresent)),
			keyboard.Button("❌", Mark+prefix+":"+string(model.AttendanceAbsent)),
			keyboard.Button("🕐", Mark+prefix+":"+string(model.AttendanceLate)),
			keyboard.Button("📝", Justify+prefix),
		)
	}

	classDate := classID.String() + ":" + formatDateParam(date)
	kb.Row(
		keyboard.Button("📊 Resumen", Summary+classDate),
		keyboard.Button("📨 Justificaciones", Pending+classDate),
	)
	kb.Row(keyboard.Button("⬅️ Agenda", Day+formatDateParam(date)))

	return sb.String(), kb.Build(), nil
}

func (h *Handler) handleSheet(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, teacher *model.Teacher, param string) {
	classID, date, _, err := parseClassDate(param)
	if err != nil {
		h.logger.Warn("Bad sheet callback", zap.String("param", param), zap.Error(err))
		return
	}

	text, markup, err := h.renderSheet(ctx, teacher, classID, date)
	if err != nil {
		h.replySheetError(ctx, b, callback, err)
		return
	}
	h.edit(ctx, b, callback, text, markup)
}

func (h *Handler) handleMark(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, teacher *model.Teacher, param string) {
	classID, date, rest, err := parseClassDate(param)
	if err != nil {
		h.logger.Warn("Bad mark callback", zap.String("param", param), zap.Error(err))
		return
	}
	fields := strings.SplitN(rest, ":", 2)
	if len(fields) != 2 {
		h.logger.Warn("Bad mark callback", zap.String("param", param))
		return
	}
	studentID, err := uuid.Parse(fields[0])
	if err != nil {
		h.logger.Warn("Bad mark callback", zap.String("param", param), zap.Error(err))
		return
	}
	status := model.AttendanceStatus(fields[1])

	if _, err := h.attendanceService.Mark(ctx, teacher.ID, classID, date, studentID, status); err != nil {
		var terr *attendance.TransitionError
		if errors.As(err, &terr) {
			h.reply(ctx, b, callback, fmt.Sprintf("⚠️ Transición no permitida: %s", terr.Reason))
			return
		}
		h.replySheetError(ctx, b, callback, err)
		return
	}

	// Redibujamos la hoja con el estado nuevo.
	text, markup, err := h.renderSheet(ctx, teacher, classID, date)
	if err != nil {
		h.replySheetError(ctx, b, callback, err)
		return
	}
	h.edit(ctx, b, callback, text, markup)
}

func (h *Handler) handleSummary(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, teacher *model.Teacher, param string) {
	classID, date, _, err := parseClassDate(param)
	if err != nil {
		h.logger.Warn("Bad summary callback", zap.String("param", param), zap.Error(err))
		return
	}

	summary, err := h.attendanceService.SessionSummary(ctx, classID, date)
	if err != nil {
		h.logger.Error("Failed to summarize session", zap.Error(err))
		h.reply(ctx, b, callback, "❌ No se pudo calcular el resumen.")
		return
	}

	text := fmt.Sprintf(
		"📊 Resumen del %s\n\n"+
			"✅ Presentes: %d\n"+
			"❌ Ausentes: %d\n"+
			"🕐 Tarde: %d\n"+
			"📝 Justificados: %d\n"+
			"⬜ Sin marcar: %d",
		formatting.FormatDate(date),
		summary.Present, summary.Absent, summary.Late, summary.Justified, summary.Unmarked)
	if summary.PendingJustified > 0 {
		text += fmt.Sprintf("\n\n⏳ %d justificación(es) aún pendiente(s): el recuento no es definitivo.", summary.PendingJustified)
	}

	markup := keyboard.NewBuilder().
		Row(keyboard.Button("⬅️ Volver", Sheet+classID.String()+":"+formatDateParam(date))).
		Build()
	h.edit(ctx, b, callback, text, markup)
}

// handleJustifyPrompt inicia el diálogo: guardamos a quién se
// justifica y esperamos el motivo como siguiente mensaje de texto.
func (h *Handler) handleJustifyPrompt(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, teacher *model.Teacher, param string) {
	classID, date, rest, err := parseClassDate(param)
	if err != nil || rest == "" {
		h.logger.Warn("Bad justify callback", zap.String("param", param), zap.Error(err))
		return
	}
	studentID, err := uuid.Parse(rest)
	if err != nil {
		h.logger.Warn("Bad justify callback", zap.String("param", param), zap.Error(err))
		return
	}

	telegramID := callback.From.ID
	h.stateManager.SetState(telegramID, state.StateJustifyReason)
	h.stateManager.SetData(telegramID, "justify_class_id", classID.String())
	h.stateManager.SetData(telegramID, "justify_date", formatDateParam(date))
	h.stateManager.SetData(telegramID, "justify_student_id", studentID.String())

	h.reply(ctx, b, callback,
		"📝 Escribe el motivo de la justificación.\n"+
			"El alumno debe estar marcado como ausente. Usa /cancelar para salir.")
}

func (h *Handler) replySheetError(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, err error) {
	switch {
	case errors.Is(err, service.ErrNotEligible):
		h.reply(ctx, b, callback, "🚫 No puedes pasar lista en esta clase para esa fecha.")
	case errors.Is(err, service.ErrClassNotFound):
		h.reply(ctx, b, callback, "❌ La clase ya no existe.")
	case errors.Is(err, service.ErrStudentNotInClass):
		h.reply(ctx, b, callback, "❌ Ese alumno no está matriculado en la clase.")
	default:
		h.logger.Error("Attendance sheet error", zap.Error(err))
		h.reply(ctx, b, callback, "❌ Algo salió mal. Inténtalo más tarde.")
	}
}
