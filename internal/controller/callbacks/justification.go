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
	"github.com/valegrete/academia_bot/internal/model"
)

// renderPendingList arma la lista de justificaciones pendientes de una
// sesión con sus botones de aprobar/rechazar.
func (h *Handler) renderPendingList(ctx context.Context, teacher *model.Teacher, classID uuid.UUID, date time.Time) (string, *models.InlineKeyboardMarkup, error) {
	pending, names, err := h.attendanceService.PendingJustifications(ctx, teacher.ID, classID, date)
	if err != nil {
		return "", nil, err
	}

	classDate := classID.String() + ":" + formatDateParam(date)
	kb := keyboard.NewBuilder()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📨 Justificaciones pendientes — %s\n\n", formatting.FormatDate(date)))

	if len(pending) == 0 {
		sb.WriteString("No hay solicitudes pendientes.")
	}

	for i, req := range pending {
		name := names[req.StudentID]
		if name == "" {
			name = req.StudentID.String()
		}
		sb.WriteString(fmt.Sprintf("%d. %s — %q (vence %s)\n",
			i+1, name, req.Reason, formatting.FormatDate(req.ExpiresAt)))

		suffix := req.ID.String() + ":" + classDate
		kb.Row(
			keyboard.Button(fmt.Sprintf("%d. %s", i+1, name), Pending+classDate),
			keyboard.Button("✅ Aprobar", Approve+suffix),
			keyboard.Button("❌ Rechazar", Reject+suffix),
		)
	}

	kb.Row(keyboard.Button("⬅️ Volver", Sheet+classDate))
	return sb.String(), kb.Build(), nil
}

func (h *Handler) handlePendingList(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, teacher *model.Teacher, param string) {
	classID, date, _, err := parseClassDate(param)
	if err != nil {
		h.logger.Warn("Bad pending callback", zap.String("param", param), zap.Error(err))
		return
	}

	text, markup, err := h.renderPendingList(ctx, teacher, classID, date)
	if err != nil {
		h.replySheetError(ctx, b, callback, err)
		return
	}
	h.edit(ctx, b, callback, text, markup)
}

func (h *Handler) handleResolve(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, teacher *model.Teacher, param string, verdict model.JustificationStatus) {
	parts := strings.SplitN(param, ":", 2)
	if len(parts) != 2 {
		h.logger.Warn("Bad resolve callback", zap.String("param", param))
		return
	}
	requestID, err := uuid.Parse(parts[0])
	if err != nil {
		h.logger.Warn("Bad resolve callback", zap.String("param", param), zap.Error(err))
		return
	}
	classID, date, _, err := parseClassDate(parts[1])
	if err != nil {
		h.logger.Warn("Bad resolve callback", zap.String("param", param), zap.Error(err))
		return
	}

	err = h.attendanceService.ResolveJustification(ctx, teacher.ID, requestID, verdict)
	if err != nil {
		var terr *attendance.TransitionError
		if errors.As(err, &terr) {
			h.reply(ctx, b, callback, "⚠️ Esa solicitud ya fue resuelta.")
		} else {
			h.replySheetError(ctx, b, callback, err)
			return
		}
	}

	// Redibujamos la lista: la solicitud resuelta desaparece.
	text, markup, err := h.renderPendingList(ctx, teacher, classID, date)
	if err != nil {
		h.replySheetError(ctx, b, callback, err)
		return
	}
	h.edit(ctx, b, callback, text, markup)
}
