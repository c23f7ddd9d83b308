package callbacks

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/valegrete/academia_bot/internal/controller/callbacks/common"
	"github.com/valegrete/academia_bot/internal/controller/callbacks/common/formatting"
	"github.com/valegrete/academia_bot/internal/controller/callbacks/common/keyboard"
	"github.com/valegrete/academia_bot/internal/model"
	"github.com/valegrete/academia_bot/internal/service"
)

// BuildDayView arma texto y teclado de la agenda de un día. Lo usan
// tanto el comando /hoy como la navegación por callbacks.
func BuildDayView(ds *service.DaySchedule) (string, *models.InlineKeyboardMarkup) {
	text := formatting.FormatDaySchedule(ds.Date, ds.Resolution, ds.Conflicts)

	kb := keyboard.NewBuilder()
	for _, rc := range ds.Resolution.Classes {
		kb.Row(keyboard.Button(
			fmt.Sprintf("📋 %s", rc.Class.Name),
			Sheet+rc.Class.ID.String()+":"+formatDateParam(ds.Date),
		))
	}

	prev := ds.Date.AddDate(0, 0, -1)
	next := ds.Date.AddDate(0, 0, 1)
	kb.Row(
		keyboard.Button("⬅️", Day+formatDateParam(prev)),
		keyboard.Button("Hoy", Day+formatDateParam(today())),
		keyboard.Button("➡️", Day+formatDateParam(next)),
	)
	kb.Row(keyboard.Button("🗓 Ver semana", Week+formatDateParam(weekStart(ds.Date))))

	return text, kb.Build()
}

func (h *Handler) handleDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, teacher *model.Teacher, param string) {
	date, err := parseDate(param)
	if err != nil {
		h.logger.Warn("Bad day callback", zap.String("param", param))
		return
	}

	ds, err := h.scheduleService.ForTeacherOnDate(ctx, teacher.ID, date)
	if err != nil {
		h.logger.Error("Failed to resolve day", zap.Error(err))
		h.reply(ctx, b, callback, "❌ No se pudo cargar la agenda. Inténtalo más tarde.")
		return
	}

	text, markup := BuildDayView(ds)
	h.edit(ctx, b, callback, text, markup)
}

func (h *Handler) handleWeek(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, teacher *model.Teacher, param string) {
	start, err := parseDate(param)
	if err != nil {
		h.logger.Warn("Bad week callback", zap.String("param", param))
		return
	}

	days, err := h.scheduleService.WeekForTeacher(ctx, teacher.ID, start)
	if err != nil {
		h.logger.Error("Failed to resolve week", zap.Error(err))
		h.reply(ctx, b, callback, "❌ No se pudo cargar la semana. Inténtalo más tarde.")
		return
	}

	png, err := common.RenderWeekImage(toWeekDays(days), today())
	if err != nil {
		h.logger.Error("Failed to render week image", zap.Error(err))
		h.reply(ctx, b, callback, "❌ No se pudo generar la imagen de la semana.")
		return
	}

	if callback.Message.Message == nil {
		return
	}
	b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: callback.Message.Message.Chat.ID,
		Photo: &models.InputFileUpload{
			Filename: "semana.png",
			Data:     bytes.NewReader(png),
		},
		Caption: fmt.Sprintf("Semana del %s", formatting.FormatDate(start)),
	})
}

// toWeekDays convierte la agenda resuelta en bloques de dibujo,
// marcando los slots que participan en algún conflicto.
func toWeekDays(days []*service.DaySchedule) []common.WeekDay {
	out := make([]common.WeekDay, 0, len(days))
	for _, ds := range days {
		conflicted := make(map[string]bool)
		for _, c := range ds.Conflicts {
			conflicted[c.ClassA.ID.String()+c.SlotA.String()] = true
			conflicted[c.ClassB.ID.String()+c.SlotB.String()] = true
		}

		day := common.WeekDay{Date: ds.Date}
		for _, rc := range ds.Resolution.Classes {
			for _, slot := range rc.Slots {
				day.Blocks = append(day.Blocks, common.WeekBlock{
					Name:        rc.Class.Name,
					StartMinute: slot.StartMinute,
					EndMinute:   slot.EndMinute,
					Emergency:   rc.Class.IsEmergency,
					Conflict:    conflicted[rc.Class.ID.String()+slot.String()],
				})
			}
		}
		out = append(out, day)
	}
	return out
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// weekStart devuelve el domingo de la semana de la fecha dada.
func weekStart(date time.Time) time.Time {
	return date.AddDate(0, 0, -int(date.Weekday()))
}
