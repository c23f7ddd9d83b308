package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/valegrete/academia_bot/internal/controller/callbacks"
	"github.com/valegrete/academia_bot/internal/controller/handlers"
	"github.com/valegrete/academia_bot/internal/controller/state"
	"github.com/valegrete/academia_bot/internal/service"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	teacherService *service.TeacherService,
	scheduleService *service.ScheduleService,
	attendanceService *service.AttendanceService,
	logger *zap.Logger,
) *BotController {
	// Gestor de estados de diálogo compartido entre comandos y callbacks
	stateManager := state.NewManager()

	cmdHandlers := handlers.NewHandlers(
		teacherService,
		scheduleService,
		attendanceService,
		stateManager,
		logger,
	)

	callbackHandler := callbacks.NewHandler(
		teacherService,
		scheduleService,
		attendanceService,
		stateManager,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers registra todos los manejadores del bot
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Comandos
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/ayuda", bot.MatchTypeExact, c.handlers.HandleAyuda)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/hoy", bot.MatchTypeExact, c.handlers.HandleHoy)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/semana", bot.MatchTypeExact, c.handlers.HandleSemana)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancelar", bot.MatchTypeExact, c.handlers.HandleCancelar)

	// Mensajes de texto libres (diálogos con estado)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Botones inline
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Menú de comandos
	return c.setCommands(ctx)
}

// setCommands establece el menú de comandos del bot
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "hoy", Description: "🎵 Mis clases de hoy"},
		{Command: "semana", Description: "🗓 Mi semana en imagen"},
		{Command: "ayuda", Description: "❓ Ayuda"},
		{Command: "cancelar", Description: "✖️ Cancelar el diálogo actual"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start arranca el long polling del bot
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
