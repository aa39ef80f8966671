package telegram

import (
	"context"
	"fmt"

	"github.com/futig/eco-advisor/internal/config"
	"github.com/futig/eco-advisor/internal/telegram/bot"
	"github.com/futig/eco-advisor/internal/telegram/handlers"
	"github.com/futig/eco-advisor/internal/telegram/state"
	"go.uber.org/zap"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot initializes the telegram bot with all dependencies
func NewBot(
	cfg *config.TelegramConfig,
	storage state.Storage,
	diagnosticUC handlers.DiagnosticUsecase,
	logger *zap.Logger,
) (Bot, error) {
	stateManager := state.NewManager(storage)

	b, err := bot.New(cfg, stateManager, logger)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	registerHandlers(b, diagnosticUC, logger)

	logger.Info("telegram bot initialized successfully")

	return b, nil
}

// registerHandlers registers all handlers with the bot
func registerHandlers(b *bot.Bot, diagnosticUC handlers.DiagnosticUsecase, logger *zap.Logger) {
	api := b.GetAPI()
	stateManager := b.GetStateManager()
	messageSender := b.GetMessageSender()
	keyboard := b.GetKeyboard()

	// Buttons: start, answers, cancel
	b.RegisterHandler(handlers.NewCallbackHandler(api, messageSender, stateManager, diagnosticUC, keyboard))

	// Free text while a quiz is in progress
	b.RegisterHandler(handlers.NewAnsweringHandler(messageSender, stateManager, keyboard))

	logger.Info("telegram handlers registered",
		zap.Int("handler_count", 2),
	)
}
