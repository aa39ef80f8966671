package middleware

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// LoggingMiddleware logs all incoming updates
type LoggingMiddleware struct {
	logger *zap.Logger
}

// NewLoggingMiddleware creates a new logging middleware
func NewLoggingMiddleware(logger *zap.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{
		logger: logger,
	}
}

// Handle logs the update
func (m *LoggingMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	start := time.Now()
	userID, chatID := updateOrigin(update)

	var updateType string
	switch {
	case update.CallbackQuery != nil:
		updateType = "callback"
	case update.Message != nil && update.Message.IsCommand():
		updateType = "command"
	case update.Message != nil && update.Message.Text != "":
		updateType = "text"
	default:
		updateType = "other"
	}

	logger := m.logger.With(
		zap.Int64("user_id", userID),
		zap.Int64("chat_id", chatID),
		zap.Int("update_id", update.UpdateID),
	)
	logger.Info("telegram update received", zap.String("type", updateType))

	next(update)

	logger.Info("telegram update processed", zap.Duration("duration", time.Since(start)))
}
