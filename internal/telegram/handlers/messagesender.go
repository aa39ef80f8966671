package handlers

import (
	"context"

	"github.com/futig/eco-advisor/internal/pkg/retry"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MessageSender provides centralized message sending functionality
type MessageSender struct {
	bot      Sender
	retryCfg *retry.RetryConfig
}

// NewMessageSender creates a new MessageSender
func NewMessageSender(bot Sender, retryCfg *retry.RetryConfig) *MessageSender {
	if retryCfg == nil {
		retryCfg = retry.DefaultRetryConfig()
	}
	return &MessageSender{
		bot:      bot,
		retryCfg: retryCfg,
	}
}

// Send sends a message to the specified chat and returns its id
func (s *MessageSender) Send(ctx context.Context, chatID int64, text string, markup interface{}) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}

	sent, err := s.bot.Send(msg)
	if err != nil {
		ctxzap.Error(ctx, "failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
		return 0, err
	}

	return sent.MessageID, nil
}

// SendCritical sends a message that must be delivered, retrying on failure
func (s *MessageSender) SendCritical(ctx context.Context, chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}

	return s.withRetry(ctx, chatID, func() error {
		_, err := s.bot.Send(msg)
		return err
	})
}

// SendDocument uploads a file, retrying on failure
func (s *MessageSender) SendDocument(ctx context.Context, chatID int64, filename string, data []byte, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  filename,
		Bytes: data,
	})
	doc.Caption = caption

	return s.withRetry(ctx, chatID, func() error {
		_, err := s.bot.Send(doc)
		return err
	})
}

// EditText replaces the text of a sent message and drops its keyboard
func (s *MessageSender) EditText(ctx context.Context, chatID int64, messageID int, text string) {
	if messageID == 0 {
		return
	}

	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if _, err := s.bot.Send(edit); err != nil {
		ctxzap.Warn(ctx, "failed to edit message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", messageID),
		)
	}
}

// AnswerCallback answers a callback query
func (s *MessageSender) AnswerCallback(ctx context.Context, callbackID, text string) {
	if _, err := s.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		ctxzap.Warn(ctx, "failed to answer callback",
			zap.Error(err),
			zap.String("callback_id", callbackID),
		)
	}
}

func (s *MessageSender) withRetry(ctx context.Context, chatID int64, send func() error) error {
	err := retry.Do(ctx, s.retryCfg, send, func(attempt uint, err error) {
		ctxzap.Warn(ctx, "failed to send message, retrying",
			zap.Error(err),
			zap.Uint("attempt", attempt+1),
			zap.Uint("max_attempts", s.retryCfg.Attempts),
			zap.Int64("chat_id", chatID),
		)
	})
	if err != nil {
		ctxzap.Error(ctx, "failed to send message after all retries",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
	return err
}
