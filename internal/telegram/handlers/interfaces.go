package handlers

import (
	"context"

	"github.com/futig/eco-advisor/internal/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// DiagnosticUsecase is the part of the diagnostic flow the bot drives
type DiagnosticUsecase interface {
	Diagnose(ctx context.Context, q *entity.Questionnaire) (*entity.Diagnostic, error)
}

// Sender is implemented by *tgbotapi.BotAPI
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}
