package keyboard

import (
	"github.com/futig/eco-advisor/internal/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Builder creates inline keyboards
type Builder struct{}

// NewBuilder creates a keyboard builder
func NewBuilder() *Builder {
	return &Builder{}
}

// StartKeyboard creates the initial start button
func (b *Builder) StartKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🌱 Commencer le quiz", EncodeCallback(ActionControl, ValueStart)),
		),
	)
}

// QuestionKeyboard shows one button per option, then a cancel button.
func (b *Builder) QuestionKeyboard(question entity.Question) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(question.Options)+1)
	for i, option := range question.Options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(option, EncodeAnswer(question.Field, i)),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("❌ Annuler", EncodeCallback(ActionControl, ValueCancel)),
	))

	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// RestartKeyboard offers to take the quiz again
func (b *Builder) RestartKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Refaire le quiz", EncodeCallback(ActionControl, ValueRestart)),
		),
	)
}
