package handlers

import (
	"context"

	"github.com/futig/eco-advisor/internal/telegram/keyboard"
	"github.com/futig/eco-advisor/internal/telegram/render"
	"github.com/futig/eco-advisor/internal/telegram/state"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
)

// AnsweringHandler handles free text sent while a quiz is in progress.
// Answers only come from buttons, so the current question is asked again.
type AnsweringHandler struct {
	BaseHandler
}

// NewAnsweringHandler creates a new answering handler
func NewAnsweringHandler(
	messageSender *MessageSender,
	stateManager *state.Manager,
	keyboard *keyboard.Builder,
) *AnsweringHandler {
	return &AnsweringHandler{
		BaseHandler: BaseHandler{
			stateName:     HandlerStateAnswering,
			messageSender: messageSender,
			stateManager:  stateManager,
			keyboard:      keyboard,
		},
	}
}

// Handle implements Handler
func (h *AnsweringHandler) Handle(ctx context.Context, msg *Message) error {
	data, err := h.stateManager.GetStateData(ctx, msg.UserID)
	if err != nil {
		return err
	}

	if data.IsProcessing {
		return errQuizBusy
	}

	ctxzap.Debug(ctx, "free text during quiz, asking again")

	h.messageSender.Send(ctx, msg.ChatID, render.MsgUseButtons, nil)
	return h.sendQuestion(ctx, msg.ChatID, msg.UserID, data.CurrentQuestionIndex)
}
