package handlers

import (
	"context"
	"fmt"

	"github.com/futig/eco-advisor/internal/entity"
	"github.com/futig/eco-advisor/internal/telegram/keyboard"
	"github.com/futig/eco-advisor/internal/telegram/render"
	"github.com/futig/eco-advisor/internal/telegram/state"
)

// Handler state constants
const (
	HandlerStateCallback  = "CALLBACK"
	HandlerStateAnswering = "ANSWERING"
)

// Message represents a normalized Telegram message
type Message struct {
	ChatID       int64
	UserID       int64
	MessageID    int
	Text         string
	CallbackData string
	CallbackID   string
}

// Handler defines the interface for state-specific handlers
type Handler interface {
	// Handle processes a message for this state
	Handle(ctx context.Context, msg *Message) error

	// GetState returns the state this handler manages
	GetState() string

	// HandleError reports a Handle failure to the user
	HandleError(ctx context.Context, chatID int64, err error)
}

// BaseHandler provides common functionality for all handlers
type BaseHandler struct {
	stateName     string
	messageSender *MessageSender
	stateManager  *state.Manager
	keyboard      *keyboard.Builder
}

// GetState implements Handler
func (h *BaseHandler) GetState() string {
	return h.stateName
}

// sendQuestion asks the question at index and remembers the message holding
// its keyboard.
func (h *BaseHandler) sendQuestion(ctx context.Context, chatID, userID int64, index int) error {
	if index < 0 || index >= len(entity.Questions) {
		return fmt.Errorf("%w: question index %d", entity.ErrInvalidParameter, index)
	}
	question := entity.Questions[index]

	messageID, err := h.messageSender.Send(ctx, chatID, render.RenderQuestion(index, question), h.keyboard.QuestionKeyboard(question))
	if err != nil {
		return fmt.Errorf("send question %s: %w", question.Field, err)
	}

	_, err = h.stateManager.UpdateStateData(ctx, userID, func(data *state.StateData) error {
		data.LastMessageID = messageID
		return nil
	})
	return err
}

// validStates defines all valid handler states
var validStates = map[string]bool{
	HandlerStateCallback:  true,
	HandlerStateAnswering: true,
}

// IsValidState checks if a state is valid for handler registration
func IsValidState(state string) bool {
	_, ok := validStates[state]
	return ok
}
