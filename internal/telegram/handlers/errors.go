package handlers

import (
	"context"
	"errors"

	"github.com/futig/eco-advisor/internal/entity"
	"github.com/futig/eco-advisor/internal/telegram/render"
	"github.com/futig/eco-advisor/internal/telegram/state"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

var (
	// errStaleAnswer marks a button pressed on a question that is no longer current.
	errStaleAnswer = errors.New("answer for a question that is not current")
	// errQuizBusy marks an answer received while the diagnostic is computed.
	errQuizBusy = errors.New("diagnostic already in progress")
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity int

const (
	SeverityWarning ErrorSeverity = iota
	SeverityError
)

// HandlerError represents a structured error with user message and logging info
type HandlerError struct {
	Err         error
	UserMessage string
	LogMessage  string
	Severity    ErrorSeverity
}

// classifyHandlerError analyzes an error and returns a HandlerError with appropriate severity and messages
func classifyHandlerError(err error) *HandlerError {
	switch {
	case errors.Is(err, state.ErrSessionNotFound):
		return &HandlerError{
			Err:         err,
			UserMessage: render.MsgNoActiveQuiz,
			LogMessage:  "no quiz in progress",
			Severity:    SeverityWarning,
		}
	case errors.Is(err, errQuizBusy), errors.Is(err, state.ErrSessionBusy):
		return &HandlerError{
			Err:         err,
			UserMessage: render.ErrBusy,
			LogMessage:  "quiz is being processed",
			Severity:    SeverityWarning,
		}
	case errors.Is(err, entity.ErrInvalidLabel),
		errors.Is(err, entity.ErrInvalidParameter),
		errors.Is(err, entity.ErrIncompleteInput):
		return &HandlerError{
			Err:         err,
			UserMessage: render.ErrInvalidData,
			LogMessage:  "invalid input",
			Severity:    SeverityWarning,
		}
	}

	return &HandlerError{
		Err:         err,
		UserMessage: render.ErrGeneric,
		LogMessage:  "handler error",
		Severity:    SeverityError,
	}
}

// HandleError logs the error with its severity and sends a user-friendly message
func (h *BaseHandler) HandleError(ctx context.Context, chatID int64, err error) {
	if err == nil {
		return
	}

	handlerErr := classifyHandlerError(err)

	switch handlerErr.Severity {
	case SeverityError:
		ctxzap.Error(ctx, handlerErr.LogMessage,
			zap.Error(handlerErr.Err),
			zap.Int64("chat_id", chatID),
		)
	case SeverityWarning:
		ctxzap.Warn(ctx, handlerErr.LogMessage,
			zap.Error(handlerErr.Err),
			zap.Int64("chat_id", chatID),
		)
	}

	if h.messageSender != nil {
		h.messageSender.Send(ctx, chatID, handlerErr.UserMessage, nil)
	}
}
