package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/futig/eco-advisor/internal/entity"
	"github.com/futig/eco-advisor/internal/pkg/chart"
	"github.com/futig/eco-advisor/internal/pkg/formatter"
	"github.com/futig/eco-advisor/internal/telegram/keyboard"
	"github.com/futig/eco-advisor/internal/telegram/render"
	"github.com/futig/eco-advisor/internal/telegram/state"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const chartsFilenameStem = "graphiques-"

// CallbackHandler drives the quiz from inline keyboard buttons
type CallbackHandler struct {
	BaseHandler
	bot     Sender
	usecase DiagnosticUsecase
	report  formatter.Formatter
	now     func() time.Time
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(
	bot Sender,
	messageSender *MessageSender,
	stateManager *state.Manager,
	usecase DiagnosticUsecase,
	keyboard *keyboard.Builder,
) *CallbackHandler {
	return &CallbackHandler{
		BaseHandler: BaseHandler{
			stateName:     HandlerStateCallback,
			messageSender: messageSender,
			stateManager:  stateManager,
			keyboard:      keyboard,
		},
		bot:     bot,
		usecase: usecase,
		report:  formatter.NewPDFFormatter(),
		now:     time.Now,
	}
}

// Handle implements Handler
func (h *CallbackHandler) Handle(ctx context.Context, msg *Message) error {
	data, err := keyboard.ParseCallback(msg.CallbackData)
	if err != nil {
		return fmt.Errorf("%w: %w", entity.ErrInvalidParameter, err)
	}

	ctx = ctxzap.ToContext(ctx, ctxzap.Extract(ctx).With(
		zap.String("callback_action", data.Action),
		zap.Int64("user_id", msg.UserID),
	))

	switch data.Action {
	case keyboard.ActionControl:
		switch data.Value {
		case keyboard.ValueStart, keyboard.ValueRestart:
			return h.startQuiz(ctx, msg)
		case keyboard.ValueCancel:
			return h.cancelQuiz(ctx, msg)
		}
	case keyboard.ActionAnswer:
		return h.handleAnswer(ctx, msg, data.Value)
	}

	return fmt.Errorf("%w: unknown callback %q", entity.ErrInvalidParameter, msg.CallbackData)
}

func (h *CallbackHandler) startQuiz(ctx context.Context, msg *Message) error {
	if _, err := h.stateManager.StartSession(ctx, msg.UserID, msg.ChatID); err != nil {
		return err
	}

	ctxzap.Info(ctx, "quiz started")

	return h.sendQuestion(ctx, msg.ChatID, msg.UserID, 0)
}

func (h *CallbackHandler) cancelQuiz(ctx context.Context, msg *Message) error {
	if err := h.stateManager.DeleteSession(ctx, msg.UserID); err != nil {
		return err
	}

	ctxzap.Info(ctx, "quiz cancelled")

	h.messageSender.EditText(ctx, msg.ChatID, msg.MessageID, render.MsgCancelled)
	return nil
}

func (h *CallbackHandler) handleAnswer(ctx context.Context, msg *Message, value string) error {
	field, label, err := keyboard.ParseAnswer(value)
	if err != nil {
		return err
	}

	data, err := h.stateManager.UpdateStateData(ctx, msg.UserID, func(data *state.StateData) error {
		if data.IsProcessing {
			return errQuizBusy
		}
		if data.CurrentQuestionIndex >= len(entity.Questions) || entity.Questions[data.CurrentQuestionIndex].Field != field {
			return errStaleAnswer
		}
		if err := data.Answers.Set(field, label); err != nil {
			return err
		}

		data.CurrentQuestionIndex++
		if data.CurrentQuestionIndex == len(entity.Questions) {
			data.IsProcessing = true
			data.ProcessingStarted = h.now()
		}
		return nil
	})
	if errors.Is(err, errStaleAnswer) {
		ctxzap.Debug(ctx, "ignoring answer to a past question", zap.String("field", string(field)))
		return nil
	}
	if err != nil {
		return err
	}

	ctxzap.Debug(ctx, "answer recorded",
		zap.String("field", string(field)),
		zap.Int("next_question", data.CurrentQuestionIndex),
	)

	question, _ := entity.QuestionFor(field)
	h.messageSender.EditText(ctx, msg.ChatID, msg.MessageID, render.RenderAnswerRecorded(question, label))

	if data.CurrentQuestionIndex < len(entity.Questions) {
		return h.sendQuestion(ctx, msg.ChatID, msg.UserID, data.CurrentQuestionIndex)
	}

	return h.finish(ctx, msg.ChatID, msg.UserID, data)
}

// finish computes the diagnostic and delivers it. The questionnaire is
// discarded afterwards whatever the outcome, unless the user started a new
// quiz meanwhile.
func (h *CallbackHandler) finish(ctx context.Context, chatID, userID int64, data *state.StateData) error {
	answers := data.Answers
	defer func() {
		if err := h.stateManager.DiscardProcessed(ctx, userID, data.ProcessingStarted); err != nil {
			ctxzap.Error(ctx, "failed to discard questionnaire", zap.Error(err))
		}
	}()

	h.messageSender.Send(ctx, chatID, render.MsgProcessing, nil)

	typing := NewTypingNotifier(h.bot, chatID)
	typing.Start(ctx)
	d, err := h.usecase.Diagnose(ctx, &answers)
	typing.Stop()
	if err != nil {
		return fmt.Errorf("diagnose: %w", err)
	}

	ctxzap.Info(ctx, "diagnostic ready",
		zap.String("diagnostic_id", d.ID),
		zap.Int("total", d.Scores.Total()),
		zap.Bool("advice_ok", d.Advice.OK()),
	)

	return h.deliverResult(ctx, chatID, d)
}

func (h *CallbackHandler) deliverResult(ctx context.Context, chatID int64, d *entity.Diagnostic) error {
	if err := h.messageSender.SendCritical(ctx, chatID, render.RenderResult(d), nil); err != nil {
		return fmt.Errorf("send result: %w", err)
	}

	if report, err := h.report.Format(d); err != nil {
		ctxzap.Error(ctx, "failed to build report", zap.Error(err))
		h.messageSender.Send(ctx, chatID, render.ErrReport, nil)
	} else if err := h.messageSender.SendDocument(ctx, chatID, formatter.Filename(d, h.report), report, render.CaptionReport); err != nil {
		ctxzap.Error(ctx, "failed to send report", zap.Error(err))
	}

	if page, err := chart.HTML(d.Scores); err != nil {
		ctxzap.Error(ctx, "failed to render charts", zap.Error(err))
	} else if err := h.messageSender.SendDocument(ctx, chatID, chartsFilenameStem+d.ID+chart.FileExtension, page, render.CaptionCharts); err != nil {
		ctxzap.Error(ctx, "failed to send charts", zap.Error(err))
	}

	h.messageSender.Send(ctx, chatID, render.MsgRestart, h.keyboard.RestartKeyboard())
	return nil
}
