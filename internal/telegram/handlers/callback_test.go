package handlers

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/futig/eco-advisor/internal/entity"
	"github.com/futig/eco-advisor/internal/pkg/retry"
	"github.com/futig/eco-advisor/internal/telegram/keyboard"
	"github.com/futig/eco-advisor/internal/telegram/render"
	"github.com/futig/eco-advisor/internal/telegram/state"
	usecase "github.com/futig/eco-advisor/internal/usecase/diagnostic"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap/zaptest"
)

const (
	testUserID = int64(10)
	testChatID = int64(20)
)

type fakeSender struct {
	mu        sync.Mutex
	nextID    int
	messages  []tgbotapi.MessageConfig
	documents []tgbotapi.DocumentConfig
	edits     []tgbotapi.EditMessageTextConfig
	failSends int
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failSends > 0 {
		f.failSends--
		return tgbotapi.Message{}, errors.New("telegram unavailable")
	}

	f.nextID++
	switch v := c.(type) {
	case tgbotapi.MessageConfig:
		f.messages = append(f.messages, v)
	case tgbotapi.DocumentConfig:
		f.documents = append(f.documents, v)
	case tgbotapi.EditMessageTextConfig:
		f.edits = append(f.edits, v)
	}
	return tgbotapi.Message{MessageID: f.nextID}, nil
}

func (f *fakeSender) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSender) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.messages))
	for _, m := range f.messages {
		out = append(out, m.Text)
	}
	return out
}

type fakeAdvisor struct {
	result entity.AdviceResult
	calls  int
}

func (f *fakeAdvisor) GetAdvice(context.Context, string) entity.AdviceResult {
	f.calls++
	return f.result
}

// blockingAdvisor holds GetAdvice until release is closed.
type blockingAdvisor struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingAdvisor) GetAdvice(context.Context, string) entity.AdviceResult {
	close(b.entered)
	<-b.release
	return entity.AdviceSucceeded("x")
}

type fixture struct {
	sender   *fakeSender
	advisor  *fakeAdvisor
	manager  *state.Manager
	callback *CallbackHandler
	ctx      context.Context
}

func newFixture(t *testing.T, advice entity.AdviceResult) *fixture {
	t.Helper()
	logger := zaptest.NewLogger(t)

	sender := &fakeSender{}
	advisor := &fakeAdvisor{result: advice}
	manager := state.NewManager(state.NewCacheStorage(time.Minute))
	messageSender := NewMessageSender(sender, &retry.RetryConfig{Attempts: 3, Delay: time.Millisecond, MaxDelay: time.Millisecond})

	return &fixture{
		sender:   sender,
		advisor:  advisor,
		manager:  manager,
		callback: NewCallbackHandler(sender, messageSender, manager, usecase.NewUsecase(advisor, logger), keyboard.NewBuilder()),
		ctx:      ctxzap.ToContext(context.Background(), logger),
	}
}

func (f *fixture) press(t *testing.T, data string) error {
	t.Helper()
	return f.callback.Handle(f.ctx, &Message{
		ChatID:       testChatID,
		UserID:       testUserID,
		MessageID:    1,
		CallbackData: data,
	})
}

func TestCallbackHandler_FullQuiz(t *testing.T) {
	f := newFixture(t, entity.AdviceSucceeded("1. Éteins les veilles."))

	if err := f.press(t, "action:start"); err != nil {
		t.Fatalf("start: %v", err)
	}
	for _, question := range entity.Questions {
		if err := f.press(t, keyboard.EncodeAnswer(question.Field, 0)); err != nil {
			t.Fatalf("answer %s: %v", question.Field, err)
		}
	}

	if f.advisor.calls != 1 {
		t.Errorf("advisor called %d times, want 1", f.advisor.calls)
	}

	texts := strings.Join(f.sender.texts(), "\n---\n")
	for _, want := range []string{"1. Température du chauffage ?", "5. Tu recycles ?", "Total : 5 / 15", "1. Éteins les veilles."} {
		if !strings.Contains(texts, want) {
			t.Errorf("messages do not contain %q", want)
		}
	}

	if len(f.sender.documents) != 2 {
		t.Fatalf("documents = %d, want 2 (report and charts)", len(f.sender.documents))
	}
	if len(f.sender.edits) != len(entity.Questions) {
		t.Errorf("edits = %d, want one per answered question", len(f.sender.edits))
	}

	if _, err := f.manager.GetSession(f.ctx, testUserID); !errors.Is(err, state.ErrSessionNotFound) {
		t.Errorf("questionnaire was not discarded: %v", err)
	}
}

func TestCallbackHandler_AdviceFailureStillShowsScores(t *testing.T) {
	f := newFixture(t, entity.AdviceFailed(entity.AdviceFailureAuth, "401 Unauthorized"))

	if err := f.press(t, "action:start"); err != nil {
		t.Fatal(err)
	}
	for _, question := range entity.Questions {
		if err := f.press(t, keyboard.EncodeAnswer(question.Field, 2)); err != nil {
			t.Fatal(err)
		}
	}

	texts := strings.Join(f.sender.texts(), "\n")
	if !strings.Contains(texts, "Total : 15 / 15") {
		t.Error("scores missing from result")
	}
	if !strings.Contains(texts, "Erreur API Mistral : 401 Unauthorized") {
		t.Error("advice failure message missing from result")
	}
}

func TestCallbackHandler_StaleAnswerIgnored(t *testing.T) {
	f := newFixture(t, entity.AdviceSucceeded("x"))

	if err := f.press(t, "action:start"); err != nil {
		t.Fatal(err)
	}
	if err := f.press(t, keyboard.EncodeAnswer(entity.FieldHeating, 1)); err != nil {
		t.Fatal(err)
	}
	// Same button pressed again.
	if err := f.press(t, keyboard.EncodeAnswer(entity.FieldHeating, 2)); err != nil {
		t.Fatalf("stale answer: %v", err)
	}

	data, err := f.manager.GetStateData(f.ctx, testUserID)
	if err != nil {
		t.Fatal(err)
	}
	if data.Answers.Heating != entity.HeatingMedium || data.CurrentQuestionIndex != 1 {
		t.Errorf("state = %+v", data)
	}
}

func TestCallbackHandler_AnswerWithoutQuiz(t *testing.T) {
	f := newFixture(t, entity.AdviceSucceeded("x"))

	err := f.press(t, keyboard.EncodeAnswer(entity.FieldHeating, 0))
	if !errors.Is(err, state.ErrSessionNotFound) {
		t.Fatalf("error = %v, want ErrSessionNotFound", err)
	}

	f.callback.HandleError(f.ctx, testChatID, err)
	texts := f.sender.texts()
	if len(texts) == 0 || texts[len(texts)-1] != render.MsgNoActiveQuiz {
		t.Errorf("messages = %q", texts)
	}
	if f.advisor.calls != 0 {
		t.Error("advisor must not be called")
	}
}

func TestCallbackHandler_Cancel(t *testing.T) {
	f := newFixture(t, entity.AdviceSucceeded("x"))

	if err := f.press(t, "action:start"); err != nil {
		t.Fatal(err)
	}
	if err := f.press(t, "action:cancel"); err != nil {
		t.Fatal(err)
	}

	if _, err := f.manager.GetSession(f.ctx, testUserID); !errors.Is(err, state.ErrSessionNotFound) {
		t.Errorf("session still present: %v", err)
	}
}

func TestCallbackHandler_InvalidData(t *testing.T) {
	f := newFixture(t, entity.AdviceSucceeded("x"))

	for _, data := range []string{"nonsense", "action:fly", "ans:chauffage:9"} {
		if err := f.press(t, data); err == nil {
			t.Errorf("Handle(%q) expected error", data)
		}
	}
}

func TestCallbackHandler_RestartWhileDiagnosing(t *testing.T) {
	f := newFixture(t, entity.AdviceSucceeded("x"))
	advisor := &blockingAdvisor{entered: make(chan struct{}), release: make(chan struct{})}
	f.callback.usecase = usecase.NewUsecase(advisor, zaptest.NewLogger(t))

	if err := f.press(t, "action:start"); err != nil {
		t.Fatal(err)
	}
	last := len(entity.Questions) - 1
	for _, question := range entity.Questions[:last] {
		if err := f.press(t, keyboard.EncodeAnswer(question.Field, 0)); err != nil {
			t.Fatal(err)
		}
	}

	done := make(chan error, 1)
	go func() {
		done <- f.press(t, keyboard.EncodeAnswer(entity.Questions[last].Field, 0))
	}()
	<-advisor.entered

	err := f.press(t, "action:restart")
	if !errors.Is(err, state.ErrSessionBusy) {
		t.Fatalf("restart while diagnosing error = %v, want ErrSessionBusy", err)
	}
	if handlerErr := classifyHandlerError(err); handlerErr.UserMessage != render.ErrBusy {
		t.Errorf("user message = %q, want %q", handlerErr.UserMessage, render.ErrBusy)
	}

	close(advisor.release)
	if err := <-done; err != nil {
		t.Fatalf("last answer: %v", err)
	}

	if err := f.press(t, "action:restart"); err != nil {
		t.Fatalf("restart after result: %v", err)
	}
	if err := f.press(t, keyboard.EncodeAnswer(entity.Questions[0].Field, 1)); err != nil {
		t.Fatalf("answer after restart: %v", err)
	}

	data, err := f.manager.GetStateData(f.ctx, testUserID)
	if err != nil {
		t.Fatalf("restarted quiz lost: %v", err)
	}
	if data.CurrentQuestionIndex != 1 || data.IsProcessing {
		t.Errorf("state = %+v", data)
	}
}

func TestCallbackHandler_CancelWhileDiagnosing(t *testing.T) {
	f := newFixture(t, entity.AdviceSucceeded("x"))
	advisor := &blockingAdvisor{entered: make(chan struct{}), release: make(chan struct{})}
	f.callback.usecase = usecase.NewUsecase(advisor, zaptest.NewLogger(t))

	if err := f.press(t, "action:start"); err != nil {
		t.Fatal(err)
	}
	last := len(entity.Questions) - 1
	for _, question := range entity.Questions[:last] {
		if err := f.press(t, keyboard.EncodeAnswer(question.Field, 0)); err != nil {
			t.Fatal(err)
		}
	}

	done := make(chan error, 1)
	go func() {
		done <- f.press(t, keyboard.EncodeAnswer(entity.Questions[last].Field, 0))
	}()
	<-advisor.entered

	if err := f.press(t, "action:cancel"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := f.press(t, "action:start"); err != nil {
		t.Fatalf("start after cancel: %v", err)
	}

	close(advisor.release)
	if err := <-done; err != nil {
		t.Fatalf("last answer: %v", err)
	}

	if _, err := f.manager.GetStateData(f.ctx, testUserID); err != nil {
		t.Errorf("new quiz discarded by the previous diagnostic: %v", err)
	}
}

func TestMessageSender_SendCriticalRetries(t *testing.T) {
	sender := &fakeSender{failSends: 2}
	ms := NewMessageSender(sender, &retry.RetryConfig{Attempts: 3, Delay: time.Millisecond, MaxDelay: time.Millisecond})

	if err := ms.SendCritical(context.Background(), testChatID, "important", nil); err != nil {
		t.Fatalf("SendCritical() error = %v", err)
	}
	if got := sender.texts(); len(got) != 1 || got[0] != "important" {
		t.Errorf("messages = %q", got)
	}
}

func TestMessageSender_SendCriticalGivesUp(t *testing.T) {
	sender := &fakeSender{failSends: 5}
	ms := NewMessageSender(sender, &retry.RetryConfig{Attempts: 2, Delay: time.Millisecond, MaxDelay: time.Millisecond})

	if err := ms.SendCritical(context.Background(), testChatID, "important", nil); err == nil {
		t.Fatal("SendCritical() expected error")
	}
	if sender.failSends != 3 {
		t.Errorf("attempts = %d, want 2", 5-sender.failSends)
	}
}

func TestAnsweringHandler_RepeatsQuestion(t *testing.T) {
	f := newFixture(t, entity.AdviceSucceeded("x"))
	h := NewAnsweringHandler(f.callback.messageSender, f.manager, keyboard.NewBuilder())

	if err := f.press(t, "action:start"); err != nil {
		t.Fatal(err)
	}
	if err := h.Handle(f.ctx, &Message{ChatID: testChatID, UserID: testUserID, Text: "20 degrés"}); err != nil {
		t.Fatal(err)
	}

	texts := f.sender.texts()
	if len(texts) != 3 || texts[1] != render.MsgUseButtons || !strings.HasPrefix(texts[2], entity.Questions[0].Title) {
		t.Errorf("messages = %q", texts)
	}
}
