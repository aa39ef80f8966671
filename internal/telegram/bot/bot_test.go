package bot

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap/zaptest"
)

func newLoopBot(t *testing.T, updates chan tgbotapi.Update, process func(tgbotapi.Update)) (*Bot, context.Context) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	b := &Bot{
		logger:      logger,
		updatesChan: updates,
		stopChan:    make(chan struct{}),
		loopDone:    make(chan struct{}),
		process:     process,
	}
	return b, ctxzap.ToContext(context.Background(), logger)
}

func TestBot_WaitHandlersWaitsForInFlightUpdates(t *testing.T) {
	updates := make(chan tgbotapi.Update)
	started := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool

	b, ctx := newLoopBot(t, updates, func(tgbotapi.Update) {
		close(started)
		<-release
		finished.Store(true)
	})
	go b.processUpdates(ctx)

	updates <- tgbotapi.Update{UpdateID: 1}
	<-started
	close(b.stopChan)

	if err := b.waitHandlers(20 * time.Millisecond); err == nil {
		t.Fatal("waitHandlers() returned while a handler was running")
	}

	close(release)
	if err := b.waitHandlers(time.Second); err != nil {
		t.Fatalf("waitHandlers() error = %v", err)
	}
	if !finished.Load() {
		t.Error("handler did not complete before waitHandlers returned")
	}
}

func TestBot_UpdatesAfterStopAreDropped(t *testing.T) {
	updates := make(chan tgbotapi.Update, 4)
	var processed atomic.Int32

	b, ctx := newLoopBot(t, updates, func(tgbotapi.Update) {
		processed.Add(1)
	})

	close(b.stopChan)
	for i := 0; i < cap(updates); i++ {
		updates <- tgbotapi.Update{UpdateID: i}
	}

	go b.processUpdates(ctx)

	if err := b.waitHandlers(time.Second); err != nil {
		t.Fatalf("waitHandlers() error = %v", err)
	}
	if n := processed.Load(); n != 0 {
		t.Errorf("processed %d updates after stop, want 0", n)
	}
}

func TestBot_WaitHandlersWithoutStart(t *testing.T) {
	b := &Bot{}
	if err := b.waitHandlers(time.Second); err != nil {
		t.Fatalf("waitHandlers() error = %v", err)
	}
}
