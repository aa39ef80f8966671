package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/futig/eco-advisor/internal/config"
	"github.com/futig/eco-advisor/internal/telegram/handlers"
	"github.com/futig/eco-advisor/internal/telegram/keyboard"
	"github.com/futig/eco-advisor/internal/telegram/middleware"
	"github.com/futig/eco-advisor/internal/telegram/render"
	"github.com/futig/eco-advisor/internal/telegram/state"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Bot represents the Telegram bot
type Bot struct {
	api           *tgbotapi.BotAPI
	cfg           *config.TelegramConfig
	stateManager  *state.Manager
	messageSender *handlers.MessageSender
	handlers      map[string]handlers.Handler
	keyboard      *keyboard.Builder
	logger        *zap.Logger
	loggingMW     *middleware.LoggingMiddleware
	recoveryMW    *middleware.RecoveryMiddleware
	rateLimitMW   *middleware.RateLimiterMiddleware
	updatesChan   tgbotapi.UpdatesChannel
	// handlerCtx is the parent of every update context, cancelled on Stop
	handlerCtx    context.Context
	cancelHandler context.CancelFunc
	stopChan      chan struct{}
	// loopDone is closed when processUpdates returns
	loopDone      chan struct{}
	wg            sync.WaitGroup
	process       func(tgbotapi.Update)
}

// New creates a new Telegram bot
func New(
	cfg *config.TelegramConfig,
	stateManager *state.Manager,
	logger *zap.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	api.Debug = false

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	handlerCtx, cancel := context.WithCancel(context.Background())

	bot := &Bot{
		api:           api,
		cfg:           cfg,
		stateManager:  stateManager,
		messageSender: handlers.NewMessageSender(api, &cfg.SendRetry),
		keyboard:      keyboard.NewBuilder(),
		logger:        logger,
		handlers:      make(map[string]handlers.Handler),
		handlerCtx:    handlerCtx,
		cancelHandler: cancel,
		stopChan:      make(chan struct{}),
	}

	bot.process = bot.handleUpdateWithMiddleware
	bot.loggingMW = middleware.NewLoggingMiddleware(logger)
	bot.recoveryMW = middleware.NewRecoveryMiddleware(logger, api)
	bot.rateLimitMW = middleware.NewRateLimiterMiddleware(
		cfg.RateLimitPerMinute,
		cfg.RateLimitBurst,
		logger,
		api,
	)

	return bot, nil
}

// Start starts the bot
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout

	b.updatesChan = b.api.GetUpdatesChan(u)

	ctx = ctxzap.ToContext(ctx, b.logger)

	b.loopDone = make(chan struct{})
	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops the bot gracefully with timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	close(b.stopChan)
	b.api.StopReceivingUpdates()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	if err := b.waitHandlers(shutdownTimeout); err != nil {
		// Abort outstanding advice calls.
		b.cancelHandler()
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return err
	}
	b.logger.Info("all handlers completed gracefully")

	b.cancelHandler()
	b.logger.Info("telegram bot stopped successfully")
	return nil
}

// waitHandlers waits for the update loop to exit, then for the handlers it
// started. No handler can be added once the loop is gone.
func (b *Bot) waitHandlers(timeout time.Duration) error {
	done := make(chan struct{})
	go func() {
		if b.loopDone != nil {
			<-b.loopDone
		}
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("shutdown timeout exceeded")
	}
}

// processUpdates processes incoming updates
func (b *Bot) processUpdates(ctx context.Context) {
	defer close(b.loopDone)

	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update, ok := <-b.updatesChan:
			if !ok {
				return
			}
			// select picks at random when both channels are ready.
			select {
			case <-b.stopChan:
				return
			default:
			}
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				b.process(u)
			}(update)
		}
	}
}

// handleUpdateWithMiddleware processes update through middleware chain
func (b *Bot) handleUpdateWithMiddleware(update tgbotapi.Update) {
	b.rateLimitMW.Handle(update, func(u tgbotapi.Update) {
		b.loggingMW.Handle(u, func(u2 tgbotapi.Update) {
			b.recoveryMW.Handle(u2, func(u3 tgbotapi.Update) {
				b.handleUpdate(u3)
			})
		})
	})
}

// handleUpdate routes update to appropriate handler
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	ctx := ctxzap.ToContext(b.handlerCtx, b.logger.With(zap.Int("update_id", update.UpdateID)))

	if update.CallbackQuery != nil {
		b.handleCallbackQuery(ctx, update.CallbackQuery)
		return
	}

	if update.Message != nil && update.Message.From != nil {
		b.handleMessage(ctx, update.Message)
	}
}

// handleMessage handles incoming messages
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	userID := message.From.ID
	chatID := message.Chat.ID

	if _, err := b.stateManager.GetSession(ctx, userID); err != nil {
		b.messageSender.Send(ctx, chatID, render.MsgNoActiveQuiz, b.keyboard.StartKeyboard())
		return
	}

	b.dispatch(ctx, handlers.HandlerStateAnswering, &handlers.Message{
		ChatID:    chatID,
		UserID:    userID,
		MessageID: message.MessageID,
		Text:      message.Text,
	})
}

// handleCommand handles bot commands
func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	command := message.Command()

	ctxzap.Info(ctx, "command received",
		zap.String("command", command),
		zap.Int64("user_id", message.From.ID),
	)

	switch command {
	case "start":
		b.messageSender.Send(ctx, message.Chat.ID, render.MsgWelcome, b.keyboard.StartKeyboard())
	case "help":
		b.messageSender.Send(ctx, message.Chat.ID, render.MsgHelp, nil)
	case "cancel":
		b.handleCancelCommand(ctx, message)
	default:
		b.messageSender.Send(ctx, message.Chat.ID, render.ErrUnknownCommand, nil)
	}
}

// handleCancelCommand discards the questionnaire in progress
func (b *Bot) handleCancelCommand(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	chatID := message.Chat.ID

	if _, err := b.stateManager.GetSession(ctx, userID); err != nil {
		b.messageSender.Send(ctx, chatID, render.MsgNoActiveQuiz, nil)
		return
	}

	if err := b.stateManager.DeleteSession(ctx, userID); err != nil {
		ctxzap.Error(ctx, "failed to delete telegram session",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
	}

	b.messageSender.Send(ctx, chatID, render.MsgCancelled, nil)
}

// handleCallbackQuery handles callback button clicks
func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if query.Message == nil {
		b.messageSender.AnswerCallback(ctx, query.ID, render.ErrInvalidData)
		return
	}

	ctxzap.Info(ctx, "callback query received",
		zap.String("data", query.Data),
		zap.Int64("user_id", query.From.ID),
	)

	// Answer right away so Telegram stops the button spinner.
	b.messageSender.AnswerCallback(ctx, query.ID, "")

	b.dispatch(ctx, handlers.HandlerStateCallback, &handlers.Message{
		ChatID:       query.Message.Chat.ID,
		UserID:       query.From.ID,
		MessageID:    query.Message.MessageID,
		CallbackData: query.Data,
		CallbackID:   query.ID,
	})
}

func (b *Bot) dispatch(ctx context.Context, stateName string, msg *handlers.Message) {
	handler, exists := b.handlers[stateName]
	if !exists {
		ctxzap.Warn(ctx, "no handler for state", zap.String("state", stateName))
		b.messageSender.Send(ctx, msg.ChatID, render.ErrGeneric, nil)
		return
	}

	if err := handler.Handle(ctx, msg); err != nil {
		handler.HandleError(ctx, msg.ChatID, err)
	}
}

// RegisterHandler registers a handler for a state
func (b *Bot) RegisterHandler(handler handlers.Handler) {
	state := handler.GetState()

	if !handlers.IsValidState(state) {
		b.logger.Fatal("invalid handler state",
			zap.String("state", state),
		)
	}

	b.handlers[state] = handler
	b.logger.Info("handler registered",
		zap.String("state", state),
	)
}

// GetAPI returns the bot API instance (for handlers)
func (b *Bot) GetAPI() *tgbotapi.BotAPI {
	return b.api
}

// GetStateManager returns the state manager (for handlers)
func (b *Bot) GetStateManager() *state.Manager {
	return b.stateManager
}

// GetMessageSender returns the shared message sender (for handlers)
func (b *Bot) GetMessageSender() *handlers.MessageSender {
	return b.messageSender
}

// GetKeyboard returns the keyboard builder (for handlers)
func (b *Bot) GetKeyboard() *keyboard.Builder {
	return b.keyboard
}
