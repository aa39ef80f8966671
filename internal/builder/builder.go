package builder

import (
	"fmt"
	"net/http"
	"time"

	"github.com/futig/eco-advisor/internal/api"
	diagnosticapi "github.com/futig/eco-advisor/internal/api/diagnostic"
	"github.com/futig/eco-advisor/internal/config"
	"github.com/futig/eco-advisor/internal/integration/llm"
	"github.com/futig/eco-advisor/internal/telegram"
	"github.com/futig/eco-advisor/internal/telegram/state"
	"github.com/futig/eco-advisor/internal/usecase/diagnostic"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	diagnosticUC := diagnostic.NewUsecase(newAdviceConnector(cfg, logger), logger)
	logger.Info("Use cases initialized")

	requestTimeout := api.RequestTimeout(cfg.LLMConnectorCfg.RequestTimeout)

	diagnosticHandler := diagnosticapi.NewHandler(diagnosticUC)
	router := api.SetupRouter(diagnosticHandler, logger, requestTimeout)
	logger.Info("HTTP router configured", zap.Duration("request_timeout", requestTimeout))

	// Writes must outlive the request timeout.
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: requestTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (telegram.Bot, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.TelegramCfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	diagnosticUC := diagnostic.NewUsecase(newAdviceConnector(cfg, logger), logger)
	storage := state.NewCacheStorage(cfg.TelegramCfg.StateTTL)

	bot, err := telegram.NewBot(&cfg.TelegramCfg, storage, diagnosticUC, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, logger, nil
}

func newAdviceConnector(cfg *config.Config, logger *zap.Logger) diagnostic.AdviceConnector {
	if cfg.EnableMocks {
		logger.Info("Using mock connector for the advice service")
		return llm.NewMockConnector(logger)
	}

	logger.Info("Using Mistral connector for the advice service",
		zap.String("url", cfg.LLMConnectorCfg.Url),
		zap.String("model", cfg.LLMConnectorCfg.Model),
	)
	return llm.NewConnector(cfg.LLMConnectorCfg, logger)
}
