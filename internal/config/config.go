package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/futig/eco-advisor/internal/entity"
	pkgRetry "github.com/futig/eco-advisor/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	// Advice service configuration
	LLMConnectorCfg LLMConnectorConfig `envPrefix:"MISTRAL_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Telegram bot configuration (only required by the bot binary)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string               `env:"BOT_TOKEN"`
	UpdateTimeout      int                  `env:"UPDATE_TIMEOUT" envDefault:"60"`
	RateLimitPerMinute int                  `env:"RATE_LIMIT_PER_MINUTE" envDefault:"30"`
	RateLimitBurst     int                  `env:"RATE_LIMIT_BURST" envDefault:"5"`
	ShutdownTimeout    int                  `env:"SHUTDOWN_TIMEOUT" envDefault:"30"` // seconds
	StateTTL           time.Duration        `env:"STATE_TTL" envDefault:"30m"`
	SendRetry          pkgRetry.RetryConfig `envPrefix:"SEND_RETRY_"`
}

// LLMConnectorConfig configures the chat-completion client.
type LLMConnectorConfig struct {
	HTTPClientConfig
	Model        string `env:"MODEL" envDefault:"mistral-small-latest"`
	ChatEndpoint string `env:"CHAT_ENDPOINT" envDefault:"/v1/chat/completions"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	TLSHandshakeTimeout   time.Duration `env:"TLS_HANDSHAKE_TIMEOUT" envDefault:"10s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"60s"`
	Token                 string        `env:"API_KEY,notEmpty"`
	Url                   string        `env:"SERVICE_URL" envDefault:"https://api.mistral.ai"`
}

// LoadConfig reads the -env flag, loads the matching .env file and parses the
// environment. Every failure wraps entity.ErrConfiguration.
func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	return Load(*envFlag)
}

// Load builds the configuration for the named environment.
func Load(environment string) (*Config, error) {
	envFile := getEnvFile(environment)
	// The env file is optional: in containers variables are set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrConfiguration, err)
	}

	cfg.Environment = environment

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrConfiguration, err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var problems []string

	if strings.TrimSpace(cfg.LLMConnectorCfg.Token) == "" {
		problems = append(problems, "MISTRAL_API_KEY must not be blank")
	}

	if cfg.LLMConnectorCfg.Model == "" {
		problems = append(problems, "MISTRAL_MODEL must not be empty")
	}

	if !strings.HasPrefix(cfg.LLMConnectorCfg.Url, "http://") && !strings.HasPrefix(cfg.LLMConnectorCfg.Url, "https://") {
		problems = append(problems, fmt.Sprintf("MISTRAL_SERVICE_URL must be an http(s) URL, got %q", cfg.LLMConnectorCfg.Url))
	}

	if cfg.TelegramCfg.RateLimitPerMinute < 1 || cfg.TelegramCfg.RateLimitPerMinute > 60 {
		problems = append(problems, fmt.Sprintf("TELEGRAM_RATE_LIMIT_PER_MINUTE must be between 1 and 60, got %d", cfg.TelegramCfg.RateLimitPerMinute))
	}

	if cfg.TelegramCfg.RateLimitBurst < 1 || cfg.TelegramCfg.RateLimitBurst > 20 {
		problems = append(problems, fmt.Sprintf("TELEGRAM_RATE_LIMIT_BURST must be between 1 and 20, got %d", cfg.TelegramCfg.RateLimitBurst))
	}

	if cfg.TelegramCfg.ShutdownTimeout < 1 || cfg.TelegramCfg.ShutdownTimeout > 300 {
		problems = append(problems, fmt.Sprintf("TELEGRAM_SHUTDOWN_TIMEOUT must be between 1 and 300 seconds, got %d", cfg.TelegramCfg.ShutdownTimeout))
	}

	if cfg.TelegramCfg.StateTTL < time.Minute {
		problems = append(problems, fmt.Sprintf("TELEGRAM_STATE_TTL must be at least 1m, got %s", cfg.TelegramCfg.StateTTL))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(problems, "\n  - "))
	}

	return nil
}

// Validate checks the settings only the bot binary needs.
func (c *TelegramConfig) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("%w: TELEGRAM_BOT_TOKEN is required", entity.ErrConfiguration)
	}
	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
