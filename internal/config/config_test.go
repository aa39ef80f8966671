package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/futig/eco-advisor/internal/entity"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MISTRAL_API_KEY", "test-key")

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LLMConnectorCfg.Token != "test-key" {
		t.Errorf("Token = %q", cfg.LLMConnectorCfg.Token)
	}
	if cfg.LLMConnectorCfg.Model != "mistral-small-latest" {
		t.Errorf("Model = %q", cfg.LLMConnectorCfg.Model)
	}
	if cfg.LLMConnectorCfg.Url != "https://api.mistral.ai" {
		t.Errorf("Url = %q", cfg.LLMConnectorCfg.Url)
	}
	if cfg.LLMConnectorCfg.ChatEndpoint != "/v1/chat/completions" {
		t.Errorf("ChatEndpoint = %q", cfg.LLMConnectorCfg.ChatEndpoint)
	}
	if cfg.LLMConnectorCfg.RequestTimeout != 60*time.Second {
		t.Errorf("RequestTimeout = %s", cfg.LLMConnectorCfg.RequestTimeout)
	}
	if cfg.TelegramCfg.SendRetry.Attempts != 3 {
		t.Errorf("SendRetry.Attempts = %d", cfg.TelegramCfg.SendRetry.Attempts)
	}
	if cfg.Environment != "test" {
		t.Errorf("Environment = %q", cfg.Environment)
	}
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("MISTRAL_API_KEY", "")

	_, err := Load("test")
	if !errors.Is(err, entity.ErrConfiguration) {
		t.Fatalf("Load() error = %v, want ErrConfiguration", err)
	}
}

func TestLoad_ReportsEveryProblem(t *testing.T) {
	t.Setenv("MISTRAL_API_KEY", "test-key")
	t.Setenv("MISTRAL_SERVICE_URL", "api.mistral.ai")
	t.Setenv("TELEGRAM_RATE_LIMIT_BURST", "0")

	_, err := Load("test")
	if !errors.Is(err, entity.ErrConfiguration) {
		t.Fatalf("Load() error = %v, want ErrConfiguration", err)
	}
	for _, want := range []string{"MISTRAL_SERVICE_URL", "TELEGRAM_RATE_LIMIT_BURST"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestTelegramConfig_Validate(t *testing.T) {
	cfg := TelegramConfig{}
	if err := cfg.Validate(); !errors.Is(err, entity.ErrConfiguration) {
		t.Errorf("Validate() error = %v, want ErrConfiguration", err)
	}

	cfg.BotToken = "123:abc"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestGetEnvFile(t *testing.T) {
	tests := map[string]string{
		"prod":    ".env.prod",
		"dev":     ".env.local",
		"local":   ".env.local",
		"staging": ".env.staging",
	}
	for env, want := range tests {
		if got := getEnvFile(env); got != want {
			t.Errorf("getEnvFile(%q) = %q, want %q", env, got, want)
		}
	}
}
