package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/futig/eco-advisor/internal/config"
	"github.com/futig/eco-advisor/internal/entity"
	"github.com/futig/eco-advisor/internal/integration/common"
	pkghttp "github.com/futig/eco-advisor/pkg/http"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// SystemPrompt is sent as the system message of every advice request.
const SystemPrompt = "Tu es un assistant écologique bienveillant."

// requestIDHeader forwards the inbound request id to the advice service.
const requestIDHeader = "X-Request-ID"

// Connector asks the Mistral chat-completion API for advice. It keeps no
// per-call state; the underlying HTTP client is shared and read-only.
type Connector struct {
	config    config.LLMConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// GetAdvice sends one chat-completion request and returns the trimmed content
// of the first choice. Every failure is classified into the result; the call
// is never retried.
func (c *Connector) GetAdvice(ctx context.Context, prompt string) entity.AdviceResult {
	ctxzap.Info(ctx, "requesting advice from LLM service", zap.String("model", c.config.Model))

	req := &entity.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []entity.ChatMessage{
			{Role: entity.RoleSystem, Content: SystemPrompt},
			{Role: entity.RoleUser, Content: prompt},
		},
	}

	var opts []pkghttp.RequestOpt
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		opts = append(opts, pkghttp.WithHeader(requestIDHeader, reqID))
	}

	var resp entity.ChatCompletionResponse
	if err := c.connector.DoRequest(ctx, http.MethodPost, c.config.ChatEndpoint, req, &resp, opts...); err != nil {
		result := classifyError(err)
		ctxzap.Error(ctx, "advice request failed",
			zap.Error(err),
			zap.String("kind", string(result.Failure().Kind)),
		)
		return result
	}

	result := adviceFromResponse(&resp)
	if failure := result.Failure(); failure != nil {
		ctxzap.Warn(ctx, "advice response unusable",
			zap.String("kind", string(failure.Kind)),
			zap.String("reason", failure.Reason),
		)
		return result
	}

	ctxzap.Info(ctx, "advice generated successfully",
		zap.String("completion_id", resp.ID),
		zap.Int("result_length", len(result.Text())),
	)

	return result
}

func adviceFromResponse(resp *entity.ChatCompletionResponse) entity.AdviceResult {
	if len(resp.Choices) == 0 {
		return entity.AdviceFailed(entity.AdviceFailureMalformed, "la réponse ne contient aucun choix")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return entity.AdviceFailed(entity.AdviceFailureEmptyContent, "la réponse est vide")
	}

	return entity.AdviceSucceeded(text)
}

func classifyError(err error) entity.AdviceResult {
	var (
		httpErr   *pkghttp.HTTPError
		netErr    *pkghttp.NetworkError
		decodeErr *pkghttp.DecodeError
	)

	switch {
	case errors.As(err, &httpErr):
		if httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden {
			return entity.AdviceFailed(entity.AdviceFailureAuth, fmt.Sprintf("authentification refusée (HTTP %d)", httpErr.StatusCode))
		}
		return entity.AdviceFailed(entity.AdviceFailureRemote, fmt.Sprintf("le service a répondu HTTP %d", httpErr.StatusCode))
	case errors.As(err, &netErr):
		return entity.AdviceFailed(entity.AdviceFailureNetwork, netErr.Err.Error())
	case errors.As(err, &decodeErr):
		return entity.AdviceFailed(entity.AdviceFailureMalformed, decodeErr.Err.Error())
	default:
		return entity.AdviceFailed(entity.AdviceFailureInternal, err.Error())
	}
}
