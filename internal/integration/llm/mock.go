package llm

import (
	"context"

	"github.com/futig/eco-advisor/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const mockAdvice = `**Analyse (MOCK)**
Ton profil montre déjà de bonnes habitudes, avec quelques marges de progrès sur la consommation d’énergie du quotidien.

**3 conseils concrets**
1. Baisse le chauffage d’un degré : environ 7 % d’énergie économisée.
2. Branche tes appareils sur une multiprise à interrupteur pour supprimer les veilles.
3. Remplace les dernières ampoules classiques par des LED.`

// MockConnector returns canned advice without any network call.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) GetAdvice(ctx context.Context, prompt string) entity.AdviceResult {
	ctxzap.Info(ctx, "[MOCK] requesting advice from LLM service", zap.Int("prompt_length", len(prompt)))
	return entity.AdviceSucceeded(mockAdvice)
}
