package diagnostic

import (
	"context"

	"github.com/futig/eco-advisor/internal/entity"
)

// AdviceConnector fetches advice text for a prompt. Implementations report
// every failure through the returned result instead of an error.
type AdviceConnector interface {
	GetAdvice(ctx context.Context, prompt string) entity.AdviceResult
}
