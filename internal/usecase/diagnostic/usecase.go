package diagnostic

import (
	"context"
	"fmt"
	"time"

	"github.com/futig/eco-advisor/internal/entity"
	"github.com/futig/eco-advisor/internal/pkg/logger"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type DiagnosticUsecase struct {
	scorer  *Scorer
	advisor AdviceConnector
	logger  *zap.Logger
	now     func() time.Time
}

func NewUsecase(advisor AdviceConnector, logger *zap.Logger) *DiagnosticUsecase {
	return &DiagnosticUsecase{
		scorer:  NewScorer(),
		advisor: advisor,
		logger:  logger,
		now:     time.Now,
	}
}

// Questions returns the fixed questionnaire definition.
func (uc *DiagnosticUsecase) Questions() []entity.Question {
	return entity.Questions
}

// Score validates the questionnaire and computes its scores without calling
// the advice service.
func (uc *DiagnosticUsecase) Score(ctx context.Context, q *entity.Questionnaire) (entity.ScoreSet, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	scores, err := uc.scorer.Score(q)
	if err != nil {
		return nil, fmt.Errorf("score questionnaire: %w", err)
	}

	ctxzap.Debug(ctx, "questionnaire scored", zap.Int("total", scores.Total()))

	return scores, nil
}

// Diagnose scores the questionnaire and asks the advice service for
// recommendations. Only input errors are returned: an advice failure is
// carried by Diagnostic.Advice and leaves the scores intact.
func (uc *DiagnosticUsecase) Diagnose(ctx context.Context, q *entity.Questionnaire) (*entity.Diagnostic, error) {
	scores, err := uc.Score(ctx, q)
	if err != nil {
		return nil, err
	}

	diagnostic := &entity.Diagnostic{
		ID:            uuid.New().String(),
		CreatedAt:     uc.now(),
		Questionnaire: *q,
		Scores:        scores,
	}

	ctx = logger.WithDiagnostic(ctx, diagnostic.ID)
	ctxzap.Info(ctx, "requesting advice", zap.Int("total", scores.Total()))

	diagnostic.Advice = uc.advisor.GetAdvice(ctx, BuildPrompt(q))

	if failure := diagnostic.Advice.Failure(); failure != nil {
		ctxzap.Warn(ctx, "advice unavailable",
			zap.String("kind", string(failure.Kind)),
			zap.String("reason", failure.Reason),
		)
	} else {
		ctxzap.Info(ctx, "advice received", zap.Int("advice_length", len(diagnostic.Advice.Text())))
	}

	return diagnostic, nil
}
