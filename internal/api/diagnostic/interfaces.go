package diagnostic

import (
	"context"

	"github.com/futig/eco-advisor/internal/entity"
)

type DiagnosticUsecase interface {
	Questions() []entity.Question
	Score(ctx context.Context, q *entity.Questionnaire) (entity.ScoreSet, error)
	Diagnose(ctx context.Context, q *entity.Questionnaire) (*entity.Diagnostic, error)
}
