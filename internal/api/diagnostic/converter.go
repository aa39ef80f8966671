package diagnostic

import (
	"time"

	"github.com/futig/eco-advisor/internal/entity"
)

func toDiagnosticDTO(d *entity.Diagnostic) *entity.DiagnosticDTO {
	return &entity.DiagnosticDTO{
		ID:          d.ID,
		CreatedAt:   d.CreatedAt.Format(time.RFC3339),
		Answers:     d.Questionnaire.Answers(),
		Scores:      d.Scores.Ordered(),
		Total:       d.Scores.Total(),
		MaxTotal:    entity.MaxTotal(),
		Advice:      d.Advice.Text(),
		AdviceError: d.Advice.Message(),
	}
}

func toScoresDTO(scores entity.ScoreSet) *entity.ScoresDTO {
	return &entity.ScoresDTO{
		Scores:   scores.Ordered(),
		Total:    scores.Total(),
		MaxTotal: entity.MaxTotal(),
	}
}

func toQuestionnaireDTO(questions []entity.Question) *entity.QuestionnaireDTO {
	return &entity.QuestionnaireDTO{
		Placeholder: entity.Placeholder,
		Questions:   questions,
	}
}
