package entity

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

type DiagnosticDTO struct {
	ID          string       `json:"id"`
	CreatedAt   string       `json:"created_at"`
	Answers     []Answer     `json:"answers"`
	Scores      []FieldScore `json:"scores"`
	Total       int          `json:"total"`
	MaxTotal    int          `json:"max_total"`
	Advice      string       `json:"advice"`
	AdviceError string       `json:"advice_error,omitempty"`
}

type QuestionnaireDTO struct {
	Placeholder string     `json:"placeholder"`
	Questions   []Question `json:"questions"`
}

type ScoresDTO struct {
	Scores   []FieldScore `json:"scores"`
	Total    int          `json:"total"`
	MaxTotal int          `json:"max_total"`
}
