package entity

import "time"

// Diagnostic is the outcome of one questionnaire submission. It is rebuilt on
// every submission and never stored.
type Diagnostic struct {
	ID            string
	CreatedAt     time.Time
	Questionnaire Questionnaire
	Scores        ScoreSet
	Advice        AdviceResult
}

type ResultFormat string

const (
	FormatMarkdown ResultFormat = "markdown"
	FormatDOCX     ResultFormat = "docx"
	FormatPDF      ResultFormat = "pdf"
)

func (f ResultFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatDOCX, FormatPDF:
		return true
	default:
		return false
	}
}
