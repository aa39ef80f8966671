package formatter

import (
	"bytes"
	"fmt"

	"github.com/futig/eco-advisor/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(d *entity.Diagnostic) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", baseTitle)
	fmt.Fprintf(&buf, "_%s_\n\n", d.CreatedAt.Format(dateLayout))

	fmt.Fprintf(&buf, "## %s\n\n", answersTitle)
	for _, answer := range d.Questionnaire.Answers() {
		fmt.Fprintf(&buf, "- **%s** : %s\n", answer.Label, answer.Value)
	}

	fmt.Fprintf(&buf, "\n## %s\n\n", scoresTitle)
	buf.WriteString("| Catégorie | Score | |\n|---|---|---|\n")
	for _, s := range d.Scores.Ordered() {
		fmt.Fprintf(&buf, "| %s | %d | %s |\n", s.Label, s.Score, scoreBar(s.Score))
	}
	fmt.Fprintf(&buf, "\n%s (%s)\n", totalLine(d.Scores), scoreLegend)

	fmt.Fprintf(&buf, "\n## %s\n\n%s\n", adviceTitle, adviceBody(d))
	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
