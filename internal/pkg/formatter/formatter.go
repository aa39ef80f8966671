package formatter

import (
	"fmt"
	"strings"

	"github.com/futig/eco-advisor/internal/entity"
)

const (
	baseTitle    = "Diagnostic écologique"
	answersTitle = "Tes réponses"
	scoresTitle  = "Score d’impact par catégorie"
	adviceTitle  = "Analyse et conseils"
	scoreLegend  = "1 = impact faible, 3 = impact élevé"
	dateLayout   = "02/01/2006 15:04"
	filenameStem = "diagnostic-"
)

type Formatter interface {
	Format(d *entity.Diagnostic) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", entity.ErrInvalidFormat, format)
	}
}

// Filename builds the download name for a diagnostic report.
func Filename(d *entity.Diagnostic, f Formatter) string {
	return filenameStem + d.ID + f.FileExtension()
}

// adviceBody returns the advice text, or the failure message when the advice
// service could not answer.
func adviceBody(d *entity.Diagnostic) string {
	if d.Advice.OK() {
		return d.Advice.Text()
	}
	return d.Advice.Message()
}

func totalLine(scores entity.ScoreSet) string {
	return fmt.Sprintf("Total : %d / %d", scores.Total(), entity.MaxTotal())
}

// scoreBar renders a score as filled and empty squares.
func scoreBar(score int) string {
	return strings.Repeat("■", score) + strings.Repeat("□", entity.MaxScore-score)
}
