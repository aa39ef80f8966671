package formatter

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/futig/eco-advisor/internal/entity"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the internal name used by gofpdf
	// for the UTF-8 capable font.
	pdfFontName = "DejaVuSans"

	// Score bar geometry, in mm.
	pdfLabelWidth = 45.0
	pdfBarUnit    = 35.0
	pdfBarHeight  = 7.0
)

// Core PDF fonts are cp1252 only and lose answers such as "≤ 19 °C".
var (
	//go:embed ttf/DejaVuSans.ttf
	dejaVuSans []byte
	//go:embed ttf/DejaVuSans-Bold.ttf
	dejaVuSansBold []byte
)

type PDFFormatter struct {
	uncompressed bool
}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

func (mf *PDFFormatter) Format(d *entity.Diagnostic) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(!mf.uncompressed)
	pdf.AddUTF8FontFromBytes(pdfFontName, "", dejaVuSans)
	pdf.AddUTF8FontFromBytes(pdfFontName, "B", dejaVuSansBold)
	pdf.AddPage()

	section := func(title string) {
		pdf.Ln(6)
		pdf.SetFont(pdfFontName, "B", 14)
		pdf.Cell(0, 8, title)
		pdf.Ln(10)
		pdf.SetFont(pdfFontName, "", 11)
	}

	pdf.SetFont(pdfFontName, "B", 20)
	pdf.Cell(0, 10, baseTitle)
	pdf.Ln(10)
	pdf.SetFont(pdfFontName, "", 10)
	pdf.Cell(0, 6, d.CreatedAt.Format(dateLayout))
	pdf.Ln(6)

	section(answersTitle)
	for _, answer := range d.Questionnaire.Answers() {
		pdf.CellFormat(pdfLabelWidth, 6, answer.Label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, answer.Value, "", 1, "L", false, 0, "")
	}

	section(scoresTitle)
	drawScoreBars(pdf, d.Scores)
	pdf.Ln(2)
	pdf.Cell(0, 6, fmt.Sprintf("%s (%s)", totalLine(d.Scores), scoreLegend))
	pdf.Ln(6)

	section(adviceTitle)
	_, lineHeight := pdf.GetFontSize()
	pdf.MultiCell(0, lineHeight*1.5, adviceBody(d), "", "", false)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// drawScoreBars draws one horizontal bar per category, green for low impact
// and red for high impact.
func drawScoreBars(pdf *gofpdf.Fpdf, scores entity.ScoreSet) {
	for _, s := range scores.Ordered() {
		r, g, b := scoreColor(s.Score)
		x, y := pdf.GetX(), pdf.GetY()

		pdf.CellFormat(pdfLabelWidth, pdfBarHeight, s.Label, "", 0, "L", false, 0, "")
		pdf.SetFillColor(r, g, b)
		pdf.Rect(x+pdfLabelWidth, y+1, pdfBarUnit*float64(s.Score), pdfBarHeight-2, "F")
		pdf.SetXY(x+pdfLabelWidth+pdfBarUnit*float64(entity.MaxScore)+3, y)
		pdf.CellFormat(10, pdfBarHeight, fmt.Sprintf("%d", s.Score), "", 1, "L", false, 0, "")
	}
}

func scoreColor(score int) (int, int, int) {
	switch score {
	case 1:
		return 76, 175, 80
	case 2:
		return 255, 193, 7
	default:
		return 229, 57, 53
	}
}

func (mf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (mf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
