package formatter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/futig/eco-advisor/internal/entity"
	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (mf *DOCXFormatter) Format(d *entity.Diagnostic) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	heading := func(text, style string) {
		par := doc.AddParagraph()
		par.SetStyle(style)
		par.AddRun().AddText(text)
	}
	line := func(text string) {
		doc.AddParagraph().AddRun().AddText(text)
	}

	heading(baseTitle, "Title")
	line(d.CreatedAt.Format(dateLayout))

	heading(answersTitle, "Heading1")
	for _, answer := range d.Questionnaire.Answers() {
		par := doc.AddParagraph()
		label := par.AddRun()
		label.Properties().SetBold(true)
		label.AddText(answer.Label + " : ")
		par.AddRun().AddText(answer.Value)
	}

	heading(scoresTitle, "Heading1")
	for _, s := range d.Scores.Ordered() {
		line(fmt.Sprintf("%s : %d %s", s.Label, s.Score, scoreBar(s.Score)))
	}
	line(fmt.Sprintf("%s (%s)", totalLine(d.Scores), scoreLegend))

	heading(adviceTitle, "Heading1")
	for _, paragraph := range strings.Split(adviceBody(d), "\n") {
		line(paragraph)
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, fmt.Errorf("save docx: %w", err)
	}
	return buf.Bytes(), nil
}

func (mf *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (mf *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
