package diagnostic

import (
	"fmt"
	"strings"

	"github.com/futig/eco-advisor/internal/entity"
)

const (
	promptIntro = "Tu es un expert en écologie. Voici les habitudes de consommation énergétique " +
		"d’un·e utilisateur·ice :\n"
	promptOutro = "Fournis une courte analyse de son profil écologique et donne 3 conseils concrets " +
		"pour améliorer son comportement."
)

// BuildPrompt renders the user message for the advice request. Every answer is
// embedded verbatim, one line per question.
func BuildPrompt(q *entity.Questionnaire) string {
	var b strings.Builder
	b.WriteString(promptIntro)
	for _, answer := range q.Answers() {
		fmt.Fprintf(&b, "- %s : %s\n", answer.Label, answer.Value)
	}
	b.WriteString("\n")
	b.WriteString(promptOutro)
	return b.String()
}
