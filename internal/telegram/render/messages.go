package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/futig/eco-advisor/internal/entity"
)

// MaxMessageLength is Telegram's limit for a text message, in characters.
const MaxMessageLength = 4096

const (
	MsgWelcome = `🌱 ÉcoConso – Diagnostic écologique

Réponds à 5 questions sur tes habitudes pour analyser ton profil et recevoir des conseils personnalisés.`

	MsgHelp = `🤖 Commandes du bot :

/start - Commencer un nouveau diagnostic
/cancel - Annuler le diagnostic en cours
/help - Afficher cette aide

Comment ça marche :
1. Réponds aux 5 questions avec les boutons
2. Reçois tes scores (1 = impact faible, 3 = impact élevé)
3. Reçois une analyse et 3 conseils concrets
4. Télécharge le rapport PDF et les graphiques`

	MsgQuestion = `%s

%s Question %d sur %d`

	MsgAnswerRecorded = `✅ %s : %s`

	MsgProcessing = `🔍 Analyse Mistral en cours…

Génération des conseils écologiques…`

	MsgResultSuccess = `✅ Résultat généré par Mistral :`

	MsgCancelled = `👋 Diagnostic annulé.

Pour recommencer, tape /start`

	MsgNoActiveQuiz = `Aucun diagnostic en cours. Tape /start pour commencer.`

	MsgUseButtons = `👇 Réponds avec les boutons sous la question.`

	MsgRestart = `Tu peux refaire le quiz quand tu veux.`

	CaptionReport = `📄 Rapport complet`
	CaptionCharts = `📊 Graphiques (à ouvrir dans un navigateur)`

	ErrGeneric        = `❌ Une erreur est survenue. Réessaie ou tape /start`
	ErrUnknownCommand = `❌ Commande inconnue. Tape /help`
	ErrStaleButton    = `Cette question a déjà une réponse`
	ErrInvalidData    = `❌ Données invalides`
	ErrBusy           = `⏳ Analyse déjà en cours…`
	ErrReport         = `❌ Le rapport n’a pas pu être généré.`
	ErrRateLimited    = `⚠️ Trop de requêtes. Attends un peu avant de continuer.`
)

// RenderQuestion formats a question with a progress bar
func RenderQuestion(index int, question entity.Question) string {
	total := len(entity.Questions)
	return fmt.Sprintf(MsgQuestion, question.Title, renderProgressBar(index, total), index+1, total)
}

// RenderAnswerRecorded replaces an answered question's text
func RenderAnswerRecorded(question entity.Question, label string) string {
	return fmt.Sprintf(MsgAnswerRecorded, question.Label, label)
}

// RenderResult formats scores and advice. A failed advice call shows the
// error line instead, the scores are always present.
func RenderResult(d *entity.Diagnostic) string {
	var sb strings.Builder

	sb.WriteString("📊 Score d’impact par catégorie\n\n")
	for _, s := range d.Scores.Ordered() {
		fmt.Fprintf(&sb, "%s %s : %d\n", scoreBar(s.Score), s.Label, s.Score)
	}
	fmt.Fprintf(&sb, "\nTotal : %d / %d (1 = impact faible, 3 = impact élevé)\n\n", d.Scores.Total(), entity.MaxTotal())

	if d.Advice.OK() {
		sb.WriteString(MsgResultSuccess)
		sb.WriteString("\n\n")
		sb.WriteString(d.Advice.Text())
	} else {
		sb.WriteString("❌ ")
		sb.WriteString(d.Advice.Message())
	}

	return Truncate(sb.String(), MaxMessageLength)
}

// Truncate cuts text to at most limit characters, marking the cut.
func Truncate(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit-1]) + "…"
}

func scoreBar(score int) string {
	switch score {
	case 1:
		return "🟢"
	case 2:
		return "🟡"
	default:
		return "🔴"
	}
}

// renderProgressBar creates a visual progress bar
func renderProgressBar(current, max int) string {
	if max <= 0 {
		return ""
	}

	filled := current * 10 / max
	return "[" + strings.Repeat("▓", filled) + strings.Repeat("░", 10-filled) + "]"
}
