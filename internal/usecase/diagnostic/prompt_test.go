package diagnostic

import (
	"strings"
	"testing"

	"github.com/futig/eco-advisor/internal/entity"
)

func TestBuildPrompt(t *testing.T) {
	for _, q := range []*entity.Questionnaire{lowImpact(), highImpact()} {
		prompt := BuildPrompt(q)

		for _, answer := range q.Answers() {
			if !strings.Contains(prompt, answer.Value) {
				t.Errorf("prompt does not contain %s value %q", answer.Field, answer.Value)
			}
		}
		if !strings.Contains(prompt, "3 conseils concrets") {
			t.Errorf("prompt does not ask for three pieces of advice:\n%s", prompt)
		}
		if prompt != BuildPrompt(q) {
			t.Error("BuildPrompt() is not deterministic")
		}
	}
}

func TestBuildPrompt_Layout(t *testing.T) {
	prompt := BuildPrompt(lowImpact())

	want := "- Chauffage : ≤ 19 °C\n" +
		"- Veille : Jamais\n" +
		"- Éclairage : LED\n" +
		"- Transport : Vélo / marche\n" +
		"- Recyclage : Oui\n\n"
	if !strings.Contains(prompt, want) {
		t.Errorf("prompt answers block mismatch:\n%s", prompt)
	}
}
