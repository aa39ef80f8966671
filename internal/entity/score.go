package entity

// Score bounds: 1 is the lowest ecological impact, 3 the highest.
const (
	MinScore = 1
	MaxScore = 3
)

// ScoreSet maps each questionnaire field to its impact score.
type ScoreSet map[Field]int

// Total sums all field scores.
func (s ScoreSet) Total() int {
	total := 0
	for _, v := range s {
		total += v
	}
	return total
}

// MaxTotal is the highest total a complete questionnaire can reach.
func MaxTotal() int {
	return len(Fields) * MaxScore
}

// Ordered returns the scores in presentation order.
func (s ScoreSet) Ordered() []FieldScore {
	out := make([]FieldScore, 0, len(s))
	for _, q := range Questions {
		if v, ok := s[q.Field]; ok {
			out = append(out, FieldScore{Field: q.Field, Label: q.Label, Score: v})
		}
	}
	return out
}

type FieldScore struct {
	Field Field  `json:"field"`
	Label string `json:"label"`
	Score int    `json:"score"`
}
