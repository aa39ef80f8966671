package entity

import (
	"fmt"
	"strings"
)

// Field names a questionnaire question. Values double as JSON keys.
type Field string

const (
	FieldHeating   Field = "chauffage"
	FieldStandby   Field = "veille"
	FieldLighting  Field = "eclairage"
	FieldTransport Field = "transport"
	FieldRecycling Field = "recyclage"
)

// Fields lists the questionnaire fields in presentation order.
var Fields = []Field{
	FieldHeating,
	FieldStandby,
	FieldLighting,
	FieldTransport,
	FieldRecycling,
}

// Placeholder is the "not yet selected" option shown before the user picks an answer.
const Placeholder = "-- Choisir --"

type Heating string

const (
	HeatingLow    Heating = "≤ 19 °C"
	HeatingMedium Heating = "20-21 °C"
	HeatingHigh   Heating = "≥ 22 °C"
)

type Standby string

const (
	StandbyNever     Standby = "Jamais"
	StandbySometimes Standby = "Parfois"
	StandbyAlways    Standby = "Toujours"
)

type Lighting string

const (
	LightingLED       Lighting = "LED"
	LightingLowEnergy Lighting = "Basse consommation"
	LightingClassic   Lighting = "Classique"
)

type Transport string

const (
	TransportActive Transport = "Vélo / marche"
	TransportPublic Transport = "Transports en commun"
	TransportCar    Transport = "Voiture"
)

type Recycling string

const (
	RecyclingYes       Recycling = "Oui"
	RecyclingSometimes Recycling = "Parfois"
	RecyclingNo        Recycling = "Non"
)

// Question describes one form question. Options are ordered from the lowest
// to the highest ecological impact and never include the placeholder.
type Question struct {
	Field   Field    `json:"field"`
	Title   string   `json:"title"`
	Label   string   `json:"label"`
	Options []string `json:"options"`
}

// Questions is the fixed questionnaire, in presentation order.
var Questions = []Question{
	{
		Field:   FieldHeating,
		Title:   "1. Température du chauffage ?",
		Label:   "Chauffage",
		Options: []string{string(HeatingLow), string(HeatingMedium), string(HeatingHigh)},
	},
	{
		Field:   FieldStandby,
		Title:   "2. Appareils laissés en veille ?",
		Label:   "Veille",
		Options: []string{string(StandbyNever), string(StandbySometimes), string(StandbyAlways)},
	},
	{
		Field:   FieldLighting,
		Title:   "3. Type d’éclairage ?",
		Label:   "Éclairage",
		Options: []string{string(LightingLED), string(LightingLowEnergy), string(LightingClassic)},
	},
	{
		Field:   FieldTransport,
		Title:   "4. Transport principal ?",
		Label:   "Transport",
		Options: []string{string(TransportActive), string(TransportPublic), string(TransportCar)},
	},
	{
		Field:   FieldRecycling,
		Title:   "5. Tu recycles ?",
		Label:   "Recyclage",
		Options: []string{string(RecyclingYes), string(RecyclingSometimes), string(RecyclingNo)},
	},
}

// QuestionFor returns the question definition for the field.
func QuestionFor(field Field) (Question, bool) {
	for _, q := range Questions {
		if q.Field == field {
			return q, true
		}
	}
	return Question{}, false
}

// HasOption reports whether label is one of the question's options.
func (q Question) HasOption(label string) bool {
	for _, opt := range q.Options {
		if opt == label {
			return true
		}
	}
	return false
}

// Answer is a single field value in presentation order.
type Answer struct {
	Field Field  `json:"field"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Questionnaire holds the user's answers. A zero value or the placeholder in a
// field means the question has not been answered yet.
type Questionnaire struct {
	Heating   Heating   `json:"chauffage"`
	Standby   Standby   `json:"veille"`
	Lighting  Lighting  `json:"eclairage"`
	Transport Transport `json:"transport"`
	Recycling Recycling `json:"recyclage"`
}

// Value returns the raw label stored for the field.
func (q *Questionnaire) Value(field Field) string {
	switch field {
	case FieldHeating:
		return string(q.Heating)
	case FieldStandby:
		return string(q.Standby)
	case FieldLighting:
		return string(q.Lighting)
	case FieldTransport:
		return string(q.Transport)
	case FieldRecycling:
		return string(q.Recycling)
	}
	return ""
}

// Set stores label for field. The placeholder and the empty string reset the
// field; any other label must belong to the field's options.
func (q *Questionnaire) Set(field Field, label string) error {
	question, ok := QuestionFor(field)
	if !ok {
		return fmt.Errorf("%w: unknown field %q", ErrInvalidLabel, field)
	}

	if isUnset(label) {
		label = ""
	} else if !question.HasOption(label) {
		return fmt.Errorf("%w: %q for %s", ErrInvalidLabel, label, field)
	}

	switch field {
	case FieldHeating:
		q.Heating = Heating(label)
	case FieldStandby:
		q.Standby = Standby(label)
	case FieldLighting:
		q.Lighting = Lighting(label)
	case FieldTransport:
		q.Transport = Transport(label)
	case FieldRecycling:
		q.Recycling = Recycling(label)
	}
	return nil
}

// Answers returns the stored values in presentation order.
func (q *Questionnaire) Answers() []Answer {
	answers := make([]Answer, 0, len(Questions))
	for _, question := range Questions {
		answers = append(answers, Answer{
			Field: question.Field,
			Label: question.Label,
			Value: q.Value(question.Field),
		})
	}
	return answers
}

// Missing lists the fields still holding the placeholder.
func (q *Questionnaire) Missing() []Field {
	var missing []Field
	for _, field := range Fields {
		if isUnset(q.Value(field)) {
			missing = append(missing, field)
		}
	}
	return missing
}

// IsComplete reports whether every field has a non-placeholder value.
func (q *Questionnaire) IsComplete() bool {
	return len(q.Missing()) == 0
}

// Validate rejects incomplete questionnaires and labels outside the fixed option sets.
func (q *Questionnaire) Validate() error {
	if missing := q.Missing(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, f := range missing {
			names[i] = string(f)
		}
		return fmt.Errorf("%w: %s", ErrIncompleteInput, strings.Join(names, ", "))
	}

	for _, question := range Questions {
		if value := q.Value(question.Field); !question.HasOption(value) {
			return fmt.Errorf("%w: %q for %s", ErrInvalidLabel, value, question.Field)
		}
	}
	return nil
}

func isUnset(label string) bool {
	return strings.TrimSpace(label) == "" || label == Placeholder
}
