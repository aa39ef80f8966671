package keyboard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/futig/eco-advisor/internal/entity"
)

// Callback actions
const (
	ActionControl = "action"
	ActionAnswer  = "ans"
)

// Control values used with ActionControl
const (
	ValueStart   = "start"
	ValueCancel  = "cancel"
	ValueRestart = "restart"
)

// CallbackData represents parsed callback data
type CallbackData struct {
	Action string // "action", "ans"
	Value  string // The parameter
}

// ParseCallback parses callback data string
func ParseCallback(data string) (*CallbackData, error) {
	parts := strings.SplitN(data, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("invalid callback format: %s", data)
	}

	return &CallbackData{
		Action: parts[0],
		Value:  parts[1],
	}, nil
}

// EncodeCallback creates callback data string
func EncodeCallback(action, value string) string {
	return fmt.Sprintf("%s:%s", action, value)
}

// EncodeAnswer encodes the choice of option index for field. Indexes keep the
// payload under Telegram's 64 byte limit whatever the label length.
func EncodeAnswer(field entity.Field, option int) string {
	return EncodeCallback(ActionAnswer, fmt.Sprintf("%s:%d", field, option))
}

// ParseAnswer decodes the value of an ActionAnswer callback into the field
// and the chosen option label.
func ParseAnswer(value string) (entity.Field, string, error) {
	fieldPart, indexPart, ok := strings.Cut(value, ":")
	if !ok {
		return "", "", fmt.Errorf("%w: answer callback %q", entity.ErrInvalidLabel, value)
	}

	question, ok := entity.QuestionFor(entity.Field(fieldPart))
	if !ok {
		return "", "", fmt.Errorf("%w: unknown field %q", entity.ErrInvalidLabel, fieldPart)
	}

	index, err := strconv.Atoi(indexPart)
	if err != nil || index < 0 || index >= len(question.Options) {
		return "", "", fmt.Errorf("%w: option %q for %s", entity.ErrInvalidLabel, indexPart, fieldPart)
	}

	return question.Field, question.Options[index], nil
}
