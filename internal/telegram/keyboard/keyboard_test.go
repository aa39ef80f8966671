package keyboard

import (
	"errors"
	"testing"

	"github.com/futig/eco-advisor/internal/entity"
)

func TestParseCallback(t *testing.T) {
	tests := []struct {
		data    string
		want    CallbackData
		wantErr bool
	}{
		{data: "action:start", want: CallbackData{Action: "action", Value: "start"}},
		{data: "ans:chauffage:2", want: CallbackData{Action: "ans", Value: "chauffage:2"}},
		{data: "garbage", wantErr: true},
		{data: "action:", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			got, err := ParseCallback(tt.data)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseCallback(%q) expected error", tt.data)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCallback(%q) error = %v", tt.data, err)
			}
			if *got != tt.want {
				t.Errorf("ParseCallback(%q) = %+v, want %+v", tt.data, *got, tt.want)
			}
		})
	}
}

func TestAnswerRoundTrip(t *testing.T) {
	for _, question := range entity.Questions {
		for i, option := range question.Options {
			data := EncodeAnswer(question.Field, i)
			if len(data) > 64 {
				t.Errorf("callback %q exceeds 64 bytes", data)
			}

			cb, err := ParseCallback(data)
			if err != nil {
				t.Fatalf("ParseCallback(%q) error = %v", data, err)
			}
			field, label, err := ParseAnswer(cb.Value)
			if err != nil {
				t.Fatalf("ParseAnswer(%q) error = %v", cb.Value, err)
			}
			if field != question.Field || label != option {
				t.Errorf("ParseAnswer(%q) = %s/%q, want %s/%q", cb.Value, field, label, question.Field, option)
			}
		}
	}
}

func TestParseAnswer_Invalid(t *testing.T) {
	for _, value := range []string{"chauffage", "chauffage:3", "chauffage:-1", "piscine:0", "veille:x"} {
		if _, _, err := ParseAnswer(value); !errors.Is(err, entity.ErrInvalidLabel) {
			t.Errorf("ParseAnswer(%q) error = %v, want ErrInvalidLabel", value, err)
		}
	}
}

func TestQuestionKeyboard(t *testing.T) {
	question := entity.Questions[0]
	kb := NewBuilder().QuestionKeyboard(question)

	if got := len(kb.InlineKeyboard); got != len(question.Options)+1 {
		t.Fatalf("rows = %d, want %d", got, len(question.Options)+1)
	}
	first := kb.InlineKeyboard[0][0]
	if first.Text != question.Options[0] || first.CallbackData == nil || *first.CallbackData != "ans:chauffage:0" {
		t.Errorf("first button = %+v", first)
	}
}
