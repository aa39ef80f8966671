package entity

import (
	"errors"
	"strings"
	"testing"
)

func TestAdviceResult(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r := AdviceSucceeded("Éteins les appareils en veille.")
		if !r.OK() {
			t.Fatal("OK() = false")
		}
		if r.Failure() != nil {
			t.Errorf("Failure() = %v", r.Failure())
		}
		if r.Message() != "" {
			t.Errorf("Message() = %q, want empty", r.Message())
		}
	})

	t.Run("failure", func(t *testing.T) {
		r := AdviceFailed(AdviceFailureAuth, "HTTP 401")
		if r.OK() {
			t.Fatal("OK() = true")
		}
		if r.Text() != "" {
			t.Errorf("Text() = %q, want empty", r.Text())
		}
		if !errors.Is(r.Failure(), ErrRemoteCall) {
			t.Errorf("failure does not wrap ErrRemoteCall: %v", r.Failure())
		}
		if !strings.Contains(r.Message(), "HTTP 401") {
			t.Errorf("Message() = %q", r.Message())
		}
	})

	t.Run("zero value is a failure", func(t *testing.T) {
		var r AdviceResult
		if r.OK() {
			t.Fatal("OK() = true for zero value")
		}
		if f := r.Failure(); f == nil || f.Kind != AdviceFailureEmptyContent {
			t.Errorf("Failure() = %v, want empty content", f)
		}
	})
}

func TestScoreSet_Ordered(t *testing.T) {
	scores := ScoreSet{
		FieldRecycling: 3,
		FieldHeating:   1,
		FieldLighting:  2,
		FieldStandby:   1,
		FieldTransport: 2,
	}

	ordered := scores.Ordered()
	for i, field := range Fields {
		if ordered[i].Field != field {
			t.Errorf("ordered[%d] = %s, want %s", i, ordered[i].Field, field)
		}
	}
	if scores.Total() != 9 {
		t.Errorf("Total() = %d, want 9", scores.Total())
	}
	if MaxTotal() != 15 {
		t.Errorf("MaxTotal() = %d, want 15", MaxTotal())
	}
}
