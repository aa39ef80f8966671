package entity

import "fmt"

// AdviceFailureKind classifies why advice could not be produced.
type AdviceFailureKind string

const (
	AdviceFailureNetwork      AdviceFailureKind = "network"
	AdviceFailureAuth         AdviceFailureKind = "auth"
	AdviceFailureRemote       AdviceFailureKind = "remote"
	AdviceFailureMalformed    AdviceFailureKind = "malformed_response"
	AdviceFailureEmptyContent AdviceFailureKind = "empty_content"
	AdviceFailureInternal     AdviceFailureKind = "internal"
)

// AdviceFailure describes a failed advice call. It wraps ErrRemoteCall.
type AdviceFailure struct {
	Kind   AdviceFailureKind `json:"kind"`
	Reason string            `json:"reason"`
}

func (f *AdviceFailure) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrRemoteCall, f.Kind, f.Reason)
}

func (f *AdviceFailure) Unwrap() error {
	return ErrRemoteCall
}

// AdviceResult is either advice text or a failure, never both.
type AdviceResult struct {
	text    string
	failure *AdviceFailure
}

// AdviceSucceeded builds a successful result.
func AdviceSucceeded(text string) AdviceResult {
	return AdviceResult{text: text}
}

// AdviceFailed builds a failed result.
func AdviceFailed(kind AdviceFailureKind, reason string) AdviceResult {
	return AdviceResult{failure: &AdviceFailure{Kind: kind, Reason: reason}}
}

// OK reports whether advice text is available.
func (r AdviceResult) OK() bool {
	return r.failure == nil && r.text != ""
}

// Text returns the advice, or an empty string on failure.
func (r AdviceResult) Text() string {
	if r.failure != nil {
		return ""
	}
	return r.text
}

// Failure returns the failure details, nil on success.
func (r AdviceResult) Failure() *AdviceFailure {
	if r.failure == nil && r.text == "" {
		return &AdviceFailure{Kind: AdviceFailureEmptyContent, Reason: "no advice produced"}
	}
	return r.failure
}

// Message returns the user-facing error line, empty on success.
func (r AdviceResult) Message() string {
	failure := r.Failure()
	if failure == nil {
		return ""
	}
	return fmt.Sprintf("Erreur API Mistral : %s", failure.Reason)
}
