package entity

import "errors"

// Domain errors
var (
	// Startup errors
	ErrConfiguration = errors.New("invalid configuration")

	// Questionnaire errors
	ErrIncompleteInput = errors.New("questionnaire is incomplete")
	ErrInvalidLabel    = errors.New("invalid answer label")

	// Advice errors
	ErrRemoteCall = errors.New("advice service call failed")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidParameter = errors.New("invalid parameter")
)
