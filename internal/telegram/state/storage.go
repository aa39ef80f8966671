package state

import (
	"context"
	"errors"
	"time"

	"github.com/futig/eco-advisor/internal/entity"
)

var (
	// ErrSessionNotFound is returned when the user has no quiz in progress.
	ErrSessionNotFound = errors.New("telegram session not found")
	// ErrSessionBusy is returned when a finished quiz is still being diagnosed.
	ErrSessionBusy = errors.New("telegram session is being processed")
)

// TelegramSession holds one user's in-progress questionnaire.
type TelegramSession struct {
	UserID    int64
	ChatID    int64
	StateData StateData
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StateData contains the quiz progress of a user
type StateData struct {
	// Version for compatibility tracking (current version: 1)
	Version int

	// Index into entity.Questions of the question being asked
	CurrentQuestionIndex int

	// Answers collected so far; unanswered fields stay empty
	Answers entity.Questionnaire

	// Message holding the current question keyboard (for editing)
	LastMessageID int

	// Set while the diagnostic is computed, ignores further answers.
	// ProcessingStarted also identifies the run that owns the session.
	IsProcessing      bool
	ProcessingStarted time.Time
}

const (
	// StateDataCurrentVersion is the current version of StateData
	StateDataCurrentVersion = 1
)

// Storage defines the interface for telegram session persistence
type Storage interface {
	// Get retrieves telegram session by user ID
	Get(ctx context.Context, userID int64) (*TelegramSession, error)

	// Set saves telegram session
	Set(ctx context.Context, session *TelegramSession) error

	// Delete removes telegram session
	Delete(ctx context.Context, userID int64) error
}
