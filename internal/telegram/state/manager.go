package state

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// DefaultProcessingTimeout is how long a quiz may stay in processing before
// a new one is allowed to replace it.
const DefaultProcessingTimeout = 5 * time.Minute

// Manager manages telegram sessions
type Manager struct {
	storage Storage
	// serializes read-modify-write cycles on sessions
	mu                sync.Mutex
	now               func() time.Time
	processingTimeout time.Duration
}

// NewManager creates a new state manager
func NewManager(storage Storage) *Manager {
	return &Manager{
		storage:           storage,
		now:               time.Now,
		processingTimeout: DefaultProcessingTimeout,
	}
}

// GetSession retrieves telegram session from storage
func (m *Manager) GetSession(ctx context.Context, userID int64) (*TelegramSession, error) {
	session, err := m.storage.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get telegram session from storage: %w", err)
	}

	return session, nil
}

// StartSession replaces any previous session of the user with an empty quiz.
// A session still being diagnosed is kept and ErrSessionBusy is returned,
// unless its processing outlived the processing timeout.
func (m *Manager) StartSession(ctx context.Context, userID, chatID int64) (*TelegramSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()

	current, err := m.storage.Get(ctx, userID)
	switch {
	case err == nil:
		if current.StateData.IsProcessing && now.Sub(current.StateData.ProcessingStarted) < m.processingTimeout {
			return nil, ErrSessionBusy
		}
	case !errors.Is(err, ErrSessionNotFound):
		return nil, fmt.Errorf("get telegram session from storage: %w", err)
	}

	session := &TelegramSession{
		UserID:    userID,
		ChatID:    chatID,
		StateData: StateData{Version: StateDataCurrentVersion},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := m.storage.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("save telegram session to storage: %w", err)
	}

	return session, nil
}

// GetStateData extracts typed state data
func (m *Manager) GetStateData(ctx context.Context, userID int64) (*StateData, error) {
	session, err := m.GetSession(ctx, userID)
	if err != nil {
		return nil, err
	}

	data := session.StateData
	return &data, nil
}

// UpdateStateData applies fn to the stored state data and saves the result.
// The session is left untouched when fn returns an error.
func (m *Manager) UpdateStateData(ctx context.Context, userID int64, fn func(data *StateData) error) (*StateData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.GetSession(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := fn(&session.StateData); err != nil {
		return nil, err
	}

	session.StateData.Version = StateDataCurrentVersion
	session.UpdatedAt = m.now()

	if err := m.storage.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("save telegram session to storage: %w", err)
	}

	data := session.StateData
	return &data, nil
}

// DeleteSession removes telegram session from storage
func (m *Manager) DeleteSession(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.storage.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete telegram session from storage: %w", err)
	}

	return nil
}

// DiscardProcessed removes the session whose processing started at started.
// A session that was cancelled or replaced in the meantime is left alone.
func (m *Manager) DiscardProcessed(ctx context.Context, userID int64, started time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.storage.Get(ctx, userID)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get telegram session from storage: %w", err)
	}

	data := session.StateData
	if !data.IsProcessing || !data.ProcessingStarted.Equal(started) {
		return nil
	}

	if err := m.storage.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete telegram session from storage: %w", err)
	}

	return nil
}
