package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tresenlinea/internal/apperror"
	"github.com/rocketscienceinc/tresenlinea/internal/tictactoe"
)

// SessionRepository keeps the live sessions of this process. Nothing survives a restart.
type SessionRepository interface {
	Create(ctx context.Context, id string, controller *tictactoe.RoundController) error
	GetByID(ctx context.Context, id string) (*tictactoe.RoundController, error)
	DeleteByID(ctx context.Context, id string) error
	Count(ctx context.Context) int
}

type memSession struct {
	mu       sync.RWMutex
	sessions map[string]*tictactoe.RoundController
}

func NewSessionRepository() SessionRepository {
	return &memSession{
		sessions: make(map[string]*tictactoe.RoundController),
	}
}

func (that *memSession) Create(_ context.Context, id string, controller *tictactoe.RoundController) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[id]; ok {
		return apperror.ErrSessionAlreadyExists
	}

	that.sessions[id] = controller

	return nil
}

func (that *memSession) GetByID(_ context.Context, id string) (*tictactoe.RoundController, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	controller, ok := that.sessions[id]
	if !ok {
		return nil, apperror.ErrSessionNotFound
	}

	return controller, nil
}

func (that *memSession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[id]; !ok {
		return apperror.ErrSessionNotFound
	}

	delete(that.sessions, id)

	return nil
}

func (that *memSession) Count(_ context.Context) int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.sessions)
}
