package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tresenlinea/internal/entity"
	"github.com/rocketscienceinc/tresenlinea/internal/pkg"
	"github.com/rocketscienceinc/tresenlinea/internal/tictactoe"
)

type sessionRepo interface {
	Create(ctx context.Context, id string, controller *tictactoe.RoundController) error
	GetByID(ctx context.Context, id string) (*tictactoe.RoundController, error)
	DeleteByID(ctx context.Context, id string) error
}

type roundPublisher interface {
	PublishRound(ctx context.Context, event *entity.RoundEvent) error
}

// SessionManager serves many sessions. Calls are serialized so every core operation
// runs to completion before the next one starts.
type SessionManager struct {
	logger *slog.Logger

	mu          sync.Mutex
	sessionRepo sessionRepo
	publisher   roundPublisher
}

func NewSessionManager(logger *slog.Logger, sessionRepo sessionRepo, publisher roundPublisher) *SessionManager {
	if publisher == nil {
		publisher = nopPublisher{}
	}

	return &SessionManager{
		logger: logger.With("component", "session_manager"),

		sessionRepo: sessionRepo,
		publisher:   publisher,
	}
}

func (that *SessionManager) CreateSession(ctx context.Context) (*entity.Session, error) {
	sessionID, err := pkg.GenerateSessionID()
	if err != nil {
		return nil, fmt.Errorf("error generating session ID: %w", err)
	}

	controller := tictactoe.NewRoundController()

	that.mu.Lock()
	defer that.mu.Unlock()

	if err = that.sessionRepo.Create(ctx, sessionID, controller); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	that.logger.Debug("session created", "sessionID", sessionID)

	return snapshot(sessionID, controller), nil
}

func (that *SessionManager) GetSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	controller, err := that.getController(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return snapshot(sessionID, controller), nil
}

// ApplyMove - plays the cell for the player whose turn it is and publishes the round when it concludes.
func (that *SessionManager) ApplyMove(ctx context.Context, sessionID string, cell int) (*entity.Session, error) {
	log := that.logger.With("method", "ApplyMove", "sessionID", sessionID, "cell", cell)

	that.mu.Lock()
	defer that.mu.Unlock()

	controller, err := that.getController(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	state, err := controller.ApplyMove(cell)
	if err != nil {
		log.Debug("move rejected", "error", err)
		return snapshot(sessionID, controller), fmt.Errorf("failed to make move: %w", err)
	}

	if state.Outcome.IsInProgress() {
		return snapshot(sessionID, controller), nil
	}

	session := snapshot(sessionID, controller)
	log.Info("round concluded", "status", state.Outcome.Status, "winner", state.Outcome.Winner)

	event := &entity.RoundEvent{
		SessionID: sessionID,
		Board:     state.Board,
		Outcome:   state.Outcome,
		Scores:    session.Scores,
	}
	if err = that.publisher.PublishRound(ctx, event); err != nil {
		log.Error("failed to publish round", "error", err)
	}

	return session, nil
}

// ResetRound - starts a new round, the session keeps its scores.
func (that *SessionManager) ResetRound(ctx context.Context, sessionID string) (*entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	controller, err := that.getController(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	controller.ResetRound()

	return snapshot(sessionID, controller), nil
}

// ResetSession - starts a new round and zeroes the scores.
func (that *SessionManager) ResetSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	controller, err := that.getController(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	controller.ResetSession()

	that.logger.Debug("session reset", "sessionID", sessionID)

	return snapshot(sessionID, controller), nil
}

func (that *SessionManager) GetScores(ctx context.Context, sessionID string) (entity.Scores, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	controller, err := that.getController(ctx, sessionID)
	if err != nil {
		return entity.Scores{}, err
	}

	return controller.Scores(), nil
}

func (that *SessionManager) DeleteSession(ctx context.Context, sessionID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.sessionRepo.DeleteByID(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Debug("session deleted", "sessionID", sessionID)

	return nil
}

func (that *SessionManager) getController(ctx context.Context, sessionID string) (*tictactoe.RoundController, error) {
	controller, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	return controller, nil
}

func snapshot(sessionID string, controller *tictactoe.RoundController) *entity.Session {
	return &entity.Session{
		ID:     sessionID,
		State:  controller.State(),
		Scores: controller.Scores(),
	}
}

type nopPublisher struct{}

func (nopPublisher) PublishRound(context.Context, *entity.RoundEvent) error {
	return nil
}
