package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tresenlinea/internal/apperror"
	"github.com/rocketscienceinc/tresenlinea/internal/entity"
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)

	CreateSession(w http.ResponseWriter, r *http.Request)
	GetSession(w http.ResponseWriter, r *http.Request)
	DeleteSession(w http.ResponseWriter, r *http.Request)

	ApplyMove(w http.ResponseWriter, r *http.Request)
	ResetRound(w http.ResponseWriter, r *http.Request)
	ResetSession(w http.ResponseWriter, r *http.Request)
	GetScores(w http.ResponseWriter, r *http.Request)
}

type sessionUseCase interface {
	CreateSession(ctx context.Context) (*entity.Session, error)
	GetSession(ctx context.Context, sessionID string) (*entity.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error

	ApplyMove(ctx context.Context, sessionID string, cell int) (*entity.Session, error)
	ResetRound(ctx context.Context, sessionID string) (*entity.Session, error)
	ResetSession(ctx context.Context, sessionID string) (*entity.Session, error)
	GetScores(ctx context.Context, sessionID string) (entity.Scores, error)
}

type moveRequest struct {
	Cell *int `json:"cell"`
}

type errorResponse struct {
	Error   string          `json:"error"`
	Session *entity.Session `json:"session,omitempty"`
}

type handlers struct {
	logger   *slog.Logger
	sessions sessionUseCase
}

func NewHandlers(logger *slog.Logger, sessions sessionUseCase) Handlers {
	return &handlers{
		logger:   logger.With("component", "rest"),
		sessions: sessions,
	}
}

func (that *handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.sessions.CreateSession(r.Context())
	if err != nil {
		that.writeError(w, "CreateSession", err, nil)
		return
	}

	that.writeJSON(w, http.StatusCreated, session)
}

func (that *handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.sessions.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		that.writeError(w, "GetSession", err, nil)
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

func (that *handlers) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := that.sessions.DeleteSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		that.writeError(w, "DeleteSession", err, nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) ApplyMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Cell == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "cell is required"})
		return
	}

	session, err := that.sessions.ApplyMove(r.Context(), chi.URLParam(r, "sessionID"), *req.Cell)
	if err != nil {
		that.writeError(w, "ApplyMove", err, session)
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

func (that *handlers) ResetRound(w http.ResponseWriter, r *http.Request) {
	session, err := that.sessions.ResetRound(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		that.writeError(w, "ResetRound", err, nil)
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

func (that *handlers) ResetSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.sessions.ResetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		that.writeError(w, "ResetSession", err, nil)
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

func (that *handlers) GetScores(w http.ResponseWriter, r *http.Request) {
	scores, err := that.sessions.GetScores(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		that.writeError(w, "GetScores", err, nil)
		return
	}

	that.writeJSON(w, http.StatusOK, scores)
}

func (that *handlers) writeError(w http.ResponseWriter, method string, err error, session *entity.Session) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error(), Session: session})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrOutOfRange), errors.Is(err, apperror.ErrInvalidPlayer):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrCellOccupied), errors.Is(err, apperror.ErrGameAlreadyOver):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
