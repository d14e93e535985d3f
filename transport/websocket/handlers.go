package websocket

import (
	"context"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tresenlinea/internal/entity"
)

func (that *Server) handleNewSession(ctx context.Context, _ *Request, conn *websocket.Conn) error {
	session, err := that.sessions.CreateSession(ctx)
	if err != nil {
		that.logger.Error("failed to create session", "error", err)
		return sendError(conn, ActionNewSession, "failed to create a new session", nil)
	}

	return sendMessage(conn, ActionNewSession, Response{Session: session})
}

func (that *Server) handleGetSession(ctx context.Context, req *Request, conn *websocket.Conn) error {
	if req.SessionID == "" {
		return sendError(conn, ActionGetSession, "session_id is required", nil)
	}

	session, err := that.sessions.GetSession(ctx, req.SessionID)
	if err != nil {
		return sendError(conn, ActionGetSession, err.Error(), nil)
	}

	return sendMessage(conn, ActionGetSession, Response{Session: session})
}

func (that *Server) handleMove(ctx context.Context, req *Request, conn *websocket.Conn) error {
	if req.SessionID == "" {
		return sendError(conn, ActionMove, "session_id is required", nil)
	}

	if req.Cell == nil {
		return sendError(conn, ActionMove, "cell is required", nil)
	}

	session, err := that.sessions.ApplyMove(ctx, req.SessionID, *req.Cell)
	if err != nil {
		return sendError(conn, ActionMove, err.Error(), session)
	}

	return sendMessage(conn, ActionMove, Response{Session: session})
}

func (that *Server) handleResetRound(ctx context.Context, req *Request, conn *websocket.Conn) error {
	return that.reset(ctx, req, conn, ActionResetRound, that.sessions.ResetRound)
}

func (that *Server) handleResetSession(ctx context.Context, req *Request, conn *websocket.Conn) error {
	return that.reset(ctx, req, conn, ActionResetSession, that.sessions.ResetSession)
}

func (that *Server) reset(
	ctx context.Context,
	req *Request,
	conn *websocket.Conn,
	action string,
	resetFn func(ctx context.Context, sessionID string) (*entity.Session, error),
) error {
	if req.SessionID == "" {
		return sendError(conn, action, "session_id is required", nil)
	}

	session, err := resetFn(ctx, req.SessionID)
	if err != nil {
		return sendError(conn, action, err.Error(), nil)
	}

	return sendMessage(conn, action, Response{Session: session})
}

func (that *Server) handleGetScores(ctx context.Context, req *Request, conn *websocket.Conn) error {
	if req.SessionID == "" {
		return sendError(conn, ActionGetScores, "session_id is required", nil)
	}

	scores, err := that.sessions.GetScores(ctx, req.SessionID)
	if err != nil {
		return sendError(conn, ActionGetScores, err.Error(), nil)
	}

	return sendMessage(conn, ActionGetScores, Response{Scores: &scores})
}
