package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tresenlinea/internal/entity"
)

const (
	ActionNewSession   = "session:new"
	ActionGetSession   = "session:get"
	ActionResetSession = "session:reset"
	ActionMove         = "game:move"
	ActionResetRound   = "round:reset"
	ActionGetScores    = "scores:get"
	ActionError        = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Request struct {
	SessionID string `json:"session_id,omitempty"`
	Cell      *int   `json:"cell,omitempty"`
}

type Response struct {
	Session *entity.Session `json:"session,omitempty"`
	Scores  *entity.Scores  `json:"scores,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func sendMessage(conn *websocket.Conn, action string, payload Response) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = conn.WriteJSON(Message{Action: action, Payload: payloadJSON}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func sendError(conn *websocket.Conn, action, errMsg string, session *entity.Session) error {
	return sendMessage(conn, action, Response{Error: errMsg, Session: session})
}
