package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tresenlinea/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type sessionUseCase interface {
	CreateSession(ctx context.Context) (*entity.Session, error)
	GetSession(ctx context.Context, sessionID string) (*entity.Session, error)

	ApplyMove(ctx context.Context, sessionID string, cell int) (*entity.Session, error)
	ResetRound(ctx context.Context, sessionID string) (*entity.Session, error)
	ResetSession(ctx context.Context, sessionID string) (*entity.Session, error)
	GetScores(ctx context.Context, sessionID string) (entity.Scores, error)
}

type handlerFunc func(ctx context.Context, req *Request, conn *websocket.Conn) error

type Server struct {
	logger   *slog.Logger
	sessions sessionUseCase
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, sessions sessionUseCase, allowedOrigins []string) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		sessions: sessions,
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(allowedOrigins),
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[ActionNewSession] = server.handleNewSession
	server.handlers[ActionGetSession] = server.handleGetSession
	server.handlers[ActionMove] = server.handleMove
	server.handlers[ActionResetRound] = server.handleResetRound
	server.handlers[ActionResetSession] = server.handleResetSession
	server.handlers[ActionGetScores] = server.handleGetScores

	return server
}

// originChecker - accepts requests without an Origin header, from the same host,
// or from one of the allowed origins. "*" allows any origin.
func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		set[strings.TrimSuffix(strings.ToLower(origin), "/")] = struct{}{}
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}

		if _, ok := set["*"]; ok {
			return true
		}

		if _, ok := set[strings.ToLower(origin)]; ok {
			return true
		}

		u, err := url.Parse(origin)
		if err != nil {
			return false
		}

		return strings.EqualFold(u.Host, r.Host)
	}
}

// Handler - returns the HTTP handler that upgrades /ws requests.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(ctx),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeConnection")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	log.Info("WebSocket connection established")

	if err = that.handleMessages(ctx, conn); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			if err = sendError(conn, ActionError, "invalid message", nil); err != nil {
				return err
			}
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			if err = sendError(conn, message.Action, "unknown action", nil); err != nil {
				return err
			}
			continue
		}

		var req Request
		if len(message.Payload) > 0 {
			if err = json.Unmarshal(message.Payload, &req); err != nil {
				if err = sendError(conn, message.Action, "invalid payload", nil); err != nil {
					return err
				}
				continue
			}
		}

		if err = handler(ctx, &req, conn); err != nil {
			return fmt.Errorf("failed to process %s: %w", message.Action, err)
		}
	}
}
