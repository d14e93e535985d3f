package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tresenlinea/internal/config"
	"github.com/rocketscienceinc/tresenlinea/internal/repository"
	"github.com/rocketscienceinc/tresenlinea/internal/repository/storage"
	redistransport "github.com/rocketscienceinc/tresenlinea/internal/transport/redis"
	"github.com/rocketscienceinc/tresenlinea/internal/usecase"
	"github.com/rocketscienceinc/tresenlinea/transport/rest"
	"github.com/rocketscienceinc/tresenlinea/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis host is empty")

// RunApp - runs the HTTP and WebSocket servers until ctx is canceled or one of them fails.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sessionRepo := repository.NewSessionRepository()

	var sessionManager *usecase.SessionManager

	if conf.Redis.Enabled {
		if conf.Redis.Host == "" {
			return ErrAddrNotFound
		}

		redisAddrString := conf.Redis.GetRedisAddr()

		redisClient, err := storage.New(ctx, redisAddrString)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisClient.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		publisher := redistransport.NewPublisher(redisClient, conf.Redis.Channel)
		sessionManager = usecase.NewSessionManager(logger, sessionRepo, publisher)

		log.Info("Publishing rounds to redis", "addr", redisAddrString, "channel", publisher.Channel())
	} else {
		sessionManager = usecase.NewSessionManager(logger, sessionRepo, nil)
	}

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		router := rest.NewRouter(rest.NewHandlers(logger, sessionManager))
		if httpErr := rest.Start(ctx, conf.HTTPPort, router); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, sessionManager, conf.AllowedOrigins)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err := <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err := <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
