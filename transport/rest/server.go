package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

// NewRouter - builds the HTTP routes for the session API.
func NewRouter(handlers Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(10 * time.Second))

	router.Get("/ping", handlers.PingHandler)

	router.Route("/sessions", func(r chi.Router) {
		r.Post("/", handlers.CreateSession)

		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", handlers.GetSession)
			r.Delete("/", handlers.DeleteSession)
			r.Post("/moves", handlers.ApplyMove)
			r.Post("/round/reset", handlers.ResetRound)
			r.Post("/reset", handlers.ResetSession)
			r.Get("/scores", handlers.GetScores)
		})
	})

	return router
}

// Start - serves the router until ctx is canceled.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
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
