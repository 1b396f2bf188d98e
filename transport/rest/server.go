package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const shutdownTimeout = 5 * time.Second

// NewRouter - wires the HTTP routes.
func NewRouter(logger *slog.Logger, uGame uGame, settings entity.GameSettings) http.Handler {
	ping := NewPingHandler()
	games := NewHandlers(logger, uGame, settings)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/ping", ping.PingHandler)

	r.Post("/games", games.CreateGame)
	r.Route("/games/{id}", func(r chi.Router) {
		r.Get("/", games.GetGame)
		r.Delete("/", games.DeleteGame)
		r.Post("/moves", games.MakeTurn)
		r.Post("/mode", games.ChangeMode)
		r.Post("/level", games.SetLevel)
		r.Post("/reset", games.Reset)
		r.Post("/save", games.SaveGame)
		r.Post("/load", games.LoadGame)
	})

	return r
}

// Start - serves handler on port until ctx is canceled.
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

		_ = srv.Shutdown(shutdownCtx) //nolint: contextcheck // parent is already canceled
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func requestLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	log := logger.With("component", "rest")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.Info("request served",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
