package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/rocketscienceinc/fourinarow-backend/internal/entity"
	"github.com/rocketscienceinc/fourinarow-backend/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

type gameService interface {
	ClearAll() (int, error)
	ListGames() []usecase.GameSummary
}

type resultLister interface {
	ListRecent(ctx context.Context, limit int) ([]*entity.Result, error)
}

// Server is the HTTP control endpoint. results may be nil when no result storage is configured.
type Server struct {
	logger  *slog.Logger
	games   gameService
	results resultLister
	metrics http.Handler
}

func New(logger *slog.Logger, games gameService, results resultLister, metrics http.Handler) *Server {
	return &Server{
		logger:  logger.With("component", "rest_server"),
		games:   games,
		results: results,
		metrics: metrics,
	}
}

func (that *Server) Router() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/ping", that.handlePing).Methods(http.MethodGet)
	router.HandleFunc("/games", that.handleListGames).Methods(http.MethodGet)
	router.HandleFunc("/games", that.handleClearGames).Methods(http.MethodDelete)
	router.HandleFunc("/results", that.handleListResults).Methods(http.MethodGet)
	router.Handle("/metrics", that.metrics).Methods(http.MethodGet)

	return router
}

// Start - starts HTTP server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down HTTP server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
