package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

type historyService interface {
	Recent(ctx context.Context, limit int) ([]*entity.MatchRecord, error)
	Summary(ctx context.Context) ([]entity.MatchSummary, error)
}

type Server struct {
	logger         *slog.Logger
	historyService historyService
}

func New(logger *slog.Logger, historyService historyService) *Server {
	return &Server{
		logger:         logger.With("component", "rest"),
		historyService: historyService,
	}
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", pingHandler)
	mux.HandleFunc("GET /history", that.recentHandler)
	mux.HandleFunc("GET /history/summary", that.summaryHandler)

	return mux
}

// Start serves HTTP until ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
