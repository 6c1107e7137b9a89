// Package health serves the liveness endpoint some hosting platforms
// require before they consider a worker process alive.
package health

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"log/slog"
	"mediabot/core/logger"
)

const liveBody = "Bot is running!"

// Server is a minimal HTTP listener answering the platform health check.
type Server struct {
	srv *http.Server
}

// New builds a health server bound to the given port.
func New(port int) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(liveBody))
	})

	return &Server{
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Handler exposes the liveness mux, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Start begins serving in the background. Listener failures are logged,
// never fatal: the bot keeps polling even if the port is taken.
func (s *Server) Start() {
	logger.Info(context.Background(), "health", "health.listen",
		slog.String("listen", s.srv.Addr),
	)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(context.Background(), "health", "health.listen",
				slog.String("listen", s.srv.Addr),
				slog.String("err", err.Error()),
			)
		}
	}()
}

// Shutdown stops the listener gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("health shutdown: %w", err)
	}
	return nil
}
