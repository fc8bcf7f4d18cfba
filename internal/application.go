package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/playgrid/gridline-backend/internal/config"
	"github.com/playgrid/gridline-backend/internal/lobby"
	"github.com/playgrid/gridline-backend/pkg/handlers"
	"github.com/playgrid/gridline-backend/transport/websocket"
)

const shutdownTimeout = 5 * time.Second

// RunApp - runs the application: one HTTP server carrying the static client,
// the websocket upgrade endpoint and a liveness probe.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	registry := lobby.NewRegistry(logger)
	wsServer := websocket.New(logger, registry)

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(conf.StaticDir)))
	mux.Handle("/ws", wsServer.Handler())
	mux.HandleFunc("/ping", handlers.PingHandler)

	srv := &http.Server{
		Addr:              ":" + conf.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}

		return nil
	}
}
