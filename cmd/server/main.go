package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"doordeck/internal/config"
	"doordeck/internal/logging"
)

func main() {
	cfg, err := config.LoadConfig(os.Getenv("DOORDECK_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log, false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		logger.Fatal("Failed to listen", zap.String("addr", cfg.Addr()), zap.Error(err))
	}

	if err := run(ctx, cfg, logger, ln); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// run serves the preview until ctx is cancelled, then shuts down gracefully
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, ln net.Listener) error {
	handler, err := SetupServer(ctx, cfg, logger)
	if err != nil {
		ln.Close()
		return err
	}

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting preview server", zap.String("addr", ln.Addr().String()))
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("Server gracefully stopped")
	return nil
}
