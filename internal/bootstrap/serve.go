package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/r2c-platform/admin-backend/internal/logger"
)

// Serve runs srv until ctx is cancelled or the listener fails, then shuts the
// server down within shutdownTimeout. A listener failure is returned so the
// caller can still release stores and flush tracing before exiting.
func Serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, log *logger.Logger) error {
	serveErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	var failure error
	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case failure = <-serveErr:
		log.Error("server failed", "error", failure)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "error", err)
	}
	return failure
}
