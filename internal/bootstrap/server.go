package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Domenick1991/flightsearch/api"
	"github.com/Domenick1991/flightsearch/config"
	"github.com/Domenick1991/flightsearch/internal/service/saved"
	"github.com/Domenick1991/flightsearch/internal/service/search"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// Run serves the HTTP API and blocks until ctx is canceled or the server fails.
func Run(ctx context.Context, cfg *config.Config, searchSvc search.SearchUseCase, savedSvc saved.SavedFlightUseCase, logger *slog.Logger) error {
	srv := newServer(cfg, searchSvc, savedSvc, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen http %s: %w", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newServer(cfg *config.Config, searchSvc search.SearchUseCase, savedSvc saved.SavedFlightUseCase, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(api.RouterConfig{
		Search:         searchSvc,
		Saved:          savedSvc,
		Logger:         logger,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		SwaggerDir:     cfg.HTTP.SwaggerDir,
	})

	return &http.Server{
		Addr:              cfg.HTTP.Address(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
