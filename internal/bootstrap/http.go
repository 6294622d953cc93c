package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/member-portal/config"
	httpx "github.com/example/member-portal/internal/http"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) (*http.Server, error) {
	if cfg == nil || cfg.Config == nil {
		return nil, fmt.Errorf("http server config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router, err := httpx.NewRouter(httpx.RouterServices{
		Auth:             cfg.Services.Auth,
		Users:            cfg.Services.Users,
		Chat:             cfg.Services.Chat,
		Rules:            cfg.Services.Rules,
		CookieDomain:     cfg.Config.HTTP.CookieDomain,
		CSRFExemptPaths:  cfg.Config.Security.CSRFExemptPaths,
		RememberMeWindow: cfg.Config.Security.RememberMeWindow,
		Logger:           logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build router: %w", err)
	}

	// Order: Recover -> Logging -> Router
	handler := httpx.Logging(logger)(router)
	handler = httpx.Recover(logger)(handler)

	return startServer(logger, handler, cfg.Config.HTTP.Addr), nil
}

func startServer(logger *slog.Logger, handler http.Handler, addr string) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
		}
	}()

	return server
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	if server == nil {
		return nil
	}

	if logger != nil {
		logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if logger != nil {
		logger.Info("HTTP server stopped")
	}

	return nil
}
