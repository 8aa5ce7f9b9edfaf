package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"leantime-mcp/internal/config"
	"leantime-mcp/internal/handler"
	"leantime-mcp/internal/mcpserver"
	"leantime-mcp/internal/middleware"
	"leantime-mcp/internal/tools"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (REST tool endpoints and MCP at /mcp)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().String("host", "", "Listen host (overrides MCP_HOST)")
	cmd.Flags().IntP("port", "p", 0, "Listen port (overrides MCP_PORT)")

	return cmd
}

func runServe(cmd *cobra.Command, opts Options) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, opts, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer a.close()

	// Flags are only registered on the serve subcommand
	if cmd.Flags().Changed("host") {
		a.cfg.Host, _ = cmd.Flags().GetString("host")
	}
	if cmd.Flags().Changed("port") {
		a.cfg.Port, _ = cmd.Flags().GetInt("port")
	}

	server := &http.Server{
		Addr:        a.cfg.Addr(),
		Handler:     NewHTTPHandler(a.cfg, a.dispatcher, opts.Version, a.logger),
		ReadTimeout: 15 * time.Second,
		// Disabled to allow long-lived MCP streams
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	a.logger.Info("server starting",
		"addr", server.Addr,
		"api_prefix", a.cfg.APIPrefix,
		"tools", len(a.dispatcher.Registry().Names()),
		"batch_concurrency", a.cfg.BatchConcurrency,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return exitError(exitFailure, "server failed: %v", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return exitError(exitFailure, "shutdown failed: %v", err)
	}
	return nil
}

// NewHTTPHandler builds the full HTTP surface: tool routes and the MCP endpoint
// at the root and again under cfg.APIPrefix, wrapped in the middleware chain.
func NewHTTPHandler(cfg *config.Config, dispatcher *tools.Dispatcher, version string, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	toolHandler := handler.NewToolHandler(dispatcher, logger)
	mcpHandler := mcpserver.HTTPHandler(mcpserver.New(dispatcher, version, logger))

	toolHandler.Register(mux, "")
	mux.Handle("/mcp", mcpHandler)
	if cfg.APIPrefix != "" {
		toolHandler.Register(mux, cfg.APIPrefix)
		mux.Handle(cfg.APIPrefix+"/mcp", mcpHandler)
	}

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → RequestID → RequestLogger → Recovery → Routes
	h := handler.Fallback(mux)
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestLogger(logger)(h)
	h = middleware.RequestID(h)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader, "Mcp-Session-Id", "Mcp-Protocol-Version", "Last-Event-ID"},
		ExposedHeaders:   []string{middleware.RequestIDHeader, "Mcp-Session-Id"},
		AllowCredentials: true,
	})
	return corsHandler.Handler(h)
}
