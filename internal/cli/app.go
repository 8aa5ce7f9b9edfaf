package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/joho/godotenv"

	"leantime-mcp/internal/config"
	"leantime-mcp/internal/leantime"
	"leantime-mcp/internal/telemetry"
	"leantime-mcp/internal/tools"
)

// Options configures the command tree.
type Options struct {
	// Version is reported by --version and announced to MCP clients.
	Version string
	// SessionOpener replaces the Leantime client. Used by tests.
	SessionOpener tools.SessionOpener
}

// app holds everything a command needs to run tools.
type app struct {
	cfg        *config.Config
	logger     *slog.Logger
	dispatcher *tools.Dispatcher
	closers    []func(context.Context) error
}

// newApp loads configuration from the environment (and .env) and wires the
// dispatcher. Logs go to logOut so commands can keep stdout for their results.
func newApp(ctx context.Context, opts Options, logOut io.Writer) (*app, error) {
	// Load .env file (silently ignore if it doesn't exist)
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, exitError(exitConfig, "invalid configuration: %v", err)
	}

	logger, closeLog, err := config.NewLogger(cfg, logOut)
	if err != nil {
		return nil, exitError(exitConfig, "setting up logging: %v", err)
	}
	slog.SetDefault(logger)

	a := &app{cfg: cfg, logger: logger}
	a.closers = append(a.closers, func(context.Context) error { return closeLog() })

	shutdownTracing, err := telemetry.Setup(ctx)
	if err != nil {
		a.close()
		return nil, exitError(exitConfig, "initializing tracing: %v", err)
	}
	a.closers = append(a.closers, shutdownTracing)

	observer, err := telemetry.NewGlobalToolObserver()
	if err != nil {
		a.close()
		return nil, exitError(exitConfig, "initializing tool observability: %v", err)
	}

	open := opts.SessionOpener
	if open == nil {
		client := leantime.NewClient(cfg.LeantimeURL, leantime.Credentials{
			APIKey:   cfg.LeantimeAPIKey,
			Username: cfg.LeantimeUsername,
			Password: cfg.LeantimePassword,
		}, leantime.WithTimeout(cfg.LeantimeTimeout))

		logger.Debug("leantime client configured",
			"base_url", client.BaseURL(),
			"auth_mode", client.AuthMode().String(),
		)
		open = func() (tools.Session, error) {
			session, err := client.Open()
			if err != nil {
				return nil, err
			}
			return session, nil
		}
	}

	a.dispatcher = tools.NewDispatcher(tools.DefaultRegistry(), open, logger,
		tools.WithObserver(observer),
		tools.WithBatchConcurrency(cfg.BatchConcurrency),
	)
	return a, nil
}

// close releases resources in reverse order of acquisition.
func (a *app) close() {
	ctx := context.Background()
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil && a.logger != nil {
			a.logger.Warn("shutdown step failed", "error", err)
		}
	}
}
