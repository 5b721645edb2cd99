package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/album-editor/internal/config"
	"github.com/kozaktomas/album-editor/internal/database/mariadb"
	"github.com/kozaktomas/album-editor/internal/database/postgres"
	"github.com/kozaktomas/album-editor/internal/sessionstore"
	"github.com/kozaktomas/album-editor/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the Album Editor HTTP API.

Without further configuration projects live in memory only. Set
DATABASE_URL to save projects to PostgreSQL, REDIS_ADDR to keep open
projects in Redis across restarts, and PHOTOPRISM_DATABASE_URL to import
photos straight from a PhotoPrism library.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	serveCmd.Flags().String("host", "0.0.0.0", "Host to bind to")
}

// resolveServeHostPort resolves port and host from flags and environment variables.
func resolveServeHostPort(cmd *cobra.Command) (int, string) {
	port := mustGetInt(cmd, "port")
	host := mustGetString(cmd, "host")

	if envPort := os.Getenv("WEB_PORT"); envPort != "" {
		fmt.Sscanf(envPort, "%d", &port)
	}
	if envHost := os.Getenv("WEB_HOST"); envHost != "" {
		host = envHost
	}
	return port, host
}

// initBackends connects the optional project storage and photo library.
// The returned func closes whatever was opened.
func initBackends(ctx context.Context, cfg *config.Config) (func(), error) {
	var closers []func() error

	if cfg.Database.URL != "" {
		logger.Info("connecting to PostgreSQL")
		pool, err := postgres.Initialize(ctx, &cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
		}
		closers = append(closers, pool.Close)
		logger.Info("project storage enabled (PostgreSQL)")
	} else {
		logger.Warn("DATABASE_URL not set, projects cannot be saved")
	}

	if cfg.PhotoPrism.DatabaseURL != "" {
		pool, err := mariadb.Initialize(ctx, cfg.PhotoPrism.DatabaseURL)
		if err != nil {
			for _, c := range closers {
				c()
			}
			return nil, fmt.Errorf("failed to initialize PhotoPrism database: %w", err)
		}
		closers = append(closers, pool.Close)
		logger.Info("photo library enabled (PhotoPrism)")
	}

	return func() {
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Warn("closing backend", "error", err)
			}
		}
	}, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	closeBackends, err := initBackends(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBackends()

	store, err := sessionstore.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	if cfg.Redis.Addr != "" {
		logger.Info("live sessions kept in Redis", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.SessionTTL)
	}

	port, host := resolveServeHostPort(cmd)
	server := web.NewServer(cfg, port, host, store, logger)
	go server.RunMaintenance(ctx, cfg.Web.CleanupInterval)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("error during shutdown", "error", err)
		}
	}()

	logger.Infof("Album Editor API on http://%s:%d/api/v1", host, port)
	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
