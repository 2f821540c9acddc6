// @title avacc API
// @version 1.0
// @description Seguimiento de vacunación de mascotas: historial, agenda por sede, inventario y alertas de reposición.
// @BasePath /
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ccis-arch/avacc/internal/adapters/auth/jwtauth"
	"github.com/ccis-arch/avacc/internal/adapters/auth/remote"
	"github.com/ccis-arch/avacc/internal/adapters/cache/rediscache"
	"github.com/ccis-arch/avacc/internal/adapters/notify/amqpnotify"
	"github.com/ccis-arch/avacc/internal/adapters/notify/lognotify"
	pg "github.com/ccis-arch/avacc/internal/adapters/storage/postgres"
	"github.com/ccis-arch/avacc/internal/platform/config"
	"github.com/ccis-arch/avacc/internal/platform/logger"
	"github.com/ccis-arch/avacc/internal/platform/metrics"
	"github.com/ccis-arch/avacc/internal/ports/auth"
	"github.com/ccis-arch/avacc/internal/ports/cache"
	"github.com/ccis-arch/avacc/internal/ports/notify"
	"github.com/ccis-arch/avacc/internal/router"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path al config YAML (opcional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	if zl, ok := log.(*logger.ZapLogger); ok {
		defer func() { _ = zl.Sync() }()
	}

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", map[string]any{"error": err})
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	verifier, err := newVerifier(cfg.Auth)
	if err != nil {
		return fmt.Errorf("auth verifier: %w", err)
	}

	var db *sql.DB
	if strings.TrimSpace(cfg.Database.DSN) != "" {
		db, err = pg.Open(cfg.Database, log)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		if cfg.Database.AutoMigrate {
			if err := pg.ApplySchema(ctx, db); err != nil {
				return fmt.Errorf("apply schema: %w", err)
			}
			log.Info("schema applied", nil)
		}
	} else {
		log.Warn("no database dsn: using in-memory store", nil)
	}

	var catalogCache cache.Cache
	if strings.TrimSpace(cfg.Redis.Addr) != "" {
		rc := rediscache.New(cfg.Redis)
		defer rc.Close()
		if err := rc.Ping(ctx); err != nil {
			log.Warn("redis not reachable, catalog cache will fall back to the store", map[string]any{"error": err})
		}
		catalogCache = rc
	}

	var publisher notify.Publisher = lognotify.New(log.With(map[string]any{"component": "events"}))
	if strings.TrimSpace(cfg.AMQP.URL) != "" {
		ap, err := amqpnotify.Dial(cfg.AMQP)
		if err != nil {
			log.Warn("amqp not reachable, events go to the log", map[string]any{"error": err})
		} else {
			defer ap.Close()
			publisher = ap
		}
	}

	handler := router.NewRouter(router.Options{
		AuthVerifier:       verifier,
		DB:                 db,
		Cache:              catalogCache,
		CacheTTL:           cfg.Redis.CatalogTTL,
		Publisher:          publisher,
		Logger:             log,
		Metrics:            metrics.New(),
		OwnerIdentity:      cfg.Auth.OwnerIdentity,
		EnforceTransitions: cfg.Lifecycle.Enforce(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "auth_mode": cfg.Auth.Mode})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newVerifier: nil en modo dev (headers X-Debug-User-*).
func newVerifier(cfg config.AuthConfig) (auth.AuthVerifier, error) {
	switch cfg.Mode {
	case config.AuthModeJWT:
		return jwtauth.NewVerifier(jwtauth.Config{
			Secret:   cfg.JWTSecret,
			Issuer:   cfg.JWTIssuer,
			Audience: cfg.JWTAudience,
			Leeway:   cfg.JWTLeeway,
		})
	case config.AuthModeRemote:
		client, err := remote.NewClient(remote.Config{
			BaseURL: cfg.RemoteBaseURL,
			APIKey:  cfg.RemoteAPIKey,
			Timeout: cfg.RemoteTimeout,
			Retries: 1,
		})
		if err != nil {
			return nil, err
		}
		return remote.NewVerifier(client), nil
	default:
		return nil, nil
	}
}
