// @title           Scoring System API
// @version         1.0
// @description     Credential and deterministic score service.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/yol1/scoring-system/internal/api"
	"github.com/yol1/scoring-system/internal/core/ports"
	"github.com/yol1/scoring-system/internal/core/service"
	"github.com/yol1/scoring-system/internal/infrastructure/config"
	mongostore "github.com/yol1/scoring-system/internal/infrastructure/db/mongo"
	rediscache "github.com/yol1/scoring-system/internal/infrastructure/db/redis"
	"github.com/yol1/scoring-system/internal/infrastructure/db/sqlstore"
	"github.com/yol1/scoring-system/internal/infrastructure/http/handlers"
	"github.com/yol1/scoring-system/internal/pkg/token"
	"github.com/yol1/scoring-system/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "scoring-system: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Configuration
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	// 2. Logger
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "scoring-system",
	})

	// 3. Credential store
	store, err := openStore(ctx, cfg, logger.Component("store"))
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("store close failed")
		}
	}()
	log.Info().Str("driver", cfg.Store.Driver).Msg("credential store connected")

	checks := map[string]handlers.Checker{"store": store.Ping}

	// 4. Optional score cache
	var cache ports.ScoreCache
	if cfg.Redis.Enabled {
		rdb, err := rediscache.Connect(ctx, rediscache.Config{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			OpTimeout: cfg.Redis.OpTimeout,
			PoolSize:  cfg.Redis.PoolSize,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()

		cache = rediscache.NewScoreCache(rdb, cfg.Redis.ScoreTTL)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		log.Info().Str("addr", cfg.Redis.Addr).Msg("score cache enabled")
	}

	// 5. Services
	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(store.Users(), tokens, cfg.BcryptCost, logger.Component("auth"))
	scoreService := service.NewScoreService(store.Scores(), cache, logger.Component("score"))

	// 6. Router & HTTP server
	router := api.NewRouter(api.Deps{
		AuthService:  authService,
		ScoreService: scoreService,
		Tokens:       tokens,
		Logger:       logger.Component("http"),
		SeedEnabled:  cfg.SeedEnabled,
		HealthChecks: checks,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()
	logUsage(log, cfg)

	// 7. Graceful shutdown
	select {
	case err := <-serveErr:
		return fmt.Errorf("listen on %s: %w", server.Addr, err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info().Msg("server stopped gracefully")
	return nil
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.CredentialStore, error) {
	if cfg.UsesMongo() {
		store, err := mongostore.Open(ctx, mongostore.Config{
			URI:                    cfg.Mongo.URI,
			Database:               cfg.Mongo.Database,
			ServerSelectionTimeout: cfg.Mongo.SelectTimeout,
			MaxPoolSize:            cfg.Mongo.MaxPoolSize,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	store, err := sqlstore.Open(ctx, sqlstore.Config{
		Driver: cfg.Store.Driver,
		DSN:    cfg.Store.DSN,
	}, log)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// logUsage prints example requests for a fresh local setup.
func logUsage(log zerolog.Logger, cfg *config.Config) {
	if !cfg.IsDevelopment() {
		return
	}
	base := "http://localhost:" + cfg.Port
	log.Info().
		Str("register_user", `curl -X POST -H "Content-Type: application/json" -d '{"externalId":"12345678-9","password":"password123","role":"user"}' `+base+"/api/register").
		Str("register_admin", `curl -X POST -H "Content-Type: application/json" -d '{"externalId":"98765432-1","password":"adminpass","role":"admin"}' `+base+"/api/register").
		Msg("example requests")
	if cfg.SeedEnabled {
		log.Info().
			Str("seed_score", `curl -X POST -H "Content-Type: application/json" -d '{"code":"ABC123","value":100}' `+base+"/api/scores_seed").
			Msg("seed endpoint enabled")
	}
}
