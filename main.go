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

	"github.com/redis/go-redis/v9"

	authService "labtrack/internal/application/auth"
	productService "labtrack/internal/application/product"
	"labtrack/internal/delivery/http/cookie"
	"labtrack/internal/delivery/http/handler"
	"labtrack/internal/delivery/http/router"
	domain "labtrack/internal/domain/auth"
	"labtrack/internal/infrastructure/config"
	"labtrack/internal/infrastructure/database"
	"labtrack/internal/infrastructure/repository"
	"labtrack/internal/logging"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "labtrack:", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg := config.Load()
	logger := logging.NewJSON(os.Stdout, !cfg.IsProduction())

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := database.New(ctx, database.Options{
		Driver:          cfg.DBDriver,
		DSN:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		ConnMaxIdleTime: cfg.DBConnIdleTime,
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo, closeSessions, err := newSessionRepository(ctx, cfg, db)
	if err != nil {
		return err
	}
	defer closeSessions()

	// Initialize services
	authSvc, err := authService.NewService(userRepo, sessionRepo,
		authService.NewBcryptHasher(cfg.BcryptCost), cfg.SessionTTL)
	if err != nil {
		return fmt.Errorf("init auth service: %w", err)
	}
	productSvc := productService.NewService(repository.NewProductRepository(db))

	cookies := cookie.NewCodec(cfg.SessionCookieName, []byte(cfg.SessionSecret), cfg.SessionCookieSecure)

	// Setup routes
	handlers := router.Handlers{
		Auth:    handler.NewAuthHandler(authSvc, cookies, logger),
		Product: handler.NewProductHandler(productSvc, logger),
		Test:    handler.NewTestHandler(repository.NewTestRepository(db), logger),
		Result:  handler.NewResultHandler(repository.NewResultRepository(db), logger),
		Report:  handler.NewReportHandler(repository.NewReportRepository(db), logger),
		Page:    handler.NewPageHandler(),
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.Setup(handlers, authSvc, cookies, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go authService.RunSessionSweeper(ctx, authSvc, cfg.SessionSweepInterval, logger)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info(ctx, "server starting",
			"addr", server.Addr,
			"env", cfg.Env,
			"db_driver", cfg.DBDriver,
			"session_store", cfg.SessionStore,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info(context.Background(), "server stopped")
	return nil
}

func newSessionRepository(ctx context.Context, cfg *config.Config, db *database.DB) (domain.SessionRepository, func(), error) {
	if cfg.SessionStore != config.SessionStoreRedis {
		return repository.NewSessionRepository(db), func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}
	return repository.NewRedisSessionRepository(rdb), func() { rdb.Close() }, nil
}
