package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/storescouthq/storescout-backend/api/routes"
	"github.com/storescouthq/storescout-backend/internal/auth"
	"github.com/storescouthq/storescout-backend/internal/hearts"
	"github.com/storescouthq/storescout-backend/internal/photos"
	"github.com/storescouthq/storescout-backend/internal/rankings"
	"github.com/storescouthq/storescout-backend/internal/reviews"
	"github.com/storescouthq/storescout-backend/internal/stores"
	"github.com/storescouthq/storescout-backend/internal/users"
	"github.com/storescouthq/storescout-backend/pkg/auth/session"
	"github.com/storescouthq/storescout-backend/pkg/config"
	"github.com/storescouthq/storescout-backend/pkg/db"
	"github.com/storescouthq/storescout-backend/pkg/logger"
	"github.com/storescouthq/storescout-backend/pkg/metrics"
	"github.com/storescouthq/storescout-backend/pkg/migrate"
	"github.com/storescouthq/storescout-backend/pkg/redis"
	"github.com/storescouthq/storescout-backend/pkg/storage/local"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	requireResource(context.Background(), logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	requireResource(context.Background(), logg, "database", err)
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	err = migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient)
	requireResource(context.Background(), logg, "migrations", err)

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	requireResource(context.Background(), logg, "redis", err)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	requireResource(context.Background(), logg, "session manager", err)

	uploadStore, err := local.New(context.Background(), cfg.Uploads, logg)
	requireResource(context.Background(), logg, "upload store", err)

	conn := dbClient.DB()
	usersRepo := users.NewRepository(conn)
	storesRepo := stores.NewRepository(conn)
	reviewsRepo := reviews.NewRepository(conn)
	heartsRepo := hearts.NewRepository(conn)
	rankingsRepo := rankings.NewRepository(conn)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	requireResource(context.Background(), logg, "auth service", err)

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		UserRepo:       usersRepo,
		PasswordConfig: cfg.Password,
	})
	requireResource(context.Background(), logg, "register service", err)

	passwordResetService, err := auth.NewPasswordResetService(auth.PasswordResetServiceParams{
		UserRepo:       usersRepo,
		PasswordConfig: cfg.Password,
	})
	requireResource(context.Background(), logg, "password reset service", err)

	usersService, err := users.NewService(usersRepo)
	requireResource(context.Background(), logg, "users service", err)

	storesService, err := stores.NewService(stores.ServiceParams{
		Repo: storesRepo,
		Tx:   dbClient,
	})
	requireResource(context.Background(), logg, "stores service", err)

	reviewsService, err := reviews.NewService(reviews.ServiceParams{
		Repo:      reviewsRepo,
		StoreRepo: storesRepo,
	})
	requireResource(context.Background(), logg, "reviews service", err)

	heartsService, err := hearts.NewService(hearts.ServiceParams{
		Repo:      heartsRepo,
		StoreRepo: storesRepo,
	})
	requireResource(context.Background(), logg, "hearts service", err)

	rankingsService, err := rankings.NewService(rankingsRepo)
	requireResource(context.Background(), logg, "rankings service", err)

	photosService, err := photos.NewService(uploadStore, cfg.Uploads)
	requireResource(context.Background(), logg, "photos service", err)

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	handler := routes.NewRouter(routes.Deps{
		Config:               cfg,
		Logger:               logg,
		DBPinger:             dbClient,
		RedisClient:          redisClient,
		SessionManager:       sessionManager,
		HTTPMetrics:          httpMetrics,
		Registry:             registry,
		AuthService:          authService,
		RegisterService:      registerService,
		PasswordResetService: passwordResetService,
		UsersService:         usersService,
		StoresService:        storesService,
		ReviewsService:       reviewsService,
		HeartsService:        heartsService,
		RankingsService:      rankingsService,
		PhotosService:        photosService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
