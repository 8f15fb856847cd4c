package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	httptransport "github.com/manyinyire/Outleads-sub001/internal/api/http"
	"github.com/manyinyire/Outleads-sub001/internal/api/http/handlers"
	"github.com/manyinyire/Outleads-sub001/internal/auth"
	"github.com/manyinyire/Outleads-sub001/internal/config"
	"github.com/manyinyire/Outleads-sub001/internal/events"
	"github.com/manyinyire/Outleads-sub001/internal/observability"
	"github.com/manyinyire/Outleads-sub001/internal/persistence"
	"github.com/manyinyire/Outleads-sub001/internal/repository"
	"github.com/manyinyire/Outleads-sub001/internal/service"
	"github.com/manyinyire/Outleads-sub001/internal/worker"
)

func main() {
	cfg, warnings, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	for _, warning := range warnings {
		logger.Warn("configuration default applied", zap.String("detail", warning))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	campaignRepo := repository.NewCampaignRepository(pool)
	leadRepo := repository.NewLeadRepository(pool)
	poolRepo := repository.NewLeadPoolRepository(pool)
	firstDispoRepo := repository.NewFirstDispositionRepository(pool)
	secondDispoRepo := repository.NewSecondDispositionRepository(pool)
	thirdDispoRepo := repository.NewThirdDispositionRepository(pool)
	historyRepo := repository.NewDispositionHistoryRepository(pool)
	permissionRepo := repository.NewRolePermissionRepository(pool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, userRepo, dispatcher)
	userService := service.NewUserService(*cfg, userRepo, dispatcher)
	campaignService := service.NewCampaignService(campaignRepo, redis, dispatcher, metrics, logger, cfg.App.PublicBaseURL)
	leadService := service.NewLeadService(service.LeadDependencies{
		LeadRepo:        leadRepo,
		PoolRepo:        poolRepo,
		UserRepo:        userRepo,
		CampaignRepo:    campaignRepo,
		SecondDispoRepo: secondDispoRepo,
		ThirdDispoRepo:  thirdDispoRepo,
		HistoryRepo:     historyRepo,
	}, dispatcher, metrics)
	permissionService := service.NewPermissionService(permissionRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notify, cfg.SMTP)

	worker.StartNotificationWorker(notificationService)

	gate := auth.NewMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.IsProduction(),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:       handlers.NewHealthHandler(pg, redis),
		Auth:         handlers.NewAuthHandler(authService, cfg.IsProduction()),
		Campaigns:    handlers.NewCampaignHandler(campaignRepo, campaignService),
		Leads:        handlers.NewLeadHandler(leadRepo, leadService),
		Pools:        handlers.NewLeadPoolHandler(poolRepo, leadRepo),
		Dispositions: handlers.NewDispositionHandler(firstDispoRepo, secondDispoRepo, thirdDispoRepo),
		Users:        handlers.NewUserHandler(userRepo, userService),
		Permissions:  handlers.NewPermissionHandler(permissionService),
		Redirect:     handlers.NewRedirectHandler(campaignService, logger),
		Gate:         gate,
	})

	metricsServer := &http.Server{
		Addr:    cfg.Metrics.Addr,
		Handler: metrics.Handler(),
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		return app.Listen(cfg.App.Addr())
	})
	group.Go(func() error {
		logger.Info("metrics listening", zap.String("addr", cfg.Metrics.Addr))
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		waitForShutdown(groupCtx, logger)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = metricsServer.Shutdown(shutdownCtx)
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
	logger.Info("shutdown complete")
}

func waitForShutdown(ctx context.Context, logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case <-ctx.Done():
	}
}
