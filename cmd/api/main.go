package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/staff-directory/internal/api/http"
	"github.com/spec-kit/staff-directory/internal/api/http/handlers"
	"github.com/spec-kit/staff-directory/internal/config"
	"github.com/spec-kit/staff-directory/internal/observability"
	"github.com/spec-kit/staff-directory/internal/persistence"
	"github.com/spec-kit/staff-directory/internal/repository"
	"github.com/spec-kit/staff-directory/internal/service"
	"github.com/spec-kit/staff-directory/internal/session"
	"github.com/spec-kit/staff-directory/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

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

	source, err := repository.NewRosterSource(cfg.Roster, pg.PoolHandle())
	if err != nil {
		logger.Fatal("invalid roster source", zap.Error(err))
	}
	rosters := worker.NewRosterRefresher(source, logger, cfg.Roster.RefreshInterval())
	rosters.Load(ctx)
	refresherDone := rosters.Start(ctx)

	var redis *persistence.Redis
	var store session.Store
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		redis = persistence.NewRedis(ctx, cfg.Redis, logger)
		defer redis.Close()
		store = session.NewRedisStore(redis.Client, cfg.Redis.KeyPrefix, cfg.Session.TTL())
	default:
		store = session.NewMemoryStore(cfg.Session.MaxEntries, cfg.Session.TTL())
	}

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics()
	}

	directoryService := service.NewDirectoryService(rosters, store, logger, metrics,
		service.WithSearchDebounce(cfg.Directory.SearchDebounce()))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, rosters),
		Directory: handlers.NewDirectoryHandler(directoryService, handlers.DirectoryOptions{
			PageTitle:  cfg.Directory.PageTitle,
			CookieName: cfg.Session.CookieName,
			SessionTTL: cfg.Session.TTL(),
		}),
		Widgets:     handlers.NewWidgetsHandler(),
		Metrics:     metrics,
		MetricsPath: cfg.Metrics.Path,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	<-refresherDone
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
