package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/clinic-portal/internal/api/http"
	"github.com/spec-kit/clinic-portal/internal/api/http/handlers"
	"github.com/spec-kit/clinic-portal/internal/audit"
	"github.com/spec-kit/clinic-portal/internal/auth"
	"github.com/spec-kit/clinic-portal/internal/backend"
	"github.com/spec-kit/clinic-portal/internal/config"
	"github.com/spec-kit/clinic-portal/internal/events"
	"github.com/spec-kit/clinic-portal/internal/observability"
	"github.com/spec-kit/clinic-portal/internal/persistence"
	"github.com/spec-kit/clinic-portal/internal/repository"
	"github.com/spec-kit/clinic-portal/internal/service"
	"github.com/spec-kit/clinic-portal/internal/session"
	"github.com/spec-kit/clinic-portal/internal/worker"
)

const viewCacheTTL = 5 * time.Minute

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

	if pg.PoolHandle() != nil && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)

	var auditRepo repository.AuditRepository
	if pool := pg.PoolHandle(); pool != nil {
		auditRepo = repository.NewAuditRepository(pool)
	}
	auditService := audit.NewService(dispatcher, auditRepo, logger)
	worker.StartAuditWorker(auditService)

	sessionTTL := cfg.Session.TTL()
	var sessionStore session.Store
	var viewCache service.ViewCache
	if redis.Ping(ctx) == nil {
		sessionStore = session.NewRedisStore(redis.Client, sessionTTL)
		viewCache = service.NewRedisViewCache(redis.Client, viewCacheTTL)
	} else {
		logger.Warn("redis unreachable; using in-process session store and view cache")
		sessionStore = session.NewMemoryStore(sessionTTL)
		viewCache = service.NewMemoryViewCache(viewCacheTTL)
	}
	sessions := session.NewManager(sessionStore, dispatcher)

	backendClient := backend.NewClient(cfg.Backend, logger, metrics)

	sessionService := service.NewSessionService(backendClient, sessions, dispatcher, logger)
	turnoService := service.NewTurnoService(backendClient, viewCache, dispatcher, logger)
	horarioService := service.NewHorarioService(backendClient, dispatcher, logger)
	pacienteService := service.NewPacienteService(backendClient, logger)
	reporteService := service.NewReporteService(backendClient, logger)

	authMiddleware := auth.NewMiddleware(sessions, cfg.Session, logger)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(sessionService, authMiddleware),
		Turnos:         handlers.NewTurnosHandler(turnoService, authMiddleware),
		Medico:         handlers.NewMedicoHandler(turnoService, horarioService, pacienteService, authMiddleware),
		Dashboard:      handlers.NewDashboardHandler(reporteService, authMiddleware),
		Documents:      handlers.NewDocumentsHandler(turnoService, pacienteService, authMiddleware),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
