package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"pipeline_backend/internal/events"
	apphttp "pipeline_backend/internal/http"
	"pipeline_backend/internal/http/router"
	"pipeline_backend/internal/integrations"
	"pipeline_backend/internal/mirror"
	"pipeline_backend/internal/notification"
	"pipeline_backend/internal/pipeline"
	"pipeline_backend/internal/pipeline/board"
	"pipeline_backend/internal/pipeline/detail"
	"pipeline_backend/internal/pipeline/domain"
	"pipeline_backend/internal/pipeline/engine"
	"pipeline_backend/platform/config"
	"pipeline_backend/platform/logger"
	"pipeline_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Stage funnel: a YAML file can replace the built-in default.
	registry := domain.DefaultStageRegistry()
	if path := cfg.GetStagesFile(); path != "" {
		registry, err = domain.LoadStageRegistry(path)
		if err != nil {
			log.Error("failed to load stages file", "path", path, "error", err)
			panic("failed to load stages file: " + err.Error())
		}
		log.Info("stage funnel loaded from file", "path", path, "stages", len(registry.List()))
	}

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	users := engine.DemoUsers()
	coordinator := engine.NewCoordinator(registry, users, eventBus, log, cfg.GetDefaultActor())

	// Integration availability, cached in Redis when configured
	var redisClient *redis.Client
	if cfg.GetRedisURL() != "" {
		opt, err := redis.ParseURL(cfg.GetRedisURL())
		if err != nil {
			log.Error("invalid redis url", "error", err)
			panic("invalid redis url: " + err.Error())
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
	}

	var checker integrations.Checker = integrations.NewProbeChecker(cfg, log)
	if redisClient != nil {
		checker = integrations.NewCachedChecker(checker, redisClient, cfg.GetIntegrationCacheTTL(), log)
	}

	var emailSender integrations.EmailSender
	if cfg.IsEmailIntegrationEnabled() {
		emailSender = integrations.NewSMTPSender(cfg)
		log.Info("smtp email sender initialized", "host", cfg.GetSMTPHost())
	}

	boardSvc := board.New(coordinator)
	detailSvc := detail.New(coordinator, checker, emailSender, cfg.GetDefaultRegion(), log)

	// Shared validator instance for dependency injection
	val := validator.New()

	pipelineModule := pipeline.NewModule(pipeline.ModuleDeps{
		Coordinator: coordinator,
		Board:       boardSvc,
		Detail:      detailSvc,
		Validator:   val,
	})

	notificationModule := notification.NewModule(log)
	notificationModule.RegisterHandlers(eventBus)
	defer notificationModule.SSE().Close()

	// Async Postgres mirror, enabled only when Redis and the database
	// are both configured.
	if cfg.IsMirrorEnabled() {
		mirrorClient, err := mirror.NewClient(cfg)
		if err != nil {
			log.Error("failed to initialize mirror client", "error", err)
			panic("failed to initialize mirror client: " + err.Error())
		}
		defer mirrorClient.Close()

		recorder := mirror.NewRecorder(mirrorClient, coordinator, log)
		recorder.RegisterHandlers(eventBus)
		recorder.SyncProfiles(ctx, users)
		log.Info("mirror recorder initialized", "queue", cfg.GetMirrorQueueName())
	} else {
		log.Warn("mirror disabled; REDIS_URL or DATABASE_URL not configured")
	}

	if cfg.GetSeedDemoData() {
		if err := engine.SeedDemoData(ctx, coordinator); err != nil {
			log.Warn("demo data seeding failed", "error", err)
		} else {
			log.Info("demo data seeded")
		}
	}

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			pipelineModule,
			notificationModule,
		},
	}

	ginEngine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- ginEngine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}
