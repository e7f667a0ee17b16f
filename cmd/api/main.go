package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"inventory-tracker/internal/cache"
	"inventory-tracker/internal/config"
	"inventory-tracker/internal/events"
	"inventory-tracker/internal/handler"
	"inventory-tracker/internal/kafka"
	applog "inventory-tracker/internal/log"
	"inventory-tracker/internal/metrics"
	"inventory-tracker/internal/middleware"
	"inventory-tracker/internal/repository"
	"inventory-tracker/internal/seed"
	"inventory-tracker/internal/service"
	"inventory-tracker/internal/ws"
	"inventory-tracker/pkg/database"
	"inventory-tracker/pkg/jwt"
)

type Config struct {
	HTTP     config.HTTP
	Postgres config.Postgres
	JWT      config.JWT
	Log      config.Log
	Redis    config.Redis
	Kafka    config.Kafka
	Seed     config.Seed
}

func main() {
	// .env is optional; real deployments set the environment directly.
	envErr := godotenv.Load()

	cfg, err := config.New[Config]()
	if err != nil {
		slog.Error("Failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	log := applog.NewSlogLogger(cfg.Log)
	if envErr != nil {
		log.Debug(".env file not found, using process environment")
	}

	if err := run(cfg, log); err != nil {
		log.Error("Server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("Server exited")
}

func run(cfg Config, log *slog.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// 1. Database
	db, err := database.Connect(cfg.Postgres, log)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}
	if err := seed.New(db, log).Run(ctx, cfg.Seed); err != nil {
		return err
	}

	// 2. Event fan-out: websocket, metrics, optional kafka and stats cache
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	hub := ws.NewHub(log)
	go hub.Run(ctx)

	fanout := events.NewFanout(log, hub, m)

	var producer *kafka.Producer
	if cfg.Kafka.Enabled() {
		producer = kafka.NewProducer(cfg.Kafka, log)
		producer.Start(ctx)
		fanout.Subscribe(producer)
		log.Info("Streaming stock events to Kafka", slog.String("topic", cfg.Kafka.Topic))
	}

	noopCache := cache.Noop[service.DashboardStats]{}
	var (
		statsCache       service.StatsCache       = noopCache
		statsInvalidator service.StatsInvalidator = noopCache
	)
	if cfg.Redis.Enabled() {
		rdb := cache.NewRedisClient(cfg.Redis)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("Redis unreachable, dashboard stats will be recomputed", slog.Any("error", err))
		}
		c := cache.NewJSONCache[service.DashboardStats](rdb, cache.KeyDashboardStats, cfg.Redis.StatsTTL)
		fanout.Subscribe(c)
		statsCache = c
		statsInvalidator = c
	}

	// 3. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	issuanceRepo := repository.NewIssuanceRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)

	ledger := service.NewStockLedger(productRepo)
	tokens := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TTL, cfg.JWT.Issuer)

	authService := service.NewAuthService(userRepo, tokens, cfg.JWT.TTL)
	issuanceService := service.NewIssuanceService(db, ledger, productRepo, userRepo, issuanceRepo, fanout)
	productService := service.NewProductService(db, productRepo, categoryRepo, supplierRepo, issuanceRepo, fanout)
	stockService := service.NewStockService(db, ledger, fanout)
	catalogService := service.NewCatalogService(categoryRepo, supplierRepo, productRepo, statsInvalidator)
	userService := service.NewUserService(userRepo, roleRepo)
	dashService := service.NewDashboardService(productRepo, categoryRepo, supplierRepo, issuanceRepo, statsCache, log)

	// 4. Fiber
	app := fiber.New(fiber.Config{
		AppName:      cfg.HTTP.AppName,
		ErrorHandler: handler.ErrorHandler(log),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(log))
	app.Use(cors.New())
	app.Use(m.Middleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "ws_clients": hub.ClientCount()})
	})
	app.Get(metrics.Path, m.Handler())
	app.Use("/ws", ws.Upgrade)
	app.Get("/ws", hub.Handler())

	handler.RegisterRoutes(app, authService, handler.Handlers{
		Auth:      handler.NewAuthHandler(authService, userService),
		Dashboard: handler.NewDashboardHandler(dashService),
		Product:   handler.NewProductHandler(productService, stockService, issuanceService),
		Catalog:   handler.NewCatalogHandler(catalogService),
		Issuance:  handler.NewIssuanceHandler(issuanceService),
		User:      handler.NewUserHandler(userService),
		Role:      handler.NewRoleHandler(roleRepo, privilegeRepo),
	})

	// 5. Serve until a signal arrives
	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
		log.Info("HTTP server listening", slog.String("addr", addr))
		errCh <- app.Listen(addr)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			cancel()
			return fmt.Errorf("listen: %w", err)
		}
	}

	log.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("Server forced to shutdown", slog.Any("error", err))
	}
	cancel()
	if producer != nil {
		producer.WaitClosed()
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}
