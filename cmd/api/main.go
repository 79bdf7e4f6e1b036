package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"studiosync/docs"
	"studiosync/internal/config"
	"studiosync/internal/credential"
	"studiosync/internal/database"
	"studiosync/internal/database/migration"
	handlers "studiosync/internal/http/handler"
	"studiosync/internal/http/middleware"
	"studiosync/internal/otel"
	"studiosync/internal/repository/postgres"
	"studiosync/internal/service"
	"studiosync/internal/storage"
)

// @title StudioSync API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("invalid APP_TIMEZONE %q, falling back to UTC", cfg.Timezone)
		loc = time.UTC
	}

	ctx := context.Background()

	// Tracing (no-op when OTEL_SDK_DISABLED=true)
	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	// PostgreSQL connection with pooling via database/sql
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	hasher := credential.NewHasher(cfg.Auth.BcryptCost)

	// Schema migration and admin bootstrap. The admin password is hashed
	// here so the plaintext never leaves this function.
	adminHash := ""
	if cfg.Auth.AdminPassword != "" {
		adminHash, err = hasher.Hash(cfg.Auth.AdminPassword)
		if err != nil {
			log.Fatalf("failed to hash admin password: %v", err)
		}
	}
	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host, cfg.Auth.AdminUsername, adminHash); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Blob storage backend: S3-compatible object storage or a local directory
	var objStore storage.Storage
	switch cfg.Storage.Backend {
	case "minio":
		objStore, err = storage.NewMinIO(cfg.Storage.MinIO)
	case "local":
		objStore, err = storage.NewLocal(cfg.Storage.LocalDir)
	default:
		log.Fatalf("unknown storage backend: %q", cfg.Storage.Backend)
	}
	if err != nil {
		log.Fatalf("failed to initialize storage backend: %v", err)
	}

	// Repositories and services
	clientRepo := postgres.NewClientPostgres(db)
	userRepo := postgres.NewUserPostgres(db)
	docRepo := postgres.NewDocumentPostgres(db)
	labelRepo := postgres.NewLabelPostgres(db)

	svcs := handlers.Services{
		Auth:      service.NewAuthService(userRepo, hasher),
		Clients:   service.NewClientService(clientRepo, userRepo, objStore, hasher),
		Documents: service.NewDocumentService(objStore, docRepo, clientRepo, userRepo),
		Labels:    service.NewLabelService(labelRepo),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Metrics registry with process/runtime collectors plus HTTP metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register HTTP metrics: %v", err)
	}

	// Global middleware. RequestID feeds both the JSON logger and error payloads.
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(loc))
	app.Use(otelfiber.Middleware())
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, db, svcs)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
