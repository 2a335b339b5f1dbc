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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"driveapi/docs"
	"driveapi/internal/config"
	"driveapi/internal/database"
	"driveapi/internal/database/migration"
	handlers "driveapi/internal/http/handler"
	"driveapi/internal/http/middleware"
	"driveapi/internal/otel"
	"driveapi/internal/repository/postgres"
	"driveapi/internal/service"
	"driveapi/internal/storage"
)

// @title Drive API
// @version 1.0
// @BasePath /
func main() {
	ctx := context.Background()
	loc := time.UTC

	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	// Tracing is a no-op unless OTEL_ENABLED is set
	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Initialize repositories
	fileRepo := postgres.NewFilePostgres(db)
	versionRepo := postgres.NewVersionPostgres(db)
	favoriteRepo := postgres.NewFavoritePostgres(db)
	shareRepo := postgres.NewSharePostgres(db)
	userRepo := postgres.NewUserPostgres(db)

	// Initialize services
	urlExpiry := time.Duration(cfg.FileURLExpirySec) * time.Second
	svcs := handlers.Services{
		Files:     service.NewFileService(objStore, fileRepo, versionRepo, urlExpiry),
		Listing:   service.NewListingService(fileRepo, favoriteRepo),
		Tree:      service.NewTreeService(fileRepo),
		Trash:     service.NewTrashService(objStore, fileRepo),
		Favorites: service.NewFavoriteService(fileRepo, favoriteRepo),
		Shares:    service.NewShareService(fileRepo, shareRepo, userRepo),
		Versions:  service.NewVersionService(fileRepo, versionRepo),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	promMW, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMW.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Register HTTP routes with injected services
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
