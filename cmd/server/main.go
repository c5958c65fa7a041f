package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"volunteer-backend/internal/auth"
	"volunteer-backend/internal/config"
	"volunteer-backend/internal/engine"
	"volunteer-backend/internal/metadata"
	"volunteer-backend/internal/metrics"
	"volunteer-backend/internal/store"
)

func main() {
	ctx := context.Background()

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Printf("Config loaded (port: %d, db driver: %s)", cfg.Server.Port, cfg.Database.Driver)

	// 2. Connect to database
	db, err := store.New(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connected")

	// 3. Load the entity catalog
	reg := metadata.NewRegistry()
	if err := reg.Load(metadata.DefaultCatalog()); err != nil {
		log.Fatalf("Failed to load entity catalog: %v", err)
	}

	// 4. Bootstrap tables and seed data
	if err := db.Bootstrap(ctx, reg.AllEntities()); err != nil {
		log.Fatalf("Failed to bootstrap tables: %v", err)
	}
	log.Println("Tables ready")

	// 5. Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: engine.ErrorHandler,
	})
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency} ${locals:requestid}\n",
	}))

	// 6. Metrics
	if cfg.Metrics.Enabled {
		m := metrics.New()
		app.Use(m.Middleware())
		app.Get("/metrics", metrics.Handler())
	}

	// 7. Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// 8. Auth routes
	authenticator := auth.NewStoreAuthenticator(db, auth.NewComparer(cfg.Auth.PasswordScheme))
	authHandler := auth.NewHandler(authenticator, cfg.JWTSecret)
	authHandler.RegisterRoutes(app.Group("/api"))

	// 9. Entity routes
	engineHandler := engine.NewHandler(db, reg)
	credsHandler := engine.NewCredentialHandler(db)
	engine.RegisterRoutes(app, engineHandler, credsHandler)

	// 10. Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Starting server on %s", addr)
	log.Fatal(app.Listen(addr))
}
