package main

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"glaneur/internal/config"
	"glaneur/internal/http/handlers"
	applog "glaneur/internal/log"
	"glaneur/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/healthz")
		},
	}))

	// ---------- Routes ----------
	deps := handlers.NewDeps(db, cfg)

	api := app.Group("/api")

	api.Get("/business", deps.BusinessHandler.Get)
	api.Patch("/business", deps.BusinessHandler.Patch)

	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/expiring", deps.ProductHandler.Expiring)
	api.Post("/products", deps.ProductHandler.Create)
	api.Patch("/products/:id", deps.ProductHandler.Patch)
	api.Delete("/products/:id", deps.ProductHandler.Delete)

	api.Get("/donations", deps.DonationHandler.List)
	api.Get("/donations/:id", deps.DonationHandler.Get)
	api.Post("/donations", deps.DonationHandler.Create)
	api.Patch("/donations/:id", deps.DonationHandler.Patch)
	api.Delete("/donations/:id", deps.DonationHandler.Delete)

	api.Get("/schedule", deps.ScheduleHandler.List)
	api.Post("/schedule", deps.ScheduleHandler.Upsert)
	api.Post("/schedule/bulk", deps.ScheduleHandler.Bulk)
	api.Get("/schedule/day/:dow", deps.ScheduleHandler.Day)
	api.Get("/schedule/date/:date", deps.ScheduleHandler.Date)

	api.Get("/closures", deps.ClosureHandler.List)
	api.Post("/closures", deps.ClosureHandler.Create)
	api.Delete("/closures/:id", deps.ClosureHandler.Delete)

	api.Get("/stats", deps.StatsHandler.Summary)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
