package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type AppConfig struct {
	MaxBodySize int64
	// Gatherer backs /metrics; nil leaves the route out.
	Gatherer prometheus.Gatherer
}

// NewApp builds the fiber app with every route registered.
func NewApp(cfg AppConfig, h *Handler) *fiber.App {
	fcfg := fiber.Config{AppName: "cv-generator"}
	if cfg.MaxBodySize > 0 {
		fcfg.BodyLimit = int(cfg.MaxBodySize)
	}
	app := fiber.New(fcfg)
	app.Use(recover.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if cfg.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	app.Post("/cv", h.CreateCV)
	app.Get("/cv/:slug", h.GetCV)
	app.Get("/cv/:slug/html", h.GetCVHTML)
	app.Get("/cv/:slug/pdf", h.GetCVPDF)
	app.Post("/normalize", h.Normalize)

	app.Post("/drafts", h.CreateDraft)
	app.Get("/drafts/:id", h.GetDraft)
	app.Put("/drafts/:id", h.PutDraft)
	app.Delete("/drafts/:id", h.DeleteDraft)

	return app
}
