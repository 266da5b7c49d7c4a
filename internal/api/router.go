package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewApp собирает Fiber-приложение со всеми маршрутами
func NewApp(h *Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler,
	})

	app.Use(Tracing())
	app.Use(RouteLogger())
	app.Use(Metrics())

	app.Get("/health", h.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/api/v1")

	v1.Get("/lots", h.ListLots)
	v1.Get("/lots/stats", h.LotStats)
	v1.Get("/lots/:code", h.GetLot)
	v1.Get("/lots/:code/investment", h.LotInvestment)
	v1.Get("/lots/:code/investment.xlsx", h.LotWorkbook)
	v1.Get("/lots/:code/installments", h.LotInstallments)
	v1.Get("/lots/:code/proposal", h.LotProposal)
	v1.Get("/areas/:area/investment", h.AreaInvestment)

	v1.Get("/tools", h.ListTools)
	v1.Post("/tools/:name", h.CallTool)

	v1.Delete("/sessions/:id/cache", h.ForgetSession)

	return app
}
