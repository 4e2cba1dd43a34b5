package main

import (
	"log"
	"strings"

	"github.com/Klue7/nova-erp-sub002/internal/admin"
	"github.com/Klue7/nova-erp-sub002/internal/auth"
	"github.com/Klue7/nova-erp-sub002/internal/config"
	"github.com/Klue7/nova-erp-sub002/internal/database"
	"github.com/Klue7/nova-erp-sub002/internal/events"
	"github.com/Klue7/nova-erp-sub002/internal/mining"
	"github.com/Klue7/nova-erp-sub002/internal/models"
	"github.com/Klue7/nova-erp-sub002/internal/production"
	"github.com/Klue7/nova-erp-sub002/internal/reports"
	"github.com/Klue7/nova-erp-sub002/internal/sales"
	"github.com/Klue7/nova-erp-sub002/internal/stockpile"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-super-admin", auth.RegisterSuperAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Super admin routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleSuperAdmin))

	// Tenant management
	adminRoutes.Post("/tenants", admin.CreateTenantHandler())
	adminRoutes.Get("/tenants", admin.ListTenantsHandler())
	adminRoutes.Get("/tenants/:id", admin.GetTenantHandler())
	adminRoutes.Put("/tenants/:id", admin.UpdateTenantHandler())
	adminRoutes.Post("/tenants/:id/users", admin.CreateTenantUserHandler())
	adminRoutes.Get("/tenants/:id/users", admin.ListTenantUsersHandler())

	// Stockpiles
	protected.Post("/stockpiles", stockpile.CreateHandler())
	protected.Get("/stockpiles", stockpile.ListHandler())
	protected.Get("/stockpiles/:id", stockpile.GetHandler())
	protected.Get("/stockpiles/:id/availability", stockpile.AvailabilityHandler())

	// Mining deliveries
	protected.Post("/mining/deliveries", mining.RecordDeliveryHandler())
	protected.Get("/mining/deliveries", mining.ListDeliveriesHandler())

	// Production batches (all stages share the lifecycle engine)
	protected.Post("/batches", production.CreateBatchHandler())
	protected.Get("/batches", production.ListBatchesHandler())
	protected.Get("/batches/:id", production.GetBatchHandler())
	protected.Post("/batches/:id/components", production.AddComponentHandler())
	protected.Post("/batches/:id/components/remove", production.RemoveComponentHandler())
	protected.Post("/batches/:id/start", production.StartBatchHandler())
	protected.Post("/batches/:id/complete", production.CompleteBatchHandler())
	protected.Post("/batches/:id/cancel", production.CancelBatchHandler())

	// Sales / dispatch
	protected.Post("/sales-orders", sales.CreateOrderHandler())
	protected.Get("/sales-orders", sales.ListOrdersHandler())
	protected.Post("/sales-orders/:id/dispatch", sales.DispatchOrderHandler())
	protected.Post("/sales-orders/:id/invoice", sales.InvoiceOrderHandler())
	protected.Post("/sales-orders/:id/cancel", sales.CancelOrderHandler())

	// Event log (read-only audit trail)
	protected.Get("/events", events.ListEventsHandler())

	// Reports
	protected.Get("/reports/production", reports.ProductionSummaryHandler())
	protected.Get("/reports/production.csv", reports.ProductionSummaryCSVHandler())
	protected.Get("/reports/production.xlsx", reports.ProductionSummaryXLSXHandler())
	protected.Get("/reports/kiln-quality", reports.KilnQualityHandler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
