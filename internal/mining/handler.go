package mining

import (
	"time"

	"github.com/Klue7/nova-erp-sub002/internal/auth"
	"github.com/Klue7/nova-erp-sub002/internal/core"
	"github.com/Klue7/nova-erp-sub002/internal/database"
	"github.com/Klue7/nova-erp-sub002/internal/models"

	"github.com/gofiber/fiber/v2"
)

type RecordDeliveryRequest struct {
	StockpileID uint   `json:"stockpile_id"`
	Tonnes      any    `json:"tonnes"` // number or numeric string
	SourcePit   string `json:"source_pit"`
	Date        string `json:"date"` // "2026-08-29", defaults to today
}

// POST /api/mining/deliveries
func RecordDeliveryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ResolveActor(c)
		if err != nil {
			return core.HTTPError(err)
		}

		var body RecordDeliveryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.StockpileID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "stockpile_id is required")
		}

		deliveredOn := time.Now()
		if body.Date != "" {
			d, err := time.Parse("2006-01-02", body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
			}
			deliveredOn = d
		}

		delivery, err := RecordDelivery(actor, body.StockpileID, body.Tonnes, body.SourcePit, deliveredOn)
		if err != nil {
			return core.HTTPError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(delivery)
	}
}

// GET /api/mining/deliveries?stockpile_id=1
func ListDeliveriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ResolveActor(c)
		if err != nil {
			return core.HTTPError(err)
		}

		dbq := database.DB.Where("tenant_id = ?", actor.TenantID)
		if spID := c.QueryInt("stockpile_id"); spID > 0 {
			dbq = dbq.Where("stockpile_id = ?", spID)
		}

		var deliveries []models.MiningDelivery
		if err := dbq.Order("delivered_on DESC, created_at DESC").Find(&deliveries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "deliveries could not be listed")
		}

		return c.JSON(deliveries)
	}
}
