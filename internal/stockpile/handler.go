package stockpile

import (
	"errors"
	"fmt"

	"github.com/Klue7/nova-erp-sub002/internal/auth"
	"github.com/Klue7/nova-erp-sub002/internal/core"
	"github.com/Klue7/nova-erp-sub002/internal/database"
	"github.com/Klue7/nova-erp-sub002/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateStockpileRequest struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	MaterialKind string `json:"material_kind"`
}

// POST /api/stockpiles
func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ResolveActor(c)
		if err != nil {
			return core.HTTPError(err)
		}

		var body CreateStockpileRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		sp, err := Create(actor, body.Code, body.Name, body.MaterialKind)
		if err != nil {
			return core.HTTPError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(sp)
	}
}

// GET /api/stockpiles
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ResolveActor(c)
		if err != nil {
			return core.HTTPError(err)
		}

		var piles []models.Stockpile
		if err := database.DB.
			Where("tenant_id = ?", actor.TenantID).
			Order("code ASC").
			Find(&piles).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "stockpiles could not be listed")
		}

		return c.JSON(piles)
	}
}

// GET /api/stockpiles/:id
func GetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ResolveActor(c)
		if err != nil {
			return core.HTTPError(err)
		}

		id, err := parseID(c)
		if err != nil {
			return err
		}

		sp, err := Fetch(actor.TenantID, id)
		if err != nil {
			return core.HTTPError(err)
		}

		return c.JSON(sp)
	}
}

// GET /api/stockpiles/:id/availability
func AvailabilityHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ResolveActor(c)
		if err != nil {
			return core.HTTPError(err)
		}

		id, err := parseID(c)
		if err != nil {
			return err
		}

		if _, err := Fetch(actor.TenantID, id); err != nil {
			return core.HTTPError(err)
		}

		var row models.StockpileAvailability
		qerr := database.DB.
			Where("stockpile_id = ? AND tenant_id = ?", id, actor.TenantID).
			Take(&row).Error

		switch {
		case qerr == nil:
			return c.JSON(fiber.Map{"stockpile_id": id, "available_tonnes": row.AvailableTonnes})
		case errors.Is(qerr, gorm.ErrRecordNotFound):
			// view exists, no row yet: an empty pool
			return c.JSON(fiber.Map{"stockpile_id": id, "available_tonnes": 0})
		case database.RelationMissing(qerr):
			// view not provisioned in this deployment
			return c.JSON(fiber.Map{"stockpile_id": id, "available_tonnes": nil})
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "availability could not be read")
		}
	}
}

func parseID(c *fiber.Ctx) (uint, error) {
	var id uint
	if _, err := fmt.Sscan(c.Params("id"), &id); err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid stockpile id")
	}
	return id, nil
}
