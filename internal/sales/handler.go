package sales

import (
	"fmt"

	"github.com/Klue7/nova-erp-sub002/internal/auth"
	"github.com/Klue7/nova-erp-sub002/internal/core"
	"github.com/Klue7/nova-erp-sub002/internal/database"
	"github.com/Klue7/nova-erp-sub002/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateOrderRequest struct {
	Code      string `json:"code"`
	Customer  string `json:"customer"`
	Bricks    any    `json:"bricks"`
	UnitPrice any    `json:"unit_price"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// POST /api/sales-orders
func CreateOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ResolveActor(c)
		if err != nil {
			return core.HTTPError(err)
		}

		var body CreateOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		o, err := Create(actor, body.Code, body.Customer, body.Bricks, body.UnitPrice)
		if err != nil {
			return core.HTTPError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(o)
	}
}

// GET /api/sales-orders?status=open
func ListOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ResolveActor(c)
		if err != nil {
			return core.HTTPError(err)
		}

		dbq := database.DB.Where("tenant_id = ?", actor.TenantID)
		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("status = ?", status)
		}

		var orders []models.SalesOrder
		if err := dbq.Order("created_at DESC").Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "sales orders could not be listed")
		}

		return c.JSON(orders)
	}
}

// POST /api/sales-orders/:id/dispatch
func DispatchOrderHandler() fiber.Handler {
	return transitionHandler(Dispatch, "order dispatched")
}

// POST /api/sales-orders/:id/invoice
func InvoiceOrderHandler() fiber.Handler {
	return transitionHandler(Invoice, "order invoiced")
}

func transitionHandler(op func(core.Actor, uint) error, msg string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ResolveActor(c)
		if err != nil {
			return core.HTTPError(err)
		}

		id, err := parseOrderID(c)
		if err != nil {
			return err
		}

		if err := op(actor, id); err != nil {
			return core.HTTPError(err)
		}

		return c.JSON(fiber.Map{"message": msg})
	}
}

// POST /api/sales-orders/:id/cancel
func CancelOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ResolveActor(c)
		if err != nil {
			return core.HTTPError(err)
		}

		id, err := parseOrderID(c)
		if err != nil {
			return err
		}

		var body CancelOrderRequest
		if err := c.BodyParser(&body); err != nil && len(c.Body()) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		if err := Cancel(actor, id, body.Reason); err != nil {
			return core.HTTPError(err)
		}

		return c.JSON(fiber.Map{"message": "order cancelled"})
	}
}

func parseOrderID(c *fiber.Ctx) (uint, error) {
	var id uint
	if _, err := fmt.Sscan(c.Params("id"), &id); err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}
	return id, nil
}
