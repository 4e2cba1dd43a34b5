package production

import (
	"errors"
	"fmt"

	"github.com/Klue7/nova-erp-sub002/internal/auth"
	"github.com/Klue7/nova-erp-sub002/internal/batch"
	"github.com/Klue7/nova-erp-sub002/internal/core"
	"github.com/Klue7/nova-erp-sub002/internal/database"
	"github.com/Klue7/nova-erp-sub002/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateBatchRequest struct {
	Stage        string `json:"stage"`
	Code         string `json:"code"`
	TargetTonnes any    `json:"target_tonnes"`
}

type ComponentRequest struct {
	StockpileID  uint   `json:"stockpile_id"`
	Quantity     any    `json:"quantity"` // number or numeric string
	MaterialKind string `json:"material_kind"`
	Reference    string `json:"reference"`
}

type CompleteRequest struct {
	OutputTonnes any `json:"output_tonnes"`
	QualityPct   any `json:"quality_pct"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

// POST /api/batches
func CreateBatchHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ResolveActor(c)
		if err != nil {
			return core.HTTPError(err)
		}

		var body CreateBatchRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		b, err := batch.Create(actor, models.BatchStage(body.Stage), body.Code, body.TargetTonnes)
		if err != nil {
			return core.HTTPError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(b)
	}
}

// GET /api/batches?stage=kiln&status=active
func ListBatchesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ResolveActor(c)
		if err != nil {
			return core.HTTPError(err)
		}

		dbq := database.DB.Where("tenant_id = ?", actor.TenantID)
		if stage := c.Query("stage"); stage != "" {
			dbq = dbq.Where("stage = ?", stage)
		}
		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("status = ?", status)
		}

		var batches []models.Batch
		if err := dbq.Order("created_at DESC").Find(&batches).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "batches could not be listed")
		}

		return c.JSON(batches)
	}
}

// GET /api/batches/:id
func GetBatchHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ResolveActor(c)
		if err != nil {
			return core.HTTPError(err)
		}

		id, err := parseBatchID(c)
		if err != nil {
			return err
		}

		var b models.Batch
		if err := database.DB.First(&b, "id = ? AND tenant_id = ?", id, actor.TenantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return core.HTTPError(&core.NotFoundError{Kind: "batch", ID: id})
			}
			return core.HTTPError(&core.StoreError{Op: "fetch batch", Err: err})
		}

		return c.JSON(b)
	}
}

// POST /api/batches/:id/components
func AddComponentHandler() fiber.Handler {
	return componentHandler(batch.AddComponent)
}

// POST /api/batches/:id/components/remove
func RemoveComponentHandler() fiber.Handler {
	return componentHandler(batch.RemoveComponent)
}

func componentHandler(op func(core.Actor, uint, uint, any, string, string) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ResolveActor(c)
		if err != nil {
			return core.HTTPError(err)
		}

		id, err := parseBatchID(c)
		if err != nil {
			return err
		}

		var body ComponentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if body.StockpileID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "stockpile_id is required")
		}

		if err := op(actor, id, body.StockpileID, body.Quantity, body.MaterialKind, body.Reference); err != nil {
			return core.HTTPError(err)
		}

		return c.JSON(fiber.Map{"message": "transfer recorded"})
	}
}

// POST /api/batches/:id/start
func StartBatchHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ResolveActor(c)
		if err != nil {
			return core.HTTPError(err)
		}

		id, err := parseBatchID(c)
		if err != nil {
			return err
		}

		if err := batch.Start(actor, id); err != nil {
			return core.HTTPError(err)
		}

		return c.JSON(fiber.Map{"message": "batch started"})
	}
}

// POST /api/batches/:id/complete
func CompleteBatchHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ResolveActor(c)
		if err != nil {
			return core.HTTPError(err)
		}

		id, err := parseBatchID(c)
		if err != nil {
			return err
		}

		var body CompleteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		if err := batch.Complete(actor, id, body.OutputTonnes, body.QualityPct); err != nil {
			return core.HTTPError(err)
		}

		return c.JSON(fiber.Map{"message": "batch completed"})
	}
}

// POST /api/batches/:id/cancel
func CancelBatchHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ResolveActor(c)
		if err != nil {
			return core.HTTPError(err)
		}

		id, err := parseBatchID(c)
		if err != nil {
			return err
		}

		var body CancelRequest
		if err := c.BodyParser(&body); err != nil && len(c.Body()) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		if err := batch.Cancel(actor, id, body.Reason); err != nil {
			return core.HTTPError(err)
		}

		return c.JSON(fiber.Map{"message": "batch cancelled"})
	}
}

func parseBatchID(c *fiber.Ctx) (uint, error) {
	var id uint
	if _, err := fmt.Sscan(c.Params("id"), &id); err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid batch id")
	}
	return id, nil
}
