package reports

import (
	"github.com/Klue7/nova-erp-sub002/internal/auth"
	"github.com/Klue7/nova-erp-sub002/internal/core"
	"github.com/Klue7/nova-erp-sub002/internal/database"
	"github.com/Klue7/nova-erp-sub002/internal/models"

	"github.com/gofiber/fiber/v2"
)

// loadProductionSummary reads the production_summary view for one tenant and
// applies the optional date-range filter. A missing view is the recoverable
// "not provisioned yet" state and reads as no data.
func loadProductionSummary(tenantID uint, stage, from, to string) ([]models.ProductionSummaryRow, error) {
	dbq := database.DB.Where("tenant_id = ?", tenantID)
	if stage != "" {
		dbq = dbq.Where("stage = ?", stage)
	}

	var rows []models.ProductionSummaryRow
	if err := dbq.Order("period DESC, stage ASC").Find(&rows).Error; err != nil {
		if database.RelationMissing(err) {
			return nil, core.ErrViewUnprovisioned
		}
		return nil, &core.StoreError{Op: "read production summary", Err: err}
	}

	filtered := rows[:0]
	for _, r := range rows {
		if InDateRange(r.Period, from, to) {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// GET /api/reports/production?stage=kiln&from=2026-01&to=2026-08
func ProductionSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ResolveActor(c)
		if err != nil {
			return core.HTTPError(err)
		}

		rows, err := loadProductionSummary(actor.TenantID, c.Query("stage"), c.Query("from"), c.Query("to"))
		if err == core.ErrViewUnprovisioned {
			return c.JSON([]models.ProductionSummaryRow{})
		}
		if err != nil {
			return core.HTTPError(err)
		}

		return c.JSON(rows)
	}
}

// GET /api/reports/kiln-quality?from=2026-01-01&to=2026-08-29
// Percentiles over fired-batch quality, read from the kiln_quality view.
func KilnQualityHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ResolveActor(c)
		if err != nil {
			return core.HTTPError(err)
		}

		var rows []models.KilnQualityRow
		qerr := database.DB.Where("tenant_id = ?", actor.TenantID).Find(&rows).Error
		if qerr != nil && !database.RelationMissing(qerr) {
			return fiber.NewError(fiber.StatusInternalServerError, "kiln quality could not be read")
		}

		from, to := c.Query("from"), c.Query("to")
		values := make([]float64, 0, len(rows))
		for _, r := range rows {
			if InDateRange(r.CompletedOn, from, to) {
				values = append(values, r.QualityPct)
			}
		}

		if len(values) == 0 {
			return c.JSON(fiber.Map{"batch_count": 0, "percentiles": nil})
		}

		return c.JSON(fiber.Map{
			"batch_count": len(values),
			"percentiles": Percentiles(values, 50, 90),
		})
	}
}
