package reports

import (
	"bytes"
	"fmt"

	"github.com/Klue7/nova-erp-sub002/internal/auth"
	"github.com/Klue7/nova-erp-sub002/internal/core"
	"github.com/Klue7/nova-erp-sub002/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

var productionHeaders = []string{"period", "stage", "batch_count", "total_output_tonnes", "avg_quality_pct"}

func productionRows(rows []models.ProductionSummaryRow) [][]any {
	out := make([][]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, []any{r.Period, r.Stage, r.BatchCount, r.TotalOutputTonnes, r.AvgQualityPct})
	}
	return out
}

// GET /api/reports/production.csv
func ProductionSummaryCSVHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ResolveActor(c)
		if err != nil {
			return core.HTTPError(err)
		}

		rows, err := loadProductionSummary(actor.TenantID, c.Query("stage"), c.Query("from"), c.Query("to"))
		if err != nil && err != core.ErrViewUnprovisioned {
			return core.HTTPError(err)
		}

		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="production-summary.csv"`)
		return c.SendString(WriteCSV(productionHeaders, productionRows(rows)))
	}
}

// GET /api/reports/production.xlsx
func ProductionSummaryXLSXHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := auth.ResolveActor(c)
		if err != nil {
			return core.HTTPError(err)
		}

		rows, err := loadProductionSummary(actor.TenantID, c.Query("stage"), c.Query("from"), c.Query("to"))
		if err != nil && err != core.ErrViewUnprovisioned {
			return core.HTTPError(err)
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := f.GetSheetName(0)
		for i, h := range productionHeaders {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}
		for ri, r := range rows {
			rowValues := []any{r.Period, r.Stage, r.BatchCount, r.TotalOutputTonnes}
			if r.AvgQualityPct != nil {
				rowValues = append(rowValues, *r.AvgQualityPct)
			} else {
				rowValues = append(rowValues, "")
			}
			for ci, v := range rowValues {
				cell, _ := excelize.CoordinatesToCellName(ci+1, ri+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		var buf bytes.Buffer
		if err := f.Write(&buf); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("xlsx could not be written: %v", err))
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="production-summary.xlsx"`)
		return c.Send(buf.Bytes())
	}
}
