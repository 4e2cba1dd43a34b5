package stockpile

import (
	"errors"
	"strings"

	"github.com/Klue7/nova-erp-sub002/internal/core"
	"github.com/Klue7/nova-erp-sub002/internal/database"
	"github.com/Klue7/nova-erp-sub002/internal/eventlog"
	"github.com/Klue7/nova-erp-sub002/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Fetch loads a stockpile scoped to the actor's tenant. A row under another
// tenant and a missing row are the same NotFound on purpose, so existence
// never leaks across tenants.
func Fetch(tenantID, id uint) (*models.Stockpile, error) {
	var sp models.Stockpile
	err := database.DB.First(&sp, "id = ? AND tenant_id = ?", id, tenantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &core.NotFoundError{Kind: "stockpile", ID: id}
	}
	if err != nil {
		return nil, &core.StoreError{Op: "fetch stockpile", Err: err}
	}
	return &sp, nil
}

// CheckAvailable enforces the availability of a stockpile against a requested
// draw. Enforcement is best-effort: the backing view is materialized outside
// this service and may not exist yet, in which case the check is a no-op.
func CheckAvailable(tenantID, stockpileID uint, requested float64) error {
	var row models.StockpileAvailability
	err := database.DB.
		Where("stockpile_id = ? AND tenant_id = ?", stockpileID, tenantID).
		Take(&row).Error

	switch {
	case err == nil:
		// fall through to the comparison
	case errors.Is(err, gorm.ErrRecordNotFound):
		// view exists but carries nothing for this pool: nothing available
		row.AvailableTonnes = 0
	case database.RelationMissing(err):
		return nil
	default:
		return &core.StoreError{Op: "check availability", Err: err}
	}

	if row.AvailableTonnes < requested {
		return &core.InsufficientInventoryError{
			StockpileID: stockpileID,
			Available:   row.AvailableTonnes,
			Requested:   requested,
		}
	}
	return nil
}

// Create is an idempotent upsert keyed by (tenant, code). The created event
// is only emitted when a row was actually inserted.
func Create(actor core.Actor, code, name, materialKind string) (*models.Stockpile, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" {
		return nil, &core.ValidationError{Field: "code", Message: "is required"}
	}
	if name == "" {
		return nil, &core.ValidationError{Field: "name", Message: "is required"}
	}

	sp := models.Stockpile{
		TenantID:     actor.TenantID,
		Code:         code,
		Name:         name,
		MaterialKind: strings.TrimSpace(materialKind),
		Status:       models.StockpileOpen,
	}

	res := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "code"}},
		DoNothing: true,
	}).Create(&sp)
	if res.Error != nil {
		return nil, &core.StoreError{Op: "create stockpile", Err: res.Error}
	}

	if res.RowsAffected == 0 {
		var existing models.Stockpile
		err := database.DB.
			First(&existing, "tenant_id = ? AND code = ?", actor.TenantID, code).Error
		if err != nil {
			return nil, &core.StoreError{Op: "refetch stockpile", Err: err}
		}
		return &existing, nil
	}

	if err := eventlog.Append(eventlog.Record{
		Actor:         actor,
		AggregateType: models.AggregateStockpile,
		AggregateID:   sp.ID,
		EventType:     "stockpile.created",
		Payload: map[string]any{
			"code":          sp.Code,
			"name":          sp.Name,
			"material_kind": sp.MaterialKind,
		},
	}); err != nil {
		return nil, err
	}

	return &sp, nil
}
