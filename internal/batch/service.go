// Package batch is the lifecycle engine shared by every production stage:
// validate input, guard the status transition against the current row,
// write the relational change, then append the correlated domain events.
// The relational update and the event append are two sequential calls, not
// one transaction; an event failure fails the operation for the caller.
package batch

import (
	"errors"
	"strings"
	"time"

	"github.com/Klue7/nova-erp-sub002/internal/core"
	"github.com/Klue7/nova-erp-sub002/internal/database"
	"github.com/Klue7/nova-erp-sub002/internal/eventlog"
	"github.com/Klue7/nova-erp-sub002/internal/models"
	"github.com/Klue7/nova-erp-sub002/internal/stockpile"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func fetch(tenantID, id uint) (*models.Batch, error) {
	var b models.Batch
	err := database.DB.First(&b, "id = ? AND tenant_id = ?", id, tenantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &core.NotFoundError{Kind: "batch", ID: id}
	}
	if err != nil {
		return nil, &core.StoreError{Op: "fetch batch", Err: err}
	}
	return &b, nil
}

// Create upserts a batch keyed by (tenant, stage, code), so a retried form
// submission lands on the existing row instead of a duplicate. The created
// event is only emitted when a row was actually inserted.
func Create(actor core.Actor, stage models.BatchStage, code string, targetTonnes any) (*models.Batch, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, &core.ValidationError{Field: "code", Message: "is required"}
	}
	if !models.ValidBatchStage(stage) {
		return nil, &core.ValidationError{Field: "stage", Message: "unknown production stage"}
	}
	target, err := core.ParseMetric("target_tonnes", targetTonnes)
	if err != nil {
		return nil, err
	}

	b := models.Batch{
		TenantID:     actor.TenantID,
		Stage:        stage,
		Code:         code,
		Status:       models.BatchPlanned,
		TargetTonnes: target,
	}

	res := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "stage"}, {Name: "code"}},
		DoNothing: true,
	}).Create(&b)
	if res.Error != nil {
		return nil, &core.StoreError{Op: "create batch", Err: res.Error}
	}

	if res.RowsAffected == 0 {
		var existing models.Batch
		err := database.DB.
			First(&existing, "tenant_id = ? AND stage = ? AND code = ?", actor.TenantID, stage, code).Error
		if err != nil {
			return nil, &core.StoreError{Op: "refetch batch", Err: err}
		}
		return &existing, nil
	}

	if err := eventlog.Append(eventlog.Record{
		Actor:         actor,
		AggregateType: models.AggregateBatch,
		AggregateID:   b.ID,
		EventType:     "batch.created",
		Payload: map[string]any{
			"stage":         b.Stage,
			"code":          b.Code,
			"target_tonnes": b.TargetTonnes,
		},
	}); err != nil {
		return nil, err
	}

	return &b, nil
}

// AddComponent books material out of a stockpile into a batch. No batch row
// changes; the transfer exists only as the correlated event pair (batch
// event first, then the stockpile side), which the availability view rolls
// up externally.
func AddComponent(actor core.Actor, batchID, stockpileID uint, quantity any, materialKind, reference string) error {
	qty, err := core.ParseQuantity("quantity", quantity)
	if err != nil {
		return err
	}

	b, err := fetch(actor.TenantID, batchID)
	if err != nil {
		return err
	}
	if b.Status.Terminal() {
		return &core.InvalidTransitionError{
			Kind: "batch", ID: b.ID,
			Current: string(b.Status), Required: "planned or active",
		}
	}

	sp, err := stockpile.Fetch(actor.TenantID, stockpileID)
	if err != nil {
		return err
	}

	if err := stockpile.CheckAvailable(actor.TenantID, sp.ID, qty); err != nil {
		return err
	}

	corr := eventlog.NewCorrelationID()

	if err := eventlog.Append(eventlog.Record{
		Actor:         actor,
		AggregateType: models.AggregateBatch,
		AggregateID:   b.ID,
		EventType:     "batch.component_added",
		CorrelationID: corr,
		Payload: map[string]any{
			"stockpile_id":  sp.ID,
			"tonnes":        qty,
			"material_kind": materialKind,
			"reference":     reference,
		},
	}); err != nil {
		return err
	}

	return eventlog.Append(eventlog.Record{
		Actor:         actor,
		AggregateType: models.AggregateStockpile,
		AggregateID:   sp.ID,
		EventType:     "stockpile.transferred_out",
		CorrelationID: corr,
		Payload: map[string]any{
			"batch_id":      b.ID,
			"tonnes":        qty,
			"material_kind": materialKind,
			"reference":     reference,
		},
	})
}

// RemoveComponent is the mirror of AddComponent: material goes back to the
// stockpile, so no availability check applies.
func RemoveComponent(actor core.Actor, batchID, stockpileID uint, quantity any, materialKind, reference string) error {
	qty, err := core.ParseQuantity("quantity", quantity)
	if err != nil {
		return err
	}

	b, err := fetch(actor.TenantID, batchID)
	if err != nil {
		return err
	}
	if b.Status.Terminal() {
		return &core.InvalidTransitionError{
			Kind: "batch", ID: b.ID,
			Current: string(b.Status), Required: "planned or active",
		}
	}

	sp, err := stockpile.Fetch(actor.TenantID, stockpileID)
	if err != nil {
		return err
	}

	corr := eventlog.NewCorrelationID()

	if err := eventlog.Append(eventlog.Record{
		Actor:         actor,
		AggregateType: models.AggregateBatch,
		AggregateID:   b.ID,
		EventType:     "batch.component_removed",
		CorrelationID: corr,
		Payload: map[string]any{
			"stockpile_id":  sp.ID,
			"tonnes":        qty,
			"material_kind": materialKind,
			"reference":     reference,
		},
	}); err != nil {
		return err
	}

	return eventlog.Append(eventlog.Record{
		Actor:         actor,
		AggregateType: models.AggregateStockpile,
		AggregateID:   sp.ID,
		EventType:     "stockpile.transferred_in",
		CorrelationID: corr,
		Payload: map[string]any{
			"batch_id":      b.ID,
			"tonnes":        qty,
			"material_kind": materialKind,
			"reference":     reference,
		},
	})
}

// Start moves planned → active. The status check rides in the UPDATE's WHERE
// clause; two racing starts cannot both see a planned row, and the loser's
// zero-row update surfaces as InvalidTransition.
func Start(actor core.Actor, batchID uint) error {
	now := time.Now()
	res := database.DB.Model(&models.Batch{}).
		Where("id = ? AND tenant_id = ? AND status = ?", batchID, actor.TenantID, models.BatchPlanned).
		Updates(map[string]any{"status": models.BatchActive, "started_at": now})
	if res.Error != nil {
		return &core.StoreError{Op: "start batch", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return transitionFailure(actor.TenantID, batchID, "planned")
	}

	return eventlog.Append(eventlog.Record{
		Actor:         actor,
		AggregateType: models.AggregateBatch,
		AggregateID:   batchID,
		EventType:     "batch.started",
		Payload:       map[string]any{"started_at": now},
	})
}

// Complete moves active → completed, stamping the optional yield and quality
// figures onto the row and into the event.
func Complete(actor core.Actor, batchID uint, outputTonnes, qualityPct any) error {
	output, err := core.ParseMetric("output_tonnes", outputTonnes)
	if err != nil {
		return err
	}
	quality, err := core.ParseMetric("quality_pct", qualityPct)
	if err != nil {
		return err
	}

	now := time.Now()
	updates := map[string]any{
		"status":       models.BatchCompleted,
		"completed_at": now,
	}
	if output != nil {
		updates["output_tonnes"] = *output
	}
	if quality != nil {
		updates["quality_pct"] = *quality
	}

	res := database.DB.Model(&models.Batch{}).
		Where("id = ? AND tenant_id = ? AND status = ?", batchID, actor.TenantID, models.BatchActive).
		Updates(updates)
	if res.Error != nil {
		return &core.StoreError{Op: "complete batch", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return transitionFailure(actor.TenantID, batchID, "active")
	}

	return eventlog.Append(eventlog.Record{
		Actor:         actor,
		AggregateType: models.AggregateBatch,
		AggregateID:   batchID,
		EventType:     "batch.completed",
		Payload: map[string]any{
			"completed_at":  now,
			"output_tonnes": output,
			"quality_pct":   quality,
		},
	})
}

// Cancel is the escape hatch from planned or active. A completed batch can
// never be cancelled, and a cancelled one stays cancelled.
func Cancel(actor core.Actor, batchID uint, reason string) error {
	res := database.DB.Model(&models.Batch{}).
		Where("id = ? AND tenant_id = ? AND status IN ?",
			batchID, actor.TenantID, []models.BatchStatus{models.BatchPlanned, models.BatchActive}).
		Updates(map[string]any{"status": models.BatchCancelled, "cancel_reason": reason})
	if res.Error != nil {
		return &core.StoreError{Op: "cancel batch", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return transitionFailure(actor.TenantID, batchID, "planned or active")
	}

	return eventlog.Append(eventlog.Record{
		Actor:         actor,
		AggregateType: models.AggregateBatch,
		AggregateID:   batchID,
		EventType:     "batch.cancelled",
		Payload:       map[string]any{"reason": reason},
	})
}

// transitionFailure turns a zero-row conditional update into the right
// typed error: NotFound when the batch isn't visible in this tenant,
// InvalidTransition naming the actual status otherwise.
func transitionFailure(tenantID, batchID uint, required string) error {
	b, err := fetch(tenantID, batchID)
	if err != nil {
		return err
	}
	return &core.InvalidTransitionError{
		Kind: "batch", ID: b.ID,
		Current: string(b.Status), Required: required,
	}
}
