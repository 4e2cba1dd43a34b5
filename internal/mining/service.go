package mining

import (
	"strings"
	"time"

	"github.com/Klue7/nova-erp-sub002/internal/core"
	"github.com/Klue7/nova-erp-sub002/internal/database"
	"github.com/Klue7/nova-erp-sub002/internal/eventlog"
	"github.com/Klue7/nova-erp-sub002/internal/models"
	"github.com/Klue7/nova-erp-sub002/internal/stockpile"
)

// RecordDelivery books a truckload from the pit into a stockpile: one
// delivery row plus the correlated delivery/stockpile event pair.
func RecordDelivery(actor core.Actor, stockpileID uint, tonnes any, sourcePit string, deliveredOn time.Time) (*models.MiningDelivery, error) {
	qty, err := core.ParseQuantity("tonnes", tonnes)
	if err != nil {
		return nil, err
	}

	sp, err := stockpile.Fetch(actor.TenantID, stockpileID)
	if err != nil {
		return nil, err
	}
	if sp.Status != models.StockpileOpen {
		return nil, &core.InvalidTransitionError{
			Kind: "stockpile", ID: sp.ID,
			Current: string(sp.Status), Required: "open",
		}
	}

	delivery := models.MiningDelivery{
		TenantID:    actor.TenantID,
		StockpileID: sp.ID,
		Tonnes:      qty,
		SourcePit:   strings.TrimSpace(sourcePit),
		DeliveredOn: deliveredOn,
	}
	if err := database.DB.Create(&delivery).Error; err != nil {
		return nil, &core.StoreError{Op: "record delivery", Err: err}
	}

	corr := eventlog.NewCorrelationID()

	if err := eventlog.Append(eventlog.Record{
		Actor:         actor,
		AggregateType: models.AggregateMiningDelivery,
		AggregateID:   delivery.ID,
		EventType:     "mining_delivery.recorded",
		CorrelationID: corr,
		Payload: map[string]any{
			"stockpile_id": sp.ID,
			"tonnes":       qty,
			"source_pit":   delivery.SourcePit,
			"delivered_on": deliveredOn.Format("2006-01-02"),
		},
	}); err != nil {
		return nil, err
	}

	if err := eventlog.Append(eventlog.Record{
		Actor:         actor,
		AggregateType: models.AggregateStockpile,
		AggregateID:   sp.ID,
		EventType:     "stockpile.transferred_in",
		CorrelationID: corr,
		Payload: map[string]any{
			"delivery_id": delivery.ID,
			"tonnes":      qty,
			"source_pit":  delivery.SourcePit,
		},
	}); err != nil {
		return nil, err
	}

	return &delivery, nil
}
