package models

import "time"

// Aggregate types appearing in the event log.
const (
	AggregateBatch          = "batch"
	AggregateStockpile      = "stockpile"
	AggregateSalesOrder     = "sales_order"
	AggregateMiningDelivery = "mining_delivery"
)

// DomainEvent is the append-only audit trail. Rows are never updated or
// deleted; CorrelationID groups the events of one logical operation.
type DomainEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	TenantID uint `gorm:"not null;index" json:"tenant_id"`

	AggregateType string `gorm:"size:50;not null;index:idx_domain_events_aggregate" json:"aggregate_type"`
	AggregateID   uint   `gorm:"not null;index:idx_domain_events_aggregate" json:"aggregate_id"`

	// e.g. "batch.started", "stockpile.transferred_out"
	EventType string `gorm:"size:50;not null;index" json:"event_type"`

	// Business facts at the time of the action, stored verbatim.
	Payload string `gorm:"type:jsonb" json:"payload"`

	CorrelationID *string `gorm:"size:36;index" json:"correlation_id"`

	// Who did it (name denormalized, same trade-off as everywhere else).
	ActorID   uint   `json:"actor_id"`
	ActorName string `gorm:"size:100" json:"actor_name"`
}
