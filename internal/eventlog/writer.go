package eventlog

import (
	"encoding/json"

	"github.com/Klue7/nova-erp-sub002/internal/core"
	"github.com/Klue7/nova-erp-sub002/internal/database"
	"github.com/Klue7/nova-erp-sub002/internal/models"

	"github.com/google/uuid"
)

// Record is one fact to append. Payload is marshaled and stored verbatim;
// there is no schema validation beyond it being serializable.
type Record struct {
	Actor         core.Actor
	AggregateType string
	AggregateID   uint
	EventType     string
	Payload       any
	CorrelationID string // empty when the operation touches one aggregate
}

// NewCorrelationID is generated once per logical operation and threaded
// through every Append within it.
func NewCorrelationID() string {
	return uuid.NewString()
}

// Append writes one immutable event row. The log is the sole audit trail:
// rows are never updated or deleted, and a failure here must fail the whole
// operation at the call site.
func Append(rec Record) error {
	// jsonb wants the literal "null" for an absent payload
	payload := "null"
	if rec.Payload != nil {
		b, err := json.Marshal(rec.Payload)
		if err != nil {
			return &core.EventPersistenceError{Err: err}
		}
		payload = string(b)
	}

	var corr *string
	if rec.CorrelationID != "" {
		corr = &rec.CorrelationID
	}

	event := models.DomainEvent{
		TenantID:      rec.Actor.TenantID,
		AggregateType: rec.AggregateType,
		AggregateID:   rec.AggregateID,
		EventType:     rec.EventType,
		Payload:       payload,
		CorrelationID: corr,
		ActorID:       rec.Actor.UserID,
		ActorName:     rec.Actor.Name,
	}

	if err := database.DB.Create(&event).Error; err != nil {
		return &core.EventPersistenceError{Err: err}
	}

	return nil
}
