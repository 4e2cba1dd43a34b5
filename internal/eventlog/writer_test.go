package eventlog

import (
	"math"
	"testing"

	"github.com/Klue7/nova-erp-sub002/internal/core"
	"github.com/Klue7/nova-erp-sub002/internal/models"
	"github.com/Klue7/nova-erp-sub002/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendStoresPayloadVerbatim(t *testing.T) {
	db := testutil.OpenTestDB(t)
	actor := testutil.Actor(3)

	err := Append(Record{
		Actor:         actor,
		AggregateType: models.AggregateBatch,
		AggregateID:   42,
		EventType:     "batch.created",
		Payload:       map[string]any{"code": "MIX-001", "target_tonnes": 40.0},
	})
	require.NoError(t, err)

	var event models.DomainEvent
	require.NoError(t, db.First(&event).Error)
	assert.EqualValues(t, 3, event.TenantID)
	assert.EqualValues(t, 42, event.AggregateID)
	assert.Equal(t, "batch.created", event.EventType)
	assert.JSONEq(t, `{"code":"MIX-001","target_tonnes":40}`, event.Payload)
	assert.Nil(t, event.CorrelationID)
	assert.Equal(t, actor.UserID, event.ActorID)
	assert.Equal(t, actor.Name, event.ActorName)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestAppendNilPayloadIsJSONNull(t *testing.T) {
	db := testutil.OpenTestDB(t)

	err := Append(Record{
		Actor:         testutil.Actor(1),
		AggregateType: models.AggregateStockpile,
		AggregateID:   1,
		EventType:     "stockpile.created",
	})
	require.NoError(t, err)

	var event models.DomainEvent
	require.NoError(t, db.First(&event).Error)
	assert.Equal(t, "null", event.Payload)
}

func TestAppendRejectsUnserializablePayload(t *testing.T) {
	db := testutil.OpenTestDB(t)

	err := Append(Record{
		Actor:         testutil.Actor(1),
		AggregateType: models.AggregateBatch,
		AggregateID:   1,
		EventType:     "batch.completed",
		Payload:       map[string]any{"quality_pct": math.NaN()},
	})
	var pe *core.EventPersistenceError
	require.ErrorAs(t, err, &pe)

	// nothing may land in the log with the facts stripped out
	var n int64
	require.NoError(t, db.Model(&models.DomainEvent{}).Count(&n).Error)
	assert.EqualValues(t, 0, n)
}

func TestAppendCarriesCorrelationID(t *testing.T) {
	db := testutil.OpenTestDB(t)
	actor := testutil.Actor(1)

	corr := NewCorrelationID()
	require.NotEmpty(t, corr)
	assert.NotEqual(t, corr, NewCorrelationID())

	for _, et := range []string{"batch.component_added", "stockpile.transferred_out"} {
		require.NoError(t, Append(Record{
			Actor:         actor,
			AggregateType: models.AggregateBatch,
			AggregateID:   7,
			EventType:     et,
			CorrelationID: corr,
		}))
	}

	var events []models.DomainEvent
	require.NoError(t, db.Order("id ASC").Find(&events).Error)
	require.Len(t, events, 2)
	for _, e := range events {
		require.NotNil(t, e.CorrelationID)
		assert.Equal(t, corr, *e.CorrelationID)
	}
}
