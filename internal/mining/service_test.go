package mining

import (
	"testing"
	"time"

	"github.com/Klue7/nova-erp-sub002/internal/core"
	"github.com/Klue7/nova-erp-sub002/internal/database"
	"github.com/Klue7/nova-erp-sub002/internal/models"
	"github.com/Klue7/nova-erp-sub002/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordDeliveryEmitsCorrelatedPair(t *testing.T) {
	db := testutil.OpenTestDB(t)
	actor := testutil.Actor(1)

	sp := &models.Stockpile{TenantID: 1, Code: "SP-CLAY", Name: "North pile", Status: models.StockpileOpen}
	require.NoError(t, database.DB.Create(sp).Error)

	delivery, err := RecordDelivery(actor, sp.ID, "32.5", "Pit B", time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotZero(t, delivery.ID)
	assert.Equal(t, 32.5, delivery.Tonnes)

	var events []models.DomainEvent
	require.NoError(t, db.Order("id ASC").Find(&events).Error)
	require.Len(t, events, 2)
	assert.Equal(t, "mining_delivery.recorded", events[0].EventType)
	assert.Equal(t, "stockpile.transferred_in", events[1].EventType)
	require.NotNil(t, events[0].CorrelationID)
	require.NotNil(t, events[1].CorrelationID)
	assert.Equal(t, *events[0].CorrelationID, *events[1].CorrelationID)
}

func TestRecordDeliveryValidation(t *testing.T) {
	db := testutil.OpenTestDB(t)
	actor := testutil.Actor(1)

	sp := &models.Stockpile{TenantID: 1, Code: "SP-CLAY", Name: "North pile", Status: models.StockpileOpen}
	require.NoError(t, database.DB.Create(sp).Error)

	var ve *core.ValidationError
	_, err := RecordDelivery(actor, sp.ID, 0.0, "Pit B", time.Now())
	require.ErrorAs(t, err, &ve)

	var nf *core.NotFoundError
	_, err = RecordDelivery(actor, 999, 5.0, "Pit B", time.Now())
	require.ErrorAs(t, err, &nf)

	// closed stockpiles take no more material
	require.NoError(t, db.Model(sp).Update("status", models.StockpileClosed).Error)
	var it *core.InvalidTransitionError
	_, err = RecordDelivery(actor, sp.ID, 5.0, "Pit B", time.Now())
	require.ErrorAs(t, err, &it)

	var deliveries int64
	require.NoError(t, db.Model(&models.MiningDelivery{}).Count(&deliveries).Error)
	assert.EqualValues(t, 0, deliveries)
}
