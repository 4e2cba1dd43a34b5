package sales

import (
	"testing"

	"github.com/Klue7/nova-erp-sub002/internal/core"
	"github.com/Klue7/nova-erp-sub002/internal/models"
	"github.com/Klue7/nova-erp-sub002/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIsIdempotentPerTenantAndCode(t *testing.T) {
	db := testutil.OpenTestDB(t)
	actor := testutil.Actor(1)

	first, err := Create(actor, "SO-100", "Boland Builders", 12.0, "1850")
	require.NoError(t, err)
	assert.Equal(t, models.OrderOpen, first.Status)
	assert.Equal(t, 1850.0, first.UnitPrice)

	second, err := Create(actor, "SO-100", "Boland Builders", 12.0, nil)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var n int64
	require.NoError(t, db.Model(&models.SalesOrder{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestCreateValidation(t *testing.T) {
	testutil.OpenTestDB(t)
	actor := testutil.Actor(1)

	var ve *core.ValidationError
	_, err := Create(actor, "", "Customer", 1.0, nil)
	require.ErrorAs(t, err, &ve)
	_, err = Create(actor, "SO-1", "", 1.0, nil)
	require.ErrorAs(t, err, &ve)
	_, err = Create(actor, "SO-1", "Customer", -1.0, nil)
	require.ErrorAs(t, err, &ve)
}

func TestLifecycleGuards(t *testing.T) {
	db := testutil.OpenTestDB(t)
	actor := testutil.Actor(1)

	o, err := Create(actor, "SO-200", "Karoo Paving", 30.0, nil)
	require.NoError(t, err)

	// invoice straight from open is not allowed
	var it *core.InvalidTransitionError
	require.ErrorAs(t, Invoice(actor, o.ID), &it)
	assert.Equal(t, string(models.OrderOpen), it.Current)

	require.NoError(t, Dispatch(actor, o.ID))
	require.ErrorAs(t, Dispatch(actor, o.ID), &it)

	require.NoError(t, Invoice(actor, o.ID))

	var reloaded models.SalesOrder
	require.NoError(t, db.First(&reloaded, o.ID).Error)
	assert.Equal(t, models.OrderInvoiced, reloaded.Status)
	assert.NotNil(t, reloaded.DispatchedAt)
	assert.NotNil(t, reloaded.InvoicedAt)

	// invoiced orders stay on the books
	require.ErrorAs(t, Cancel(actor, o.ID, "no"), &it)
}

func TestCancelBeforeInvoice(t *testing.T) {
	db := testutil.OpenTestDB(t)
	actor := testutil.Actor(1)

	o, err := Create(actor, "SO-300", "Cape Brickworks", 5.0, nil)
	require.NoError(t, err)
	require.NoError(t, Dispatch(actor, o.ID))
	require.NoError(t, Cancel(actor, o.ID, "customer withdrew"))

	var reloaded models.SalesOrder
	require.NoError(t, db.First(&reloaded, o.ID).Error)
	assert.Equal(t, models.OrderCancelled, reloaded.Status)
	assert.Equal(t, "customer withdrew", reloaded.CancelReason)

	var events []models.DomainEvent
	require.NoError(t, db.
		Where("aggregate_type = ? AND aggregate_id = ?", models.AggregateSalesOrder, o.ID).
		Order("id ASC").Find(&events).Error)
	require.Len(t, events, 3)
	assert.Equal(t, "sales_order.created", events[0].EventType)
	assert.Equal(t, "sales_order.dispatched", events[1].EventType)
	assert.Equal(t, "sales_order.cancelled", events[2].EventType)
}

func TestCrossTenantOrderIsNotFound(t *testing.T) {
	testutil.OpenTestDB(t)

	o, err := Create(testutil.Actor(1), "SO-400", "Swartland Housing", 8.0, nil)
	require.NoError(t, err)

	var nf *core.NotFoundError
	require.ErrorAs(t, Dispatch(testutil.Actor(2), o.ID), &nf)
}
