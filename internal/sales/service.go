// Package sales runs dispatch orders on the same shape as the batch engine:
// idempotent create by natural code, guarded transitions via conditional
// updates, one event per state change.
package sales

import (
	"errors"
	"strings"
	"time"

	"github.com/Klue7/nova-erp-sub002/internal/core"
	"github.com/Klue7/nova-erp-sub002/internal/database"
	"github.com/Klue7/nova-erp-sub002/internal/eventlog"
	"github.com/Klue7/nova-erp-sub002/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func fetch(tenantID, id uint) (*models.SalesOrder, error) {
	var o models.SalesOrder
	err := database.DB.First(&o, "id = ? AND tenant_id = ?", id, tenantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &core.NotFoundError{Kind: "sales order", ID: id}
	}
	if err != nil {
		return nil, &core.StoreError{Op: "fetch sales order", Err: err}
	}
	return &o, nil
}

func Create(actor core.Actor, code, customer string, bricks, unitPrice any) (*models.SalesOrder, error) {
	code = strings.TrimSpace(code)
	customer = strings.TrimSpace(customer)
	if code == "" {
		return nil, &core.ValidationError{Field: "code", Message: "is required"}
	}
	if customer == "" {
		return nil, &core.ValidationError{Field: "customer", Message: "is required"}
	}
	qty, err := core.ParseQuantity("bricks", bricks)
	if err != nil {
		return nil, err
	}
	price, err := core.ParseMetric("unit_price", unitPrice)
	if err != nil {
		return nil, err
	}

	o := models.SalesOrder{
		TenantID: actor.TenantID,
		Code:     code,
		Customer: customer,
		Bricks:   qty,
		Status:   models.OrderOpen,
	}
	if price != nil {
		o.UnitPrice = *price
	}

	res := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "code"}},
		DoNothing: true,
	}).Create(&o)
	if res.Error != nil {
		return nil, &core.StoreError{Op: "create sales order", Err: res.Error}
	}

	if res.RowsAffected == 0 {
		var existing models.SalesOrder
		err := database.DB.First(&existing, "tenant_id = ? AND code = ?", actor.TenantID, code).Error
		if err != nil {
			return nil, &core.StoreError{Op: "refetch sales order", Err: err}
		}
		return &existing, nil
	}

	if err := eventlog.Append(eventlog.Record{
		Actor:         actor,
		AggregateType: models.AggregateSalesOrder,
		AggregateID:   o.ID,
		EventType:     "sales_order.created",
		Payload: map[string]any{
			"code":       o.Code,
			"customer":   o.Customer,
			"bricks":     o.Bricks,
			"unit_price": o.UnitPrice,
		},
	}); err != nil {
		return nil, err
	}

	return &o, nil
}

// Dispatch moves open → dispatched.
func Dispatch(actor core.Actor, orderID uint) error {
	now := time.Now()
	res := database.DB.Model(&models.SalesOrder{}).
		Where("id = ? AND tenant_id = ? AND status = ?", orderID, actor.TenantID, models.OrderOpen).
		Updates(map[string]any{"status": models.OrderDispatched, "dispatched_at": now})
	if res.Error != nil {
		return &core.StoreError{Op: "dispatch sales order", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return transitionFailure(actor.TenantID, orderID, "open")
	}

	return eventlog.Append(eventlog.Record{
		Actor:         actor,
		AggregateType: models.AggregateSalesOrder,
		AggregateID:   orderID,
		EventType:     "sales_order.dispatched",
		Payload:       map[string]any{"dispatched_at": now},
	})
}

// Invoice moves dispatched → invoiced and closes the order out to finance.
func Invoice(actor core.Actor, orderID uint) error {
	now := time.Now()
	res := database.DB.Model(&models.SalesOrder{}).
		Where("id = ? AND tenant_id = ? AND status = ?", orderID, actor.TenantID, models.OrderDispatched).
		Updates(map[string]any{"status": models.OrderInvoiced, "invoiced_at": now})
	if res.Error != nil {
		return &core.StoreError{Op: "invoice sales order", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return transitionFailure(actor.TenantID, orderID, "dispatched")
	}

	return eventlog.Append(eventlog.Record{
		Actor:         actor,
		AggregateType: models.AggregateSalesOrder,
		AggregateID:   orderID,
		EventType:     "sales_order.invoiced",
		Payload:       map[string]any{"invoiced_at": now},
	})
}

// Cancel works from open or dispatched; an invoiced order stays on the books.
func Cancel(actor core.Actor, orderID uint, reason string) error {
	res := database.DB.Model(&models.SalesOrder{}).
		Where("id = ? AND tenant_id = ? AND status IN ?",
			orderID, actor.TenantID, []models.OrderStatus{models.OrderOpen, models.OrderDispatched}).
		Updates(map[string]any{"status": models.OrderCancelled, "cancel_reason": reason})
	if res.Error != nil {
		return &core.StoreError{Op: "cancel sales order", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return transitionFailure(actor.TenantID, orderID, "open or dispatched")
	}

	return eventlog.Append(eventlog.Record{
		Actor:         actor,
		AggregateType: models.AggregateSalesOrder,
		AggregateID:   orderID,
		EventType:     "sales_order.cancelled",
		Payload:       map[string]any{"reason": reason},
	})
}

func transitionFailure(tenantID, orderID uint, required string) error {
	o, err := fetch(tenantID, orderID)
	if err != nil {
		return err
	}
	return &core.InvalidTransitionError{
		Kind: "sales order", ID: o.ID,
		Current: string(o.Status), Required: required,
	}
}
