package models

import "time"

type OrderStatus string

const (
	OrderOpen       OrderStatus = "open"
	OrderDispatched OrderStatus = "dispatched"
	OrderInvoiced   OrderStatus = "invoiced"
	OrderCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Terminal() bool {
	return s == OrderInvoiced || s == OrderCancelled
}

type SalesOrder struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TenantID uint   `gorm:"not null;uniqueIndex:idx_sales_orders_tenant_code" json:"tenant_id"`
	Code     string `gorm:"size:50;not null;uniqueIndex:idx_sales_orders_tenant_code" json:"code"`

	Customer  string      `gorm:"size:100;not null" json:"customer"`
	Bricks    float64     `gorm:"not null" json:"bricks"` // quantity in thousands
	UnitPrice float64     `json:"unit_price"`
	Status    OrderStatus `gorm:"size:20;not null;default:open;index" json:"status"`

	DispatchedAt *time.Time `json:"dispatched_at"`
	InvoicedAt   *time.Time `json:"invoiced_at"`
	CancelReason string     `gorm:"size:255" json:"cancel_reason"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
