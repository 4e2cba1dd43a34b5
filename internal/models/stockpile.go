package models

import "time"

type StockpileStatus string

const (
	StockpileOpen   StockpileStatus = "open"
	StockpileClosed StockpileStatus = "closed"
)

// Stockpile is a raw-material pool fed by mining deliveries and drawn down
// by batch component transfers. Current availability lives in the
// stockpile_availability view, not on this row.
type Stockpile struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	TenantID     uint            `gorm:"not null;uniqueIndex:idx_stockpiles_tenant_code" json:"tenant_id"`
	Code         string          `gorm:"size:50;not null;uniqueIndex:idx_stockpiles_tenant_code" json:"code"`
	Name         string          `gorm:"size:100;not null" json:"name"`
	MaterialKind string          `gorm:"size:50" json:"material_kind"` // e.g. clay, shale, coal
	Status       StockpileStatus `gorm:"size:20;default:open" json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
