package models

import "time"

// MiningDelivery records a truckload from a pit into a stockpile.
type MiningDelivery struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	TenantID    uint       `gorm:"not null;index" json:"tenant_id"`
	StockpileID uint       `gorm:"not null;index" json:"stockpile_id"`
	Stockpile   *Stockpile `json:"-"`
	Tonnes      float64    `gorm:"not null" json:"tonnes"`
	SourcePit   string     `gorm:"size:100" json:"source_pit"`
	DeliveredOn time.Time  `json:"delivered_on"`
	CreatedAt   time.Time  `json:"created_at"`
}
