package models

// Read-only structs mapped onto reporting views. The views are materialized
// outside this service and may legitimately not exist in a deployment;
// callers treat a missing relation as "no data".

type StockpileAvailability struct {
	StockpileID     uint    `gorm:"column:stockpile_id"`
	TenantID        uint    `gorm:"column:tenant_id"`
	AvailableTonnes float64 `gorm:"column:available_tonnes"`
}

func (StockpileAvailability) TableName() string { return "stockpile_availability" }

type ProductionSummaryRow struct {
	TenantID          uint     `gorm:"column:tenant_id" json:"tenant_id"`
	Stage             string   `gorm:"column:stage" json:"stage"`
	Period            string   `gorm:"column:period" json:"period"` // "2026-08"
	BatchCount        int64    `gorm:"column:batch_count" json:"batch_count"`
	TotalOutputTonnes float64  `gorm:"column:total_output_tonnes" json:"total_output_tonnes"`
	AvgQualityPct     *float64 `gorm:"column:avg_quality_pct" json:"avg_quality_pct"`
}

func (ProductionSummaryRow) TableName() string { return "production_summary" }

type KilnQualityRow struct {
	TenantID    uint    `gorm:"column:tenant_id"`
	BatchID     uint    `gorm:"column:batch_id"`
	QualityPct  float64 `gorm:"column:quality_pct"`
	CompletedOn string  `gorm:"column:completed_on"`
}

func (KilnQualityRow) TableName() string { return "kiln_quality" }
