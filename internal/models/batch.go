package models

import "time"

type BatchStage string

// Production stages that run batches. Mining feeds stockpiles directly and
// dispatch/sales run on orders, so neither appears here.
const (
	StageMixing    BatchStage = "mixing"
	StageCrushing  BatchStage = "crushing"
	StageExtrusion BatchStage = "extrusion"
	StageDrying    BatchStage = "drying"
	StageKiln      BatchStage = "kiln"
	StagePacking   BatchStage = "packing"
)

func ValidBatchStage(s BatchStage) bool {
	switch s {
	case StageMixing, StageCrushing, StageExtrusion, StageDrying, StageKiln, StagePacking:
		return true
	}
	return false
}

type BatchStatus string

const (
	BatchPlanned   BatchStatus = "planned"
	BatchActive    BatchStatus = "active"
	BatchCompleted BatchStatus = "completed"
	BatchCancelled BatchStatus = "cancelled"
)

// Terminal reports whether no further transition is allowed.
func (s BatchStatus) Terminal() bool {
	return s == BatchCompleted || s == BatchCancelled
}

type Batch struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	TenantID uint       `gorm:"not null;uniqueIndex:idx_batches_tenant_stage_code" json:"tenant_id"`
	Stage    BatchStage `gorm:"size:20;not null;uniqueIndex:idx_batches_tenant_stage_code" json:"stage"`
	Code     string     `gorm:"size:50;not null;uniqueIndex:idx_batches_tenant_stage_code" json:"code"`

	Status BatchStatus `gorm:"size:20;not null;default:planned;index" json:"status"`

	TargetTonnes *float64 `json:"target_tonnes"`
	OutputTonnes *float64 `json:"output_tonnes"`
	QualityPct   *float64 `json:"quality_pct"`
	CancelReason string   `gorm:"size:255" json:"cancel_reason"`

	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
