package testutil

import (
	"testing"

	"github.com/Klue7/nova-erp-sub002/internal/core"
	"github.com/Klue7/nova-erp-sub002/internal/database"
	"github.com/Klue7/nova-erp-sub002/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// OpenTestDB swaps the package-global DB for an isolated in-memory sqlite
// store. Max one open connection, or every pooled conn would get its own
// empty :memory: database.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.Stockpile{},
		&models.Batch{},
		&models.MiningDelivery{},
		&models.SalesOrder{},
		&models.DomainEvent{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	database.DB = db
	return db
}

// CreateAvailabilityView stands in for the externally materialized
// stockpile_availability view.
func CreateAvailabilityView(t *testing.T, db *gorm.DB) {
	t.Helper()
	err := db.Exec(`CREATE TABLE stockpile_availability (
		stockpile_id INTEGER,
		tenant_id INTEGER,
		available_tonnes REAL
	)`).Error
	if err != nil {
		t.Fatalf("create availability view: %v", err)
	}
}

// SetAvailability upserts the available tonnage for one pool.
func SetAvailability(t *testing.T, db *gorm.DB, tenantID, stockpileID uint, tonnes float64) {
	t.Helper()
	if err := db.Exec(`DELETE FROM stockpile_availability WHERE stockpile_id = ? AND tenant_id = ?`,
		stockpileID, tenantID).Error; err != nil {
		t.Fatalf("clear availability: %v", err)
	}
	if err := db.Exec(`INSERT INTO stockpile_availability (stockpile_id, tenant_id, available_tonnes) VALUES (?, ?, ?)`,
		stockpileID, tenantID, tonnes).Error; err != nil {
		t.Fatalf("set availability: %v", err)
	}
}

// Actor builds a tenant-scoped actor for service calls.
func Actor(tenantID uint) core.Actor {
	return core.Actor{
		UserID:   1,
		Name:     "Test Operator",
		Role:     models.RoleTenantAdmin,
		TenantID: tenantID,
	}
}
