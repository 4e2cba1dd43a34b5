package database

import (
	"errors"
	"log"
	"strings"

	"github.com/Klue7/nova-erp-sub002/internal/config"
	"github.com/Klue7/nova-erp-sub002/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.Stockpile{},
		&models.Batch{},
		&models.MiningDelivery{},
		&models.SalesOrder{},
		&models.DomainEvent{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	log.Println("database connected, migration complete")
}

// RelationMissing reports whether err is Postgres' undefined_table (42P01),
// i.e. a reporting view that has not been provisioned in this deployment.
// The sqlite message is matched too so the store-backed tests behave the same.
func RelationMissing(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "42P01" {
		return true
	}
	return strings.Contains(err.Error(), "no such table")
}
