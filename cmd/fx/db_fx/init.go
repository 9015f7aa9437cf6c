package db_fx

import (
	"log"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"pawly/internal/infra"
)

var Module = fx.Provide(
	provideDB)

func provideDB() *gorm.DB {
	db := infra.InitPostgresql()

	if err := infra.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}
