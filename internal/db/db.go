package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"gamifyiq-backend/internal/config"
)

var database *gorm.DB

// InitDBFromConfig opens the Postgres connection described by the loaded
// configuration and applies the pool settings.
func InitDBFromConfig(cfg *config.APIConfig) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DB.Host, cfg.DB.Port, cfg.DB.Username, cfg.DB.Password, cfg.DB.Name, sslMode(cfg))

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		log.Fatalf("failed to access underlying sql.DB: %v", err)
	}
	if cfg.DB.Pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DB.Pool.MaxOpenConns)
	}
	if cfg.DB.Pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DB.Pool.MaxIdleConns)
	}
	if cfg.DB.Pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.DB.Pool.ConnMaxLifetime) * time.Minute)
	}

	database = conn
}

func sslMode(cfg *config.APIConfig) string {
	if cfg.DB.SSLMode == "" {
		return "disable"
	}
	return cfg.DB.SSLMode
}

// GetDB returns the shared database handle.
func GetDB() *gorm.DB {
	return database
}

// SetDB swaps the shared handle; used by tests.
func SetDB(conn *gorm.DB) {
	database = conn
}
