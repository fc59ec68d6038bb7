package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Pacific-Tide/pacific-tide-backend/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// StoreDB is used for raw appends (quote log, login events).
	StoreDB *pgxpool.Pool

	// StoreGorm backs the catalog and users.
	StoreGorm *gorm.DB
)

func InitDB() {
	initPgx()
	initGORM()
	migrate()
}

func storeURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	log.Println("⚠️ DATABASE_URL not set, using local default")
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", ""),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "pacific_tide"),
	)
}

func initPgx() {
	var err error
	StoreDB, err = pgxpool.New(context.Background(), storeURL())
	if err != nil {
		log.Fatalf("❌ Unable to connect to store database: %v", err)
	}

	if err = StoreDB.Ping(context.Background()); err != nil {
		log.Fatalf("❌ Store database ping failed: %v", err)
	}

	log.Println("✅ Store database connected (pgx)")
}

func initGORM() {
	gormLogger := logger.Default.LogMode(logger.Info)
	if IsProduction() {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	var err error
	StoreGorm, err = gorm.Open(postgres.Open(storeURL()), &gorm.Config{
		Logger:         gormLogger,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect to store database with GORM: %v", err)
	}
	if sqlDB, err := StoreGorm.DB(); err == nil {
		sqlDB.SetMaxOpenConns(5)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(2 * time.Minute)
	}
	log.Println("✅ Store database connected (GORM)")
}

// migrate keeps the schema in step with the models. Catalog rows are written by cmd/seed only.
func migrate() {
	err := StoreGorm.AutoMigrate(
		&models.Heater{},
		&models.Product{},
		&models.ProductOption{},
		&models.Image{},
		&models.User{},
		&models.LoginEvent{},
		&models.QuoteLog{},
	)
	if err != nil {
		log.Fatalf("❌ Auto-migration failed: %v", err)
	}
	log.Println("✅ Schema migrated")
}

func CloseDB() {
	if StoreDB != nil {
		StoreDB.Close()
		log.Println("✅ Store database connection closed (pgx)")
	}

	if StoreGorm != nil {
		sqlDB, _ := StoreGorm.DB()
		if sqlDB != nil {
			sqlDB.Close()
			log.Println("✅ Store database connection closed (GORM)")
		}
	}
}

// WithTimeout returns a context with a 10s timeout (bumped from 5s for Neon cold starts)
func WithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func WithCustomTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func IsProduction() bool {
	return os.Getenv("APP_ENV") == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
