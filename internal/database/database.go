package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Measdani/root-intentional-dating-app-sub001/internal/config"
	"github.com/Measdani/root-intentional-dating-app-sub001/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	maxOpenConns    = 40
	maxIdleConns    = 20
	connMaxLifetime = time.Hour
	connMaxIdleTime = 10 * time.Minute
)

var DB *gorm.DB

// Connect opens the Postgres pool. GORM's own logger stays at Warn so query
// noise doesn't drown the structured application log.
func Connect(cfg *config.Config) error {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Warn),
		PrepareStmt: true,
	})
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}

	pool, err := db.DB()
	if err != nil {
		return fmt.Errorf("access connection pool: %w", err)
	}
	pool.SetMaxOpenConns(maxOpenConns)
	pool.SetMaxIdleConns(maxIdleConns)
	pool.SetConnMaxLifetime(connMaxLifetime)
	pool.SetConnMaxIdleTime(connMaxIdleTime)

	DB = db
	slog.Info("database connected", "host", cfg.DBHost, "database", cfg.DBName)
	return nil
}

// Migrate creates or updates every table the service owns.
func Migrate() error {
	return DB.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Report{},
		&models.SuspensionRecord{},
		&models.Conversation{},
		&models.Message{},
		&models.AssessmentQuestion{},
		&models.AssessmentResult{},
		&models.Notification{},
		&models.SystemLog{},
	)
}

func Ping() error {
	pool, err := DB.DB()
	if err != nil {
		return err
	}
	return pool.Ping()
}
