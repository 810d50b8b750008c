package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/diogo-costa-silva/portfolio/config"
	"github.com/diogo-costa-silva/portfolio/errs"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// Open connects to the database selected by DB_TYPE. Postgres connections
// register DB_REPLICA_DSN as a read replica when it is set.
func Open(settings config.Settings) (*gorm.DB, error) {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
	gormConfig := &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	}

	var dialector gorm.Dialector
	switch settings.DBType {
	case "supa", "postgres":
		if settings.DSN == "" {
			return nil, errs.NewUnsupportedDBError(settings.DBType + " without DSN")
		}
		dialector = postgres.New(postgres.Config{
			DSN:                  settings.DSN,
			PreferSimpleProtocol: true,
		})
	case "sqlite":
		dialector = sqlite.Open(settings.SQLitePath)
	default:
		return nil, errs.NewUnsupportedDBError(settings.DBType)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", settings.DBType, err)
	}

	if settings.ReplicaDSN != "" && settings.DBType != "sqlite" {
		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.Open(settings.ReplicaDSN)},
			Policy:   dbresolver.RandomPolicy{},
		})
		if err := db.Use(resolver); err != nil {
			return nil, fmt.Errorf("register read replica: %w", err)
		}
	}

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("test connection: %w", err)
	}

	return db, nil
}
