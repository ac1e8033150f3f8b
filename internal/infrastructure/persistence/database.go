package persistence

import (
	"fmt"
	"time"

	"github.com/gestock/backend/internal/infrastructure/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database wraps the process-wide gorm connection. Repositories receive the
// inner *gorm.DB; the wrapper owns pool configuration and lifecycle.
type Database struct {
	DB *gorm.DB
}

// NewDatabaseWithLogger opens a Postgres connection with the given gorm
// logger and the pool limits from cfg, and verifies it with a ping before
// returning. Per-query transactions are disabled: multi-statement writes go
// through explicit transaction scopes instead.
func NewDatabaseWithLogger(cfg *config.DatabaseConfig, logger gormlogger.Interface) (*Database, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:                 logger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Database{DB: db}, nil
}

// Ping reports whether the connection is still alive. The health endpoint
// calls it per request.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("unwrap sql.DB: %w", err)
	}
	return sqlDB.Ping()
}

// Close releases the connection pool.
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("unwrap sql.DB: %w", err)
	}
	return sqlDB.Close()
}
