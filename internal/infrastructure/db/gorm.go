package db

import (
	"fmt"
	"time"

	"crediasesor-backoffice/internal/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open picks the dialector for cfg.DBDriver.
func Open(cfg *config.Config, lvl logger.LogLevel) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		return OpenSQLite(cfg.SQLitePath, lvl)
	case config.DriverMySQL:
		return OpenGorm(cfg.MySQLDSN(), lvl)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DBDriver)
	}
}

func OpenGorm(dsn string, lvl logger.LogLevel) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn), lvl)
}

// OpenSQLite is used for local runs; a single connection avoids SQLITE_BUSY on writes.
func OpenSQLite(path string, lvl logger.LogLevel) (*gorm.DB, error) {
	gdb, err := OpenGormWithDialector(sqlite.Open(path), lvl)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	gdb.DisableForeignKeyConstraintWhenMigrating = true
	return gdb, nil
}

func OpenGormWithDialector(dial gorm.Dialector, lvl logger.LogLevel) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:               logger.Default.LogMode(lvl),
		DisableAutomaticPing: true,
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}
