package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"loan-ledger/internal/config"
)

type options struct {
	logLevel logger.LogLevel
}

type Option func(*options)

// WithLogLevel sets gorm's SQL logger level (default Warn).
func WithLogLevel(l logger.LogLevel) Option { return func(o *options) { o.logLevel = l } }

// Open connects to the store selected by cfg.DBDriver.
func Open(cfg *config.Config, opts ...Option) (*gorm.DB, error) {
	if cfg.Development() {
		opts = append([]Option{WithLogLevel(logger.Info)}, opts...)
	}
	switch cfg.DBDriver {
	case config.DriverSQLite:
		return OpenSQLite(cfg.SQLitePath, opts...)
	default:
		return OpenGorm(cfg.MySQLDSN(), opts...)
	}
}

func OpenGorm(dsn string, opts ...Option) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn), opts...)
}

// SQLiteDSN turns a file path into a DSN whose transactions take the write
// lock up front; SQLite has no row locks, so writers serialize instead.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("%s?_busy_timeout=5000&_txlock=immediate&_foreign_keys=on", path)
}

func OpenSQLite(path string, opts ...Option) (*gorm.DB, error) {
	return OpenGormWithDialector(sqlite.Open(SQLiteDSN(path)), opts...)
}

func OpenGormWithDialector(dial gorm.Dialector, opts ...Option) (*gorm.DB, error) {
	o := options{logLevel: logger.Warn}
	for _, fn := range opts {
		fn(&o)
	}
	cfg := &gorm.Config{
		Logger:               logger.Default.LogMode(o.logLevel),
		TranslateError:       true,
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}
