package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"printpay/config"
)

var errNoDSN = errors.New("sqlstore: DATABASE_DSN is empty")

// Open connects to MySQL, checks the connection within ctx and makes sure the
// documents table exists. Writes are single-row upserts, so gorm's implicit
// transaction per statement is turned off.
func Open(ctx context.Context, cfg *config.DatabaseConfig) (*Store, error) {
	if cfg.DSN == "" {
		return nil, errNoDSN
	}
	db, err := gorm.Open(mysql.New(mysql.Config{DSN: cfg.DSN}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("sqlstore: ping: %w", err)
	}
	if err := db.WithContext(ctx).AutoMigrate(&document{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("sqlstore: migrate %s: %w", document{}.TableName(), err)
	}
	return New(db), nil
}
