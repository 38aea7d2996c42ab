package mysql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hireflow/internal/config"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN renders the go-sql-driver DSN for cfg. Times are parsed into time.Time in UTC.
func DSN(cfg config.DatabaseConfig) string {
	port := strings.TrimSpace(cfg.DBPort)
	if port == "" || port == "5432" {
		port = "3306"
	}
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC&timeout=%s",
		strings.TrimSpace(cfg.DBUser),
		cfg.DBPassword,
		strings.TrimSpace(cfg.DBHost),
		port,
		strings.TrimSpace(cfg.DBName),
		timeout,
	)
}

func Connect(ctx context.Context, cfg config.DatabaseConfig, debug bool, log *zap.Logger) (*gorm.DB, error) {
	if log == nil {
		log = zap.NewNop()
	}

	level := logger.Warn
	if debug {
		level = logger.Info
	}

	db, err := gorm.Open(mysql.Open(DSN(cfg)), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(level),
		PrepareStmt:                              true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("mysql sql.DB: %w", err)
	}
	if cfg.PoolMaxConns > 0 {
		sqlDB.SetMaxOpenConns(int(cfg.PoolMaxConns))
	}
	if cfg.PoolMinConns > 0 {
		sqlDB.SetMaxIdleConns(int(cfg.PoolMinConns))
	}
	if cfg.PoolMaxConnLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.PoolMaxConnLifetime)
	}
	if cfg.PoolMaxConnIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.PoolMaxConnIdleTime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	log.Info("db_connected",
		zap.String("driver", "mysql"),
		zap.String("host", cfg.DBHost),
		zap.String("database", cfg.DBName),
	)
	return db, nil
}
