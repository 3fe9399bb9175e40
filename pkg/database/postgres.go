package database

import (
	"context"
	"fmt"
	"time"

	"vidshare/pkg/config"
	"vidshare/pkg/logger"

	"github.com/cenkalti/backoff/v4"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const initialConnectBackoff = 2 * time.Second

func DSN(cfg *config.Config) string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
	)
}

// NewPostgresDB opens the database, retrying with a doubling delay (2s, 4s, ...)
// capped at cfg.DBConnectMaxBackoff until it connects or ctx is done.
func NewPostgresDB(ctx context.Context, cfg *config.Config, log *logger.Logger) (*gorm.DB, error) {
	var db *gorm.DB
	connect := func() error {
		conn, err := gorm.Open(postgres.Open(DSN(cfg)), &gorm.Config{
			Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
			TranslateError: true,
		})
		if err != nil {
			return err
		}
		db = conn
		return nil
	}

	err := backoff.RetryNotify(connect, connectBackoff(ctx, cfg.DBConnectMaxBackoff), func(err error, next time.Duration) {
		log.Error("Database connection error: %v", err)
		log.Info("Retrying database connection in %ds...", int(next.Round(time.Second)/time.Second))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Info("Connected to database at %s:%s", cfg.DBHost, cfg.DBPort)
	return db, nil
}

func connectBackoff(ctx context.Context, maxInterval time.Duration) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initialConnectBackoff
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = maxInterval
	b.MaxElapsedTime = 0
	b.Reset()
	return backoff.WithContext(b, ctx)
}

// Ping reports whether the database answers within the context deadline.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
