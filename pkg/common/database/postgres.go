package database

import (
	"fmt"
	"sync"
	"time"

	"github.com/Radpid/radGPT/pkg/common/config"
	"github.com/Radpid/radGPT/pkg/common/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	db     *gorm.DB
	dbOnce sync.Once
)

// GetPostgres returns the shared gorm handle, opening it on first use.
func GetPostgres() (*gorm.DB, error) {
	var err error
	dbOnce.Do(func() {
		cfg := config.Load()
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			cfg.PostgresHost,
			cfg.PostgresUser,
			cfg.PostgresPassword,
			cfg.PostgresDB,
			cfg.PostgresPort,
			cfg.PostgresSSLMode,
		)

		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			logger.Log.WithError(err).Error("failed to connect to postgres")
			return
		}

		sqlDB, poolErr := db.DB()
		if poolErr != nil {
			err = poolErr
			return
		}
		sqlDB.SetMaxOpenConns(cfg.PostgresMaxOpen)
		sqlDB.SetMaxIdleConns(cfg.PostgresMaxIdle)
		sqlDB.SetConnMaxLifetime(time.Hour)

		logger.Log.WithField("database", cfg.PostgresDB).Info("connected to postgres")
	})

	return db, err
}

func ClosePostgres() error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
