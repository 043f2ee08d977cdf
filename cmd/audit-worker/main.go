package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Radpid/radGPT/pkg/audit"
	"github.com/Radpid/radGPT/pkg/common/config"
	"github.com/Radpid/radGPT/pkg/common/database"
	"github.com/Radpid/radGPT/pkg/common/kafka"
	"github.com/Radpid/radGPT/pkg/common/logger"
	"github.com/Radpid/radGPT/pkg/common/models"
)

func main() {
	logger.Init()
	cfg := config.Load()

	db, err := database.GetPostgres()
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to connect to postgres")
	}

	repo := audit.NewRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		logger.Log.WithError(err).Fatal("failed to migrate audit tables")
	}

	consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.AuditTopic, cfg.KafkaGroupID)
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Log.Info("Shutting down audit worker...")
		cancel()
	}()

	logger.Log.WithField("topic", cfg.AuditTopic).Info("Audit worker consuming")
	err = consumer.Consume(ctx, func(ctx context.Context, event models.Event) error {
		return repo.Record(ctx, event)
	})
	if err != nil && ctx.Err() == nil {
		logger.Log.WithError(err).Error("consumer stopped")
	}

	if err := consumer.Close(); err != nil {
		logger.Log.WithError(err).Error("failed to close consumer")
	}
	if err := database.ClosePostgres(); err != nil {
		logger.Log.WithError(err).Error("failed to close postgres")
	}
	logger.Log.Info("Audit worker stopped")
}
