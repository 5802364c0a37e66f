package app

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/nikile1123/hris-backend/internal/messaging/rabbit"
	"github.com/nikile1123/hris-backend/internal/messaging/rabbit/producer"
	"github.com/nikile1123/hris-backend/internal/shared/connection"
)

// RunWorker starts the outbox relay and blocks until SIGINT/SIGTERM.
// Shutdown waits for the in-flight tick to finish before returning.
func RunWorker() error {
	logger := zap.L().Named("worker")

	db, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		connectRetries,
	)
	if err != nil {
		return err
	}

	conn, err := connection.ConnectRabbitWithRetry(
		os.Getenv("RABBITMQ_HOST"),
		os.Getenv("RABBITMQ_PORT"),
		os.Getenv("RABBITMQ_DEFAULT_USER"),
		os.Getenv("RABBITMQ_DEFAULT_PASS"),
		connectRetries,
	)
	if err != nil {
		return err
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := rabbit.DeclareTopology(ch); err != nil {
		return err
	}

	relay := producer.NewRelay(
		rabbit.NewOutboxRepository(db),
		rabbit.NewPublisher(ch),
		logger,
		pollInterval(),
	)
	relay.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutdown signal received, stopping relay")
	relay.Stop()

	return nil
}

func pollInterval() time.Duration {
	raw := os.Getenv("OUTBOX_POLL_INTERVAL")
	if raw == "" {
		return producer.DefaultPollInterval
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		zap.L().Warn("invalid OUTBOX_POLL_INTERVAL, using default",
			zap.String("value", raw), zap.Error(err))
		return producer.DefaultPollInterval
	}
	return d
}
