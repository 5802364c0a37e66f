package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/nikile1123/hris-backend/internal/messaging/rabbit"
	"github.com/nikile1123/hris-backend/internal/messaging/rabbit/consumer"
	"github.com/nikile1123/hris-backend/internal/shared/connection"
)

// RunConsumer attaches one consumer per notification queue and blocks
// until SIGINT/SIGTERM.
func RunConsumer() error {
	logger := zap.L().Named("consumer")

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

	setupCh, err := conn.Channel()
	if err != nil {
		return err
	}
	if err := rabbit.DeclareTopology(setupCh); err != nil {
		setupCh.Close()
		return err
	}
	setupCh.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// One channel per queue so a failure on one does not stall the other.
	for _, queue := range rabbit.NotificationQueues {
		ch, err := conn.Channel()
		if err != nil {
			return err
		}
		defer ch.Close()

		go func(queue string) {
			if err := consumer.Consume(ctx, ch, queue, consumer.LogNotification(logger), logger); err != nil {
				logger.Error("consumer exited", zap.String("queue", queue), zap.Error(err))
			}
		}(queue)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutdown signal received, stopping consumers")
	cancel()

	return nil
}
