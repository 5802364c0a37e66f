package consumer

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/nikile1123/hris-backend/internal/events"
)

// Handler processes one delivered notification body.
type Handler func(ctx context.Context, body []byte) error

// consumeChannel is the slice of *amqp.Channel the consumer needs.
type consumeChannel interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// Consume reads deliveries from one queue with manual acknowledgment.
// The handler runs first; only a successful handler acks. A failed
// delivery is requeued once, then rejected to the dead-letter exchange.
func Consume(
	ctx context.Context,
	ch consumeChannel,
	queue string,
	handle Handler,
	logger *zap.Logger,
) error {
	log := logger.Named("rabbit.consumer").With(zap.String("queue", queue))

	deliveries, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	log.Info("queue consumer started")

	for {
		select {
		case <-ctx.Done():
			log.Info("queue consumer stopped")
			return nil
		case d, ok := <-deliveries:
			if !ok {
				log.Warn("delivery channel closed")
				return nil
			}

			if err := handle(ctx, d.Body); err != nil {
				requeue := !d.Redelivered
				log.Error("handle notification failed",
					zap.String("routing_key", d.RoutingKey),
					zap.Bool("requeue", requeue),
					zap.Error(err),
				)
				if nackErr := d.Nack(false, requeue); nackErr != nil {
					log.Error("nack failed", zap.Error(nackErr))
				}
				continue
			}

			if err := d.Ack(false); err != nil {
				log.Error("ack failed", zap.Error(err))
			}
		}
	}
}

// LogNotification is the base handler: decode the payload and log it.
// A payload that does not decode is an error so it ends up dead-lettered
// instead of silently acked.
func LogNotification(logger *zap.Logger) Handler {
	log := logger.Named("rabbit.consumer.notification")

	return func(_ context.Context, body []byte) error {
		var n events.Notification
		if err := json.Unmarshal(body, &n); err != nil {
			return err
		}

		log.Info("notification received",
			zap.String("notification_id", n.ID.String()),
			zap.String("notification_type", n.NotificationType),
			zap.String("employee_id", n.EmployeeID.String()),
			zap.String("team_id", n.TeamID.String()),
			zap.String("message", n.Message),
		)
		return nil
	}
}
