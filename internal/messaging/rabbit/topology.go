package rabbit

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeName       = "notifications_exchange"
	DeadLetterExchange = "notifications_dlx"

	UIQueue     = "ui_notifications"
	EmailQueue  = "email_notifications"
	FailedQueue = "failed_notifications"

	employeeBinding = "notification.employee.team.#"
	reviewBinding   = "notification.review.employee.#"
)

// NotificationQueues are the durable queues fed by the topic exchange,
// in declaration order.
var NotificationQueues = []string{UIQueue, EmailQueue}

// TopologyDeclarer is the slice of *amqp.Channel the topology needs.
type TopologyDeclarer interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
}

// DeclareTopology declares the exchange/queue/binding layout. All
// declarations are idempotent; it runs once at startup before any
// publish. Rejected deliveries dead-letter into failed_notifications.
func DeclareTopology(ch TopologyDeclarer) error {
	if err := ch.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", ExchangeName, err)
	}
	if err := ch.ExchangeDeclare(DeadLetterExchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", DeadLetterExchange, err)
	}

	if _, err := ch.QueueDeclare(FailedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", FailedQueue, err)
	}
	if err := ch.QueueBind(FailedQueue, "", DeadLetterExchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %s: %w", FailedQueue, err)
	}

	queueArgs := amqp.Table{"x-dead-letter-exchange": DeadLetterExchange}
	for _, queue := range NotificationQueues {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, queueArgs); err != nil {
			return fmt.Errorf("declare queue %s: %w", queue, err)
		}
		for _, binding := range []string{employeeBinding, reviewBinding} {
			if err := ch.QueueBind(queue, binding, ExchangeName, false, nil); err != nil {
				return fmt.Errorf("bind queue %s to %s: %w", queue, binding, err)
			}
		}
	}

	return nil
}
