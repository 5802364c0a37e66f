package rabbit

import (
	"context"
	"fmt"
	"net/http"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/nikile1123/hris-backend/internal/shared/apperror"
)

// publishChannel is the slice of *amqp.Channel the publisher needs.
type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload []byte) error
}

type publisher struct {
	ch publishChannel
}

func NewPublisher(ch publishChannel) Publisher {
	return &publisher{ch: ch}
}

// Publish is fire-and-forget against the topic exchange. Transport
// errors surface to the caller as a retryable failure, never swallowed.
func (p *publisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	err := p.ch.PublishWithContext(ctx, ExchangeName, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         payload,
	})
	if err != nil {
		return apperror.Wrap(
			err,
			apperror.CodeServiceUnavailable,
			fmt.Sprintf("publish to %s failed", ExchangeName),
			http.StatusServiceUnavailable,
		)
	}
	return nil
}
