package rabbit_test

import (
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"

	"github.com/nikile1123/hris-backend/internal/messaging/rabbit"
)

type declaredExchange struct {
	name    string
	kind    string
	durable bool
}

type declaredQueue struct {
	name    string
	durable bool
	args    amqp.Table
}

type binding struct {
	queue    string
	key      string
	exchange string
}

type fakeDeclarer struct {
	exchanges []declaredExchange
	queues    []declaredQueue
	bindings  []binding

	exchangeErr error
	queueErr    error
	bindErr     error
}

func (f *fakeDeclarer) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	if f.exchangeErr != nil {
		return f.exchangeErr
	}
	f.exchanges = append(f.exchanges, declaredExchange{name: name, kind: kind, durable: durable})
	return nil
}

func (f *fakeDeclarer) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	if f.queueErr != nil {
		return amqp.Queue{}, f.queueErr
	}
	f.queues = append(f.queues, declaredQueue{name: name, durable: durable, args: args})
	return amqp.Queue{Name: name}, nil
}

func (f *fakeDeclarer) QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error {
	if f.bindErr != nil {
		return f.bindErr
	}
	f.bindings = append(f.bindings, binding{queue: name, key: key, exchange: exchange})
	return nil
}

func TestDeclareTopology(t *testing.T) {
	t.Run("declares topic exchange with durable queues", func(t *testing.T) {
		ch := &fakeDeclarer{}

		err := rabbit.DeclareTopology(ch)
		assert.NoError(t, err)

		assert.Contains(t, ch.exchanges, declaredExchange{name: rabbit.ExchangeName, kind: "topic", durable: true})
		assert.Contains(t, ch.exchanges, declaredExchange{name: rabbit.DeadLetterExchange, kind: "fanout", durable: true})

		names := make([]string, len(ch.queues))
		for i, q := range ch.queues {
			names[i] = q.name
			assert.True(t, q.durable, "queue %s must be durable", q.name)
		}
		assert.ElementsMatch(t, []string{rabbit.FailedQueue, rabbit.UIQueue, rabbit.EmailQueue}, names)
	})

	t.Run("notification queues dead-letter into the dlx", func(t *testing.T) {
		ch := &fakeDeclarer{}

		err := rabbit.DeclareTopology(ch)
		assert.NoError(t, err)

		for _, q := range ch.queues {
			if q.name == rabbit.FailedQueue {
				continue
			}
			assert.Equal(t, rabbit.DeadLetterExchange, q.args["x-dead-letter-exchange"])
		}
	})

	t.Run("every notification queue gets both bindings", func(t *testing.T) {
		ch := &fakeDeclarer{}

		err := rabbit.DeclareTopology(ch)
		assert.NoError(t, err)

		for _, queue := range rabbit.NotificationQueues {
			assert.Contains(t, ch.bindings, binding{queue: queue, key: "notification.employee.team.#", exchange: rabbit.ExchangeName})
			assert.Contains(t, ch.bindings, binding{queue: queue, key: "notification.review.employee.#", exchange: rabbit.ExchangeName})
		}
		assert.Contains(t, ch.bindings, binding{queue: rabbit.FailedQueue, key: "", exchange: rabbit.DeadLetterExchange})
	})

	t.Run("declaration errors propagate", func(t *testing.T) {
		boom := errors.New("channel closed")

		assert.ErrorIs(t, rabbit.DeclareTopology(&fakeDeclarer{exchangeErr: boom}), boom)
		assert.ErrorIs(t, rabbit.DeclareTopology(&fakeDeclarer{queueErr: boom}), boom)
		assert.ErrorIs(t, rabbit.DeclareTopology(&fakeDeclarer{bindErr: boom}), boom)
	})
}
