package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nikile1123/hris-backend/internal/events"
	"github.com/nikile1123/hris-backend/internal/messaging/rabbit"
)

const (
	DefaultPollInterval = 10 * time.Second
	batchSize           = 50
)

// Relay drains the outbox into the broker on a fixed interval. A single
// goroutine runs the ticks, so two drains never overlap. Delivery is
// at-least-once: an event is marked processed only after its publish
// succeeded, and failed events are retried on the next tick.
type Relay struct {
	repo     rabbit.OutboxRepository
	pub      rabbit.Publisher
	logger   *zap.Logger
	interval time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

func NewRelay(
	repo rabbit.OutboxRepository,
	pub rabbit.Publisher,
	logger *zap.Logger,
	pollInterval time.Duration,
) *Relay {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &Relay{
		repo:     repo,
		pub:      pub,
		logger:   logger.Named("rabbit.producer.relay"),
		interval: pollInterval,
	}
}

// Start launches the polling loop.
func (r *Relay) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})

	go r.run(ctx)
}

// Stop lets the in-flight tick finish, then stops the timer. It blocks
// until the loop has exited.
func (r *Relay) Stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
}

func (r *Relay) run(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("outbox relay started", zap.Duration("poll_interval", r.interval))

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return
		case <-ticker.C:
			if err := r.Drain(ctx); err != nil {
				r.logger.Error("drain outbox failed", zap.Error(err))
			}
		}
	}
}

// Drain runs one relay tick: fetch unprocessed events and publish them
// sequentially to keep publish order deterministic within the batch. A
// failure for one event is logged and does not abort the rest; the row
// stays unprocessed and is retried on the next tick.
func (r *Relay) Drain(ctx context.Context) error {
	pending, err := r.repo.ListUnprocessed(ctx, batchSize)
	if err != nil {
		return err
	}

	if len(pending) == 0 {
		return nil
	}

	r.logger.Info("processing pending outbox events", zap.Int("count", len(pending)))

	for _, event := range pending {
		routingKey, err := events.RoutingKey(event.EventType, event.EmployeeID, event.TeamID)
		if err != nil {
			r.logger.Error("derive routing key failed",
				zap.String("outbox_id", event.ID.String()),
				zap.String("event_type", event.EventType),
				zap.Error(err),
			)
			continue
		}

		payload, err := json.Marshal(events.Notification{
			ID:               uuid.New(),
			EmployeeID:       event.EmployeeID,
			TeamID:           event.TeamID,
			NotificationType: event.EventType,
			Message:          event.Message,
			CreatedAt:        time.Now().UTC(),
		})
		if err != nil {
			r.logger.Error("marshal notification failed",
				zap.String("outbox_id", event.ID.String()),
				zap.Error(err),
			)
			continue
		}

		if err := r.pub.Publish(ctx, routingKey, payload); err != nil {
			r.logger.Error("publish outbox event failed",
				zap.String("outbox_id", event.ID.String()),
				zap.String("event_type", event.EventType),
				zap.String("routing_key", routingKey),
				zap.Error(err),
			)
			continue
		}

		if err := r.repo.MarkProcessed(ctx, event.ID); err != nil {
			r.logger.Error("mark outbox processed failed",
				zap.String("outbox_id", event.ID.String()),
				zap.Error(err),
			)
			continue
		}

		r.logger.Info("outbox event published",
			zap.String("outbox_id", event.ID.String()),
			zap.String("event_type", event.EventType),
			zap.String("routing_key", routingKey),
		)
	}

	return nil
}
