package rabbit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OutboxEvent is one pending domain event, written in the same
// transaction as the mutation it describes. Rows are flipped to
// processed by the relay and never deleted.
type OutboxEvent struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventType  string    `gorm:"size:50;not null"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null"`
	TeamID     uuid.UUID `gorm:"type:uuid;not null"`
	Message    string    `gorm:"size:512;not null"`
	Processed  bool      `gorm:"not null;default:false;index"`
	CreatedAt  time.Time
}

func (OutboxEvent) TableName() string { return "outbox" }

type OutboxRepository interface {
	WithTx(tx *gorm.DB) OutboxRepository
	// Create must run under the caller's transaction so the event and
	// the mutation commit or roll back together.
	Create(ctx context.Context, event OutboxEvent) error
	ListUnprocessed(ctx context.Context, limit int) ([]OutboxEvent, error)
	// MarkProcessed is idempotent: marking an already-processed row is a no-op.
	MarkProcessed(ctx context.Context, id uuid.UUID) error
}

type outboxRepository struct {
	db *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) WithTx(tx *gorm.DB) OutboxRepository {
	return &outboxRepository{db: tx}
}

func (r *outboxRepository) Create(ctx context.Context, event OutboxEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(&event).Error
}

func (r *outboxRepository) ListUnprocessed(ctx context.Context, limit int) ([]OutboxEvent, error) {
	var events []OutboxEvent
	err := r.db.WithContext(ctx).
		Where("processed = ?", false).
		Order("created_at ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

func (r *outboxRepository) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&OutboxEvent{}).
		Where("id = ?", id).
		Update("processed", true).Error
}
