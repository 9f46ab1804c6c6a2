package adapter

import (
	"context"
	"time"

	"github.com/bitbank/ledger/internal/domain/entity"
)

// OutboxRepository defines the interface for outbox event persistence operations.
type OutboxRepository interface {
	// GetPendingEvents retrieves events due for publishing, ordered by scheduled_at.
	GetPendingEvents(ctx context.Context, now time.Time, limit int) ([]*entity.OutboxEvent, error)

	// Update saves changes to an outbox event.
	Update(ctx context.Context, event *entity.OutboxEvent) error

	// ResetStalePublishing returns events claimed for publishing before claimedBefore
	// to pending so they are picked up again. It returns the number of events reset.
	ResetStalePublishing(ctx context.Context, claimedBefore time.Time) (int64, error)
}

// EventPublisher delivers serialized domain events to the message broker.
type EventPublisher interface {
	// Publish sends one message with the given routing key.
	Publish(ctx context.Context, routingKey string, messageID string, body []byte) error
}
