package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/bitbank/ledger/internal/application/adapter"
	"github.com/bitbank/ledger/internal/domain/entity"
	"github.com/bitbank/ledger/internal/integration/persistence/model"
)

// outboxRepository implements the adapter.OutboxRepository interface.
type outboxRepository struct {
	db *gorm.DB
}

// NewOutboxRepository creates a new outbox repository instance.
func NewOutboxRepository(db *gorm.DB) adapter.OutboxRepository {
	return &outboxRepository{
		db: db,
	}
}

// GetPendingEvents retrieves events due for publishing, oldest first.
func (r *outboxRepository) GetPendingEvents(ctx context.Context, now time.Time, limit int) ([]*entity.OutboxEvent, error) {
	var models []model.OutboxEventModel

	result := r.db.WithContext(ctx).
		Where("status = ?", string(entity.OutboxStatusPending)).
		Where("scheduled_at <= ?", now.UTC()).
		Order("scheduled_at ASC, id ASC").
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	events := make([]*entity.OutboxEvent, len(models))
	for i := range models {
		events[i] = models[i].ToEntity()
	}
	return events, nil
}

// Update saves changes to an outbox event.
func (r *outboxRepository) Update(ctx context.Context, event *entity.OutboxEvent) error {
	return r.db.WithContext(ctx).Save(model.OutboxEventFromEntity(event)).Error
}

// ResetStalePublishing puts events stuck in publishing back to pending.
func (r *outboxRepository) ResetStalePublishing(ctx context.Context, claimedBefore time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.OutboxEventModel{}).
		Where("status = ?", string(entity.OutboxStatusPublishing)).
		Where("scheduled_at < ?", claimedBefore.UTC()).
		Update("status", string(entity.OutboxStatusPending))
	return result.RowsAffected, result.Error
}
