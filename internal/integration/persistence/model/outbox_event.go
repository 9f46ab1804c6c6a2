package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/bitbank/ledger/internal/domain/entity"
)

// OutboxEventModel represents the outbox_events table in the database.
type OutboxEventModel struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey"`
	EventType   string       `gorm:"type:varchar(64);not null"`
	AggregateID uuid.UUID    `gorm:"type:uuid;not null;index"`
	Payload     string       `gorm:"type:jsonb;not null"`
	Status      string       `gorm:"type:varchar(20);not null;default:'pending';index:idx_outbox_events_status_scheduled,priority:1"`
	Attempts    int          `gorm:"not null;default:0"`
	MaxAttempts int          `gorm:"not null;default:4"`
	LastError   string       `gorm:"type:text"`
	CreatedAt   time.Time    `gorm:"not null"`
	ScheduledAt time.Time    `gorm:"not null;index:idx_outbox_events_status_scheduled,priority:2"`
	PublishedAt *time.Time
}

// TableName returns the table name for the OutboxEventModel.
func (OutboxEventModel) TableName() string {
	return "outbox_events"
}

// ToEntity converts an OutboxEventModel to a domain OutboxEvent entity.
func (m *OutboxEventModel) ToEntity() *entity.OutboxEvent {
	var publishedAt *time.Time
	if m.PublishedAt != nil {
		t := m.PublishedAt.UTC()
		publishedAt = &t
	}

	return &entity.OutboxEvent{
		ID:          m.ID,
		EventType:   m.EventType,
		AggregateID: m.AggregateID,
		Payload:     []byte(m.Payload),
		Status:      entity.OutboxStatus(m.Status),
		Attempts:    m.Attempts,
		MaxAttempts: m.MaxAttempts,
		LastError:   m.LastError,
		CreatedAt:   m.CreatedAt.UTC(),
		ScheduledAt: m.ScheduledAt.UTC(),
		PublishedAt: publishedAt,
	}
}

// OutboxEventFromEntity creates an OutboxEventModel from a domain OutboxEvent entity.
func OutboxEventFromEntity(e *entity.OutboxEvent) *OutboxEventModel {
	var publishedAt *time.Time
	if e.PublishedAt != nil {
		t := e.PublishedAt.UTC()
		publishedAt = &t
	}

	return &OutboxEventModel{
		ID:          e.ID,
		EventType:   e.EventType,
		AggregateID: e.AggregateID,
		Payload:     string(e.Payload),
		Status:      string(e.Status),
		Attempts:    e.Attempts,
		MaxAttempts: e.MaxAttempts,
		LastError:   e.LastError,
		CreatedAt:   e.CreatedAt.UTC(),
		ScheduledAt: e.ScheduledAt.UTC(),
		PublishedAt: publishedAt,
	}
}
