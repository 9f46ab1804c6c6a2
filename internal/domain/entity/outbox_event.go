package entity

import (
	"time"

	"github.com/google/uuid"
)

// OutboxStatus represents the publishing status of an outbox event.
type OutboxStatus string

const (
	OutboxStatusPending    OutboxStatus = "pending"
	OutboxStatusPublishing OutboxStatus = "publishing"
	OutboxStatusPublished  OutboxStatus = "published"
	OutboxStatusFailed     OutboxStatus = "failed"
)

// EventTypeEntryRecorded is emitted once a ledger entry is persisted.
const EventTypeEntryRecorded = "ledger.entry.recorded"

// DefaultMaxAttempts allows one publish plus a retry for every entry in retryDelays.
const DefaultMaxAttempts = 4

// OutboxEvent is a domain event stored alongside the change that produced it,
// waiting to be published to the message broker.
type OutboxEvent struct {
	ID          uuid.UUID
	EventType   string
	AggregateID uuid.UUID
	Payload     []byte
	Status      OutboxStatus
	Attempts    int
	MaxAttempts int
	LastError   string
	CreatedAt   time.Time
	// ScheduledAt is the next attempt time, or the claim time while publishing.
	ScheduledAt time.Time
	PublishedAt *time.Time
}

// NewOutboxEvent creates a pending OutboxEvent.
func NewOutboxEvent(eventType string, aggregateID uuid.UUID, payload []byte, now time.Time) *OutboxEvent {
	now = now.UTC()
	return &OutboxEvent{
		ID:          uuid.Must(uuid.NewV7()),
		EventType:   eventType,
		AggregateID: aggregateID,
		Payload:     payload,
		Status:      OutboxStatusPending,
		MaxAttempts: DefaultMaxAttempts,
		CreatedAt:   now,
		ScheduledAt: now,
	}
}

// MarkPublishing marks the event as being handed to the broker at now.
func (e *OutboxEvent) MarkPublishing(now time.Time) {
	e.Status = OutboxStatusPublishing
	e.ScheduledAt = now.UTC()
}

// MarkPublished marks the event as delivered to the broker.
func (e *OutboxEvent) MarkPublished(now time.Time) {
	e.Status = OutboxStatusPublished
	publishedAt := now.UTC()
	e.PublishedAt = &publishedAt
}

// MarkFailed records a failed publish and schedules a retry if attempts remain.
func (e *OutboxEvent) MarkFailed(err error, now time.Time) {
	e.Attempts++
	e.LastError = err.Error()

	if e.Attempts >= e.MaxAttempts {
		e.Status = OutboxStatusFailed
		return
	}

	e.Status = OutboxStatusPending
	e.ScheduledAt = e.nextRetry(now)
}

// retryDelays is indexed by the number of failed attempts minus one.
var retryDelays = []time.Duration{0, 1 * time.Minute, 5 * time.Minute}

// nextRetry returns the next attempt time.
func (e *OutboxEvent) nextRetry(now time.Time) time.Time {
	if e.Attempts >= 1 && e.Attempts <= len(retryDelays) {
		return now.UTC().Add(retryDelays[e.Attempts-1])
	}
	return now.UTC().Add(retryDelays[len(retryDelays)-1])
}
