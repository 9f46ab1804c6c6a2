package messaging

import (
	"context"
	"log/slog"
	"time"

	"github.com/bitbank/ledger/internal/application/adapter"
	"github.com/bitbank/ledger/internal/domain/entity"
)

// OutboxWorker polls the outbox and publishes pending events.
type OutboxWorker struct {
	outbox       adapter.OutboxRepository
	publisher    adapter.EventPublisher
	clock        adapter.Clock
	pollInterval time.Duration
	batchSize    int
	claimTimeout time.Duration
}

// WorkerConfig holds configuration for the outbox worker.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
	// ClaimTimeout is how long an event may stay in publishing before it is retried.
	ClaimTimeout time.Duration
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 5 * time.Second,
		BatchSize:    50,
		ClaimTimeout: time.Minute,
	}
}

// NewOutboxWorker creates a new outbox worker.
func NewOutboxWorker(
	outbox adapter.OutboxRepository,
	publisher adapter.EventPublisher,
	clock adapter.Clock,
	config WorkerConfig,
) *OutboxWorker {
	defaults := DefaultWorkerConfig()
	if config.PollInterval <= 0 {
		config.PollInterval = defaults.PollInterval
	}
	if config.BatchSize <= 0 {
		config.BatchSize = defaults.BatchSize
	}
	if config.ClaimTimeout <= 0 {
		config.ClaimTimeout = defaults.ClaimTimeout
	}

	return &OutboxWorker{
		outbox:       outbox,
		publisher:    publisher,
		clock:        clock,
		pollInterval: config.PollInterval,
		batchSize:    config.BatchSize,
		claimTimeout: config.ClaimTimeout,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *OutboxWorker) Start(ctx context.Context) {
	slog.Info("Outbox worker started",
		"poll_interval", w.pollInterval,
		"batch_size", w.batchSize,
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.processBatch(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Outbox worker shutting down")
			return
		case <-ticker.C:
			w.processBatch(ctx)
		}
	}
}

// ProcessNow publishes every due event once.
func (w *OutboxWorker) ProcessNow(ctx context.Context) {
	w.processBatch(ctx)
}

func (w *OutboxWorker) processBatch(ctx context.Context) {
	now := w.clock.Now()

	// A worker that died mid-publish leaves its claim behind.
	if reset, err := w.outbox.ResetStalePublishing(ctx, now.Add(-w.claimTimeout)); err != nil {
		slog.Error("Failed to reset stale outbox claims", "error", err)
	} else if reset > 0 {
		slog.Warn("Reset stale outbox claims", "count", reset)
	}

	events, err := w.outbox.GetPendingEvents(ctx, now, w.batchSize)
	if err != nil {
		slog.Error("Failed to get pending outbox events", "error", err)
		return
	}

	if len(events) == 0 {
		return
	}

	slog.Debug("Publishing outbox batch", "count", len(events))

	for _, event := range events {
		select {
		case <-ctx.Done():
			return
		default:
			w.publish(ctx, event)
		}
	}
}

func (w *OutboxWorker) publish(ctx context.Context, event *entity.OutboxEvent) {
	logger := slog.With(
		"event_id", event.ID,
		"event_type", event.EventType,
		"aggregate_id", event.AggregateID,
	)

	event.MarkPublishing(w.clock.Now())
	if err := w.outbox.Update(ctx, event); err != nil {
		logger.Error("Failed to mark event as publishing", "error", err)
		return
	}

	if err := w.publisher.Publish(ctx, event.EventType, event.ID.String(), event.Payload); err != nil {
		logger.Error("Failed to publish event", "error", err)
		w.handleFailure(ctx, event, err)
		return
	}

	event.MarkPublished(w.clock.Now())
	if err := w.outbox.Update(ctx, event); err != nil {
		logger.Error("Failed to mark event as published", "error", err)
		return
	}

	logger.Info("Outbox event published")
}

func (w *OutboxWorker) handleFailure(ctx context.Context, event *entity.OutboxEvent, err error) {
	event.MarkFailed(err, w.clock.Now())

	if updateErr := w.outbox.Update(ctx, event); updateErr != nil {
		slog.Error("Failed to update event after failure",
			"event_id", event.ID,
			"error", updateErr,
		)
	}

	if event.Status == entity.OutboxStatusFailed {
		slog.Warn("Outbox event permanently failed",
			"event_id", event.ID,
			"attempts", event.Attempts,
			"last_error", event.LastError,
		)
	} else {
		slog.Info("Outbox event scheduled for retry",
			"event_id", event.ID,
			"attempts", event.Attempts,
			"scheduled_at", event.ScheduledAt,
		)
	}
}
