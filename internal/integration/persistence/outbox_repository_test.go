package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bitbank/ledger/internal/domain/entity"
)

func TestOutboxRepository(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerRepository(db)
	repo := NewOutboxRepository(db)
	ctx := context.Background()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	due := entity.NewOutboxEvent(entity.EventTypeEntryRecorded, uuid.New(), []byte(`{"n":1}`), now.Add(-time.Minute))
	later := entity.NewOutboxEvent(entity.EventTypeEntryRecorded, uuid.New(), []byte(`{"n":2}`), now.Add(time.Hour))
	entry := entity.NewLedgerEntry(1, entity.KindIncome, decimalOne(), now, "x", entity.CategoryEtc, "", "", now)
	if err := ledger.Create(ctx, entry, due, later); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	pending, err := repo.GetPendingEvents(ctx, now, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != due.ID {
		t.Fatalf("expected only the due event, got %+v", pending)
	}
	if string(pending[0].Payload) != `{"n":1}` {
		t.Errorf("unexpected payload %s", pending[0].Payload)
	}

	pending[0].MarkPublishing(now)
	pending[0].MarkPublished(now)
	if err := repo.Update(ctx, pending[0]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pending, err = repo.GetPendingEvents(ctx, now.Add(2*time.Hour), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != later.ID {
		t.Fatalf("expected only the later event, got %+v", pending)
	}

	pending[0].MarkFailed(errors.New("broker down"), now.Add(2*time.Hour))
	if err := repo.Update(ctx, pending[0]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	retry, err := repo.GetPendingEvents(ctx, now.Add(2*time.Hour), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(retry) != 1 || retry[0].Attempts != 1 || retry[0].LastError != "broker down" {
		t.Errorf("expected first retry to be immediately due, got %+v", retry)
	}
}

func TestOutboxRepository_ResetStalePublishing(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedgerRepository(db)
	repo := NewOutboxRepository(db)
	ctx := context.Background()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	stale := entity.NewOutboxEvent(entity.EventTypeEntryRecorded, uuid.New(), []byte(`{"n":1}`), now.Add(-time.Hour))
	fresh := entity.NewOutboxEvent(entity.EventTypeEntryRecorded, uuid.New(), []byte(`{"n":2}`), now.Add(-time.Hour))
	published := entity.NewOutboxEvent(entity.EventTypeEntryRecorded, uuid.New(), []byte(`{"n":3}`), now.Add(-time.Hour))
	entry := entity.NewLedgerEntry(1, entity.KindIncome, decimalOne(), now, "x", entity.CategoryEtc, "", "", now)
	if err := ledger.Create(ctx, entry, stale, fresh, published); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	stale.MarkPublishing(now.Add(-10 * time.Minute))
	fresh.MarkPublishing(now.Add(-10 * time.Second))
	published.MarkPublishing(now.Add(-10 * time.Minute))
	published.MarkPublished(now.Add(-9 * time.Minute))
	for _, e := range []*entity.OutboxEvent{stale, fresh, published} {
		if err := repo.Update(ctx, e); err != nil {
			t.Fatalf("failed to update: %v", err)
		}
	}

	tests := []struct {
		name          string
		claimedBefore time.Time
		wantReset     int64
		wantPending   []uuid.UUID
	}{
		{name: "only the stale claim is reset", claimedBefore: now.Add(-time.Minute), wantReset: 1, wantPending: []uuid.UUID{stale.ID}},
		{name: "nothing left to reset", claimedBefore: now.Add(-time.Minute), wantReset: 0, wantPending: []uuid.UUID{stale.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := repo.ResetStalePublishing(ctx, tt.claimedBefore)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if n != tt.wantReset {
				t.Errorf("expected %d reset, got %d", tt.wantReset, n)
			}

			pending, err := repo.GetPendingEvents(ctx, now, 10)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(pending) != len(tt.wantPending) {
				t.Fatalf("expected %d pending, got %+v", len(tt.wantPending), pending)
			}
			for i, id := range tt.wantPending {
				if pending[i].ID != id || pending[i].Attempts != 0 {
					t.Errorf("[%d] expected %s with no attempts, got %s/%d", i, id, pending[i].ID, pending[i].Attempts)
				}
			}
		})
	}
}

func decimalOne() decimal.Decimal {
	return decimal.NewFromInt(1)
}
