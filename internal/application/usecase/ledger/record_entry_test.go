package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bitbank/ledger/internal/application/adapter"
	"github.com/bitbank/ledger/internal/application/usecase/member"
	"github.com/bitbank/ledger/internal/application/usecase/statistics"
	"github.com/bitbank/ledger/internal/domain/entity"
	domainerror "github.com/bitbank/ledger/internal/domain/error"
	"github.com/bitbank/ledger/internal/domain/valueobject"
)

type recordingLedgerRepository struct {
	entries []*entity.LedgerEntry
	events  []*entity.OutboxEvent
	err     error
}

func (r *recordingLedgerRepository) Create(ctx context.Context, entry *entity.LedgerEntry, events ...*entity.OutboxEvent) error {
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, entry)
	r.events = append(r.events, events...)
	return nil
}

func (r *recordingLedgerRepository) FindByMember(
	ctx context.Context,
	memberID int64,
	kind entity.EntryKind,
	predicates ...valueobject.Predicate,
) ([]*entity.LedgerEntry, error) {
	return nil, nil
}

type members map[int64]bool

func (m members) FindByID(ctx context.Context, id int64) (*entity.Member, error) {
	return &entity.Member{ID: id}, nil
}

func (m members) ExistsActive(ctx context.Context, id int64) (bool, error) {
	return m[id], nil
}

type invalidatingCache struct {
	invalidated []statistics.CacheKey
	err         error
}

func (c *invalidatingCache) Get(ctx context.Context, key statistics.CacheKey) (*statistics.Statistics, bool, error) {
	return nil, false, nil
}

func (c *invalidatingCache) Set(ctx context.Context, key statistics.CacheKey, stats *statistics.Statistics) error {
	return nil
}

func (c *invalidatingCache) Invalidate(ctx context.Context, key statistics.CacheKey) error {
	c.invalidated = append(c.invalidated, key)
	return c.err
}

var now = time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)

func newRecordUseCase(repo adapter.LedgerRepository, cache statistics.StatisticsCache) *RecordEntryUseCase {
	return NewRecordEntryUseCase(
		repo,
		member.NewCheckMemberUseCase(members{1: true}),
		cache,
		adapter.ClockFunc(func() time.Time { return now }),
	)
}

func validInput() RecordEntryInput {
	return RecordEntryInput{
		MemberID:    1,
		Kind:        "expenditure",
		Amount:      decimal.NewFromInt(4500),
		OccurredAt:  "2026-09-03T12:15:00+09:00",
		Description: "Lunch",
		Category:    "food",
	}
}

func TestRecordEntry_Success(t *testing.T) {
	repo := &recordingLedgerRepository{}
	cache := &invalidatingCache{}

	out, err := newRecordUseCase(repo, cache).Execute(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry := out.Entry
	if entry.Kind != entity.KindExpenditure || entry.Category != entity.ExpenditureFood {
		t.Errorf("unexpected kind/category %s/%s", entry.Kind, entry.Category)
	}
	if want := time.Date(2026, 9, 3, 3, 15, 0, 0, time.UTC); !entry.OccurredAt.Equal(want) {
		t.Errorf("expected occurred_at %s, got %s", want, entry.OccurredAt)
	}
	if !entry.CreatedAt.Equal(now) {
		t.Errorf("expected created_at from clock, got %s", entry.CreatedAt)
	}

	if len(repo.entries) != 1 || len(repo.events) != 1 {
		t.Fatalf("expected one entry and one event, got %d and %d", len(repo.entries), len(repo.events))
	}
	event := repo.events[0]
	if event.EventType != entity.EventTypeEntryRecorded || event.AggregateID != entry.ID {
		t.Errorf("unexpected event %+v", event)
	}
	var payload EntryRecordedEvent
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if payload.EntryID != entry.ID || !payload.Amount.Equal(decimal.NewFromInt(4500)) {
		t.Errorf("unexpected payload %+v", payload)
	}

	wantKey := statistics.CacheKey{MemberID: 1, Kind: entity.KindExpenditure, Year: 2026, Month: 9}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != wantKey {
		t.Errorf("expected invalidation of %+v, got %+v", wantKey, cache.invalidated)
	}
}

func TestRecordEntry_DateOnly(t *testing.T) {
	input := validInput()
	input.OccurredAt = "2026-01-31"

	out, err := newRecordUseCase(&recordingLedgerRepository{}, nil).Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC); !out.Entry.OccurredAt.Equal(want) {
		t.Errorf("expected %s, got %s", want, out.Entry.OccurredAt)
	}
}

func TestRecordEntry_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*RecordEntryInput)
		want   error
	}{
		{name: "unknown kind", modify: func(in *RecordEntryInput) { in.Kind = "refund" }, want: domainerror.ErrInvalidKind},
		{name: "category of another kind", modify: func(in *RecordEntryInput) { in.Category = "SALARY" }, want: domainerror.ErrInvalidCategory},
		{name: "negative amount", modify: func(in *RecordEntryInput) { in.Amount = decimal.NewFromInt(-1) }, want: domainerror.ErrInvalidAmount},
		{name: "fractional amount", modify: func(in *RecordEntryInput) { in.Amount = decimal.RequireFromString("10.5") }, want: domainerror.ErrInvalidAmount},
		{name: "missing occurred_at", modify: func(in *RecordEntryInput) { in.OccurredAt = " " }, want: domainerror.ErrMissingOccurredAt},
		{name: "bad occurred_at", modify: func(in *RecordEntryInput) { in.OccurredAt = "03/09/2026" }, want: domainerror.ErrInvalidDateFormat},
		{name: "long description", modify: func(in *RecordEntryInput) { in.Description = strings.Repeat("x", 256) }, want: domainerror.ErrDescriptionTooLong},
		{name: "long multibyte description", modify: func(in *RecordEntryInput) { in.Description = strings.Repeat("가", 256) }, want: domainerror.ErrDescriptionTooLong},
		{name: "unknown member", modify: func(in *RecordEntryInput) { in.MemberID = 2 }, want: domainerror.ErrMemberNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &recordingLedgerRepository{}
			input := validInput()
			tt.modify(&input)

			_, err := newRecordUseCase(repo, nil).Execute(context.Background(), input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if len(repo.entries) != 0 {
				t.Error("expected nothing to be persisted")
			}
		})
	}
}

func TestRecordEntry_InvalidCategoryListsAllowed(t *testing.T) {
	tests := []struct {
		name     string
		kind     string
		category string
	}{
		{name: "income", kind: "income", category: "FOOD"},
		{name: "expenditure", kind: "expenditure", category: "SALARY"},
		{name: "transfer", kind: "transfer", category: "BONUS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			input.Kind = tt.kind
			input.Category = tt.category

			_, err := newRecordUseCase(&recordingLedgerRepository{}, nil).Execute(context.Background(), input)

			var validationErr *domainerror.ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			for _, c := range entity.EntryKind(tt.kind).Categories() {
				if !strings.Contains(validationErr.Message, string(c)) {
					t.Errorf("message %q does not list %s", validationErr.Message, c)
				}
			}
		})
	}
}

func TestRecordEntry_ZeroAmountAllowed(t *testing.T) {
	input := validInput()
	input.Amount = decimal.Zero

	if _, err := newRecordUseCase(&recordingLedgerRepository{}, nil).Execute(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRecordEntry_MultibyteDescriptionAtLimit(t *testing.T) {
	input := validInput()
	input.Description = strings.Repeat("가", MaxDescriptionLength)

	out, err := newRecordUseCase(&recordingLedgerRepository{}, nil).Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Entry.Description != input.Description {
		t.Error("expected the description to be kept as given")
	}
}

func TestRecordEntry_LargeAmountKeepsPrecision(t *testing.T) {
	input := validInput()
	input.Amount = decimal.RequireFromString("123456789012345678901234567890")

	repo := &recordingLedgerRepository{}
	if _, err := newRecordUseCase(repo, nil).Execute(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("expected one persisted entry, got %d", len(repo.entries))
	}
	if got := repo.entries[0].Amount.String(); got != "123456789012345678901234567890" {
		t.Errorf("amount = %s", got)
	}
}

func TestRecordEntry_Failures(t *testing.T) {
	t.Run("store failure", func(t *testing.T) {
		cache := &invalidatingCache{}
		repo := &recordingLedgerRepository{err: errors.New("deadlock")}

		_, err := newRecordUseCase(repo, cache).Execute(context.Background(), validInput())
		if !errors.Is(err, domainerror.ErrStoreUnavailable) {
			t.Fatalf("expected store error, got %v", err)
		}
		if len(cache.invalidated) != 0 {
			t.Error("expected no cache invalidation after failed write")
		}
	})

	t.Run("cache failure does not fail the write", func(t *testing.T) {
		cache := &invalidatingCache{err: errors.New("redis down")}

		if _, err := newRecordUseCase(&recordingLedgerRepository{}, cache).Execute(context.Background(), validInput()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
