package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bitbank/ledger/internal/domain/entity"
	"github.com/bitbank/ledger/internal/domain/valueobject"
	"github.com/bitbank/ledger/internal/integration/persistence/model"
)

var created = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func seedEntry(t *testing.T, repo interface {
	Create(context.Context, *entity.LedgerEntry, ...*entity.OutboxEvent) error
}, memberID int64, kind entity.EntryKind, amount int64, at time.Time, description string, category entity.Category) *entity.LedgerEntry {
	t.Helper()
	entry := entity.NewLedgerEntry(memberID, kind, decimal.NewFromInt(amount), at, description, category, "", "", created)
	if err := repo.Create(context.Background(), entry); err != nil {
		t.Fatalf("failed to seed entry: %v", err)
	}
	return entry
}

func TestLedgerRepository_FindByMemberVariants(t *testing.T) {
	db := newTestDB(t)
	repo := NewLedgerRepository(db)

	at := func(day, hour int) time.Time { return time.Date(2024, 1, day, hour, 30, 0, 0, time.UTC) }
	coffeeJan := seedEntry(t, repo, 1, entity.KindExpenditure, 450, at(5, 8), "Morning COFFEE", entity.ExpenditureFood)
	rentJan := seedEntry(t, repo, 1, entity.KindExpenditure, 90000, at(31, 23), "rent", entity.ExpenditureHousing)
	coffeeFeb := seedEntry(t, repo, 1, entity.KindExpenditure, 500, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), "coffee beans", entity.ExpenditureShopping)
	busDec := seedEntry(t, repo, 1, entity.KindExpenditure, 120, time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC), "bus", entity.ExpenditureTransportation)
	seedEntry(t, repo, 2, entity.KindExpenditure, 999, at(5, 9), "coffee", entity.ExpenditureFood)
	seedEntry(t, repo, 1, entity.KindIncome, 5000, at(10, 9), "coffee shop refund", entity.CategoryEtc)

	keyword := valueobject.KeywordPredicate{Pattern: valueobject.WrapKeyword("coffee")}
	january := valueobject.DateRangePredicate{Range: valueobject.DateRange{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}}
	food := valueobject.CategoryPredicate{Categories: []entity.Category{entity.ExpenditureFood, entity.ExpenditureShopping}}

	tests := []struct {
		name       string
		predicates []valueobject.Predicate
		want       []*entity.LedgerEntry
	}{
		{name: "1 none", want: []*entity.LedgerEntry{coffeeJan, rentJan, coffeeFeb, busDec}},
		{name: "2 K", predicates: []valueobject.Predicate{keyword}, want: []*entity.LedgerEntry{coffeeJan, coffeeFeb}},
		{name: "3 D", predicates: []valueobject.Predicate{january}, want: []*entity.LedgerEntry{coffeeJan, rentJan}},
		{name: "4 K+D", predicates: []valueobject.Predicate{keyword, january}, want: []*entity.LedgerEntry{coffeeJan}},
		{name: "5 T", predicates: []valueobject.Predicate{food}, want: []*entity.LedgerEntry{coffeeJan, coffeeFeb}},
		{name: "6 K+T", predicates: []valueobject.Predicate{keyword, food}, want: []*entity.LedgerEntry{coffeeJan, coffeeFeb}},
		{name: "7 D+T", predicates: []valueobject.Predicate{january, food}, want: []*entity.LedgerEntry{coffeeJan}},
		{name: "8 K+D+T", predicates: []valueobject.Predicate{keyword, january, food}, want: []*entity.LedgerEntry{coffeeJan}},
	}

	all := []*entity.LedgerEntry{coffeeJan, rentJan, coffeeFeb, busDec}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.FindByMember(context.Background(), 1, entity.KindExpenditure, tt.predicates...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d entries, got %d", len(tt.want), len(got))
			}
			for i := range tt.want {
				if got[i].ID != tt.want[i].ID {
					t.Errorf("[%d] expected %q, got %q", i, tt.want[i].Description, got[i].Description)
				}
			}

			// The SQL result must match the in-memory evaluation of the same predicates.
			var expected int
			for _, e := range all {
				if valueobject.MatchesAll(e, tt.predicates...) {
					expected++
				}
			}
			if expected != len(got) {
				t.Errorf("in-memory evaluation found %d entries, store found %d", expected, len(got))
			}
		})
	}

	t.Run("round trip keeps values", func(t *testing.T) {
		got, err := repo.FindByMember(context.Background(), 1, entity.KindExpenditure, january)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		e := got[1]
		if !e.Amount.Equal(decimal.NewFromInt(90000)) || !e.OccurredAt.Equal(rentJan.OccurredAt) || e.Category != entity.ExpenditureHousing {
			t.Errorf("unexpected entry %+v", e)
		}
	})

	t.Run("unknown member is empty", func(t *testing.T) {
		got, err := repo.FindByMember(context.Background(), 42, entity.KindExpenditure)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected no entries, got %d", len(got))
		}
	})
}

func TestLedgerRepository_KeywordIsLiteral(t *testing.T) {
	db := newTestDB(t)
	repo := NewLedgerRepository(db)

	at := time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC)
	rent := seedEntry(t, repo, 1, entity.KindExpenditure, 90000, at, "rent", entity.ExpenditureHousing)
	sale := seedEntry(t, repo, 1, entity.KindExpenditure, 3000, at, "50% off shoes", entity.ExpenditureShopping)
	snake := seedEntry(t, repo, 1, entity.KindExpenditure, 100, at, `snake_case C:\tmp`, entity.CategoryEtc)
	all := []*entity.LedgerEntry{rent, sale, snake}

	tests := []struct {
		keyword string
		want    []*entity.LedgerEntry
	}{
		{keyword: "_", want: []*entity.LedgerEntry{snake}},
		{keyword: "%", want: []*entity.LedgerEntry{sale}},
		{keyword: "r_nt"},
		{keyword: "50% OFF", want: []*entity.LedgerEntry{sale}},
		{keyword: `\`, want: []*entity.LedgerEntry{snake}},
		{keyword: "ren", want: []*entity.LedgerEntry{rent}},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			keyword := valueobject.KeywordPredicate{Pattern: valueobject.WrapKeyword(tt.keyword)}
			got, err := repo.FindByMember(context.Background(), 1, entity.KindExpenditure, keyword)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d entries, got %d", len(tt.want), len(got))
			}
			for i := range tt.want {
				if got[i].ID != tt.want[i].ID {
					t.Errorf("[%d] expected %q, got %q", i, tt.want[i].Description, got[i].Description)
				}
			}

			var expected int
			for _, e := range all {
				if keyword.Matches(e) {
					expected++
				}
			}
			if expected != len(got) {
				t.Errorf("in-memory evaluation found %d entries, store found %d", expected, len(got))
			}
		})
	}
}

func TestLedgerRepository_CreateWritesOutbox(t *testing.T) {
	db := newTestDB(t)
	repo := NewLedgerRepository(db)

	entry := entity.NewLedgerEntry(1, entity.KindIncome, decimal.NewFromInt(100), created, "tip", entity.CategoryEtc, "", "", created)
	event := entity.NewOutboxEvent(entity.EventTypeEntryRecorded, entry.ID, []byte(`{"entry_id":"x"}`), created)

	if err := repo.Create(context.Background(), entry, event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var count int64
	db.Model(&model.OutboxEventModel{}).Where("aggregate_id = ?", entry.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 outbox event, got %d", count)
	}

	t.Run("failed event rolls back the entry", func(t *testing.T) {
		other := entity.NewLedgerEntry(1, entity.KindIncome, decimal.NewFromInt(5), created, "dup", entity.CategoryEtc, "", "", created)
		err := repo.Create(context.Background(), other, event)
		if err == nil {
			t.Fatal("expected duplicate outbox id to fail")
		}
		var entries int64
		db.Model(&model.LedgerEntryModel{}).Where("id = ?", other.ID).Count(&entries)
		if entries != 0 {
			t.Error("expected entry insert to be rolled back")
		}
	})
}
