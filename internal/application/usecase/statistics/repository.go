// Package statistics contains the ledger aggregation use cases.
package statistics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bitbank/ledger/internal/domain/entity"
)

// StatisticsRepository defines the aggregate queries over a member's ledger.
// Every query covers entries with Start <= occurred_at < End.
type StatisticsRepository interface {
	// MonthlyTotal returns the sum of amounts in scope, zero when empty.
	MonthlyTotal(ctx context.Context, scope Scope) (decimal.Decimal, error)

	// WeeklyTotals returns sums grouped by Monday-start week of year, ascending.
	WeeklyTotals(ctx context.Context, scope Scope) ([]WeeklyTotal, error)

	// DailyTotals returns sums grouped by calendar day, ascending.
	DailyTotals(ctx context.Context, scope Scope) ([]DailyTotal, error)

	// CategoryTotals returns sums grouped by category in store enumeration order.
	CategoryTotals(ctx context.Context, scope Scope) ([]RawCategoryTotal, error)
}

// StatisticsCache stores computed statistics per member, kind and month.
type StatisticsCache interface {
	Get(ctx context.Context, key CacheKey) (*Statistics, bool, error)
	Set(ctx context.Context, key CacheKey, stats *Statistics) error
	Invalidate(ctx context.Context, key CacheKey) error
}

// Scope selects the entries an aggregation runs over.
type Scope struct {
	MemberID int64
	Kind     entity.EntryKind
	Start    time.Time
	End      time.Time
}

// CacheKey identifies one cached month of statistics.
type CacheKey struct {
	MemberID int64
	Kind     entity.EntryKind
	Year     int
	Month    int
}

// KeyFor returns the cache key of the month containing t.
func KeyFor(memberID int64, kind entity.EntryKind, t time.Time) CacheKey {
	t = t.UTC()
	return CacheKey{MemberID: memberID, Kind: kind, Year: t.Year(), Month: int(t.Month())}
}

// RawCategoryTotal represents a category sum as returned by the store.
type RawCategoryTotal struct {
	Category entity.Category
	Total    decimal.Decimal
}
