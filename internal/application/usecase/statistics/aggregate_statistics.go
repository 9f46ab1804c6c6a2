package statistics

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/bitbank/ledger/internal/application/adapter"
	"github.com/bitbank/ledger/internal/application/usecase/member"
	"github.com/bitbank/ledger/internal/domain/entity"
	domainerror "github.com/bitbank/ledger/internal/domain/error"
)

var hundred = decimal.NewFromInt(100)

// AggregateStatisticsInput represents the input for aggregating a month of statistics.
type AggregateStatisticsInput struct {
	MemberID int64
	Kind     entity.EntryKind
	Month    int
	// ReferenceTime selects the year. The zero value means now.
	ReferenceTime time.Time
}

// WeeklyTotal is the sum of one week of the month.
type WeeklyTotal struct {
	Week  int             `json:"week"`
	Total decimal.Decimal `json:"total"`
}

// DailyTotal is the sum of one day of the month.
type DailyTotal struct {
	Day   string          `json:"day"`
	Total decimal.Decimal `json:"total"`
}

// CategoryShare is one category's part of the monthly total.
type CategoryShare struct {
	Category   entity.Category `json:"category"`
	Total      decimal.Decimal `json:"total"`
	Percentage int64           `json:"percentage"`
	Rank       int             `json:"rank"`
}

// Statistics represents the output of AggregateStatisticsUseCase.
type Statistics struct {
	MemberID       int64            `json:"member_id"`
	Kind           entity.EntryKind `json:"kind"`
	Year           int              `json:"year"`
	Month          int              `json:"month"`
	MonthlyTotal   decimal.Decimal  `json:"monthly_total"`
	WeeklyTotals   []WeeklyTotal    `json:"weekly_totals"`
	DailyTotals    []DailyTotal     `json:"daily_totals"`
	CategoryShares []CategoryShare  `json:"category_shares"`
}

// AggregateStatisticsUseCase computes monthly, weekly, daily and per-category totals.
type AggregateStatisticsUseCase struct {
	statsRepo   StatisticsRepository
	checkMember *member.CheckMemberUseCase
	cache       StatisticsCache
	clock       adapter.Clock
}

// NewAggregateStatisticsUseCase creates a new AggregateStatisticsUseCase instance.
// cache may be nil.
func NewAggregateStatisticsUseCase(
	statsRepo StatisticsRepository,
	checkMember *member.CheckMemberUseCase,
	cache StatisticsCache,
	clock adapter.Clock,
) *AggregateStatisticsUseCase {
	return &AggregateStatisticsUseCase{
		statsRepo:   statsRepo,
		checkMember: checkMember,
		cache:       cache,
		clock:       clock,
	}
}

// Execute aggregates the member's entries of the kind for the requested month.
func (uc *AggregateStatisticsUseCase) Execute(
	ctx context.Context,
	input AggregateStatisticsInput,
) (*Statistics, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	if err := uc.checkMember.Execute(ctx, input.MemberID); err != nil {
		return nil, err
	}

	reference := input.ReferenceTime
	if reference.IsZero() {
		reference = uc.clock.Now()
	}
	key := CacheKey{
		MemberID: input.MemberID,
		Kind:     input.Kind,
		Year:     reference.UTC().Year(),
		Month:    input.Month,
	}

	if cached := uc.fromCache(ctx, key); cached != nil {
		return cached, nil
	}

	stats, err := uc.aggregate(ctx, key)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, stats); err != nil {
			slog.Warn("Failed to cache ledger statistics", "error", err, "memberID", key.MemberID, "kind", key.Kind)
		}
	}

	return stats, nil
}

func (uc *AggregateStatisticsUseCase) validateInput(input AggregateStatisticsInput) error {
	if !input.Kind.IsValid() {
		return domainerror.NewValidationError(
			domainerror.ErrCodeInvalidKind,
			"kind must be: income, expenditure, or transfer",
			domainerror.ErrInvalidKind,
		)
	}
	if input.Month < 1 || input.Month > 12 {
		return domainerror.NewValidationError(
			domainerror.ErrCodeInvalidMonth,
			"month must be between 1 and 12",
			domainerror.ErrInvalidMonth,
		)
	}
	return nil
}

func (uc *AggregateStatisticsUseCase) fromCache(ctx context.Context, key CacheKey) *Statistics {
	if uc.cache == nil {
		return nil
	}
	stats, ok, err := uc.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("Failed to read cached ledger statistics", "error", err, "memberID", key.MemberID, "kind", key.Kind)
		return nil
	}
	if !ok {
		return nil
	}
	slog.Debug("Ledger statistics served from cache", "memberID", key.MemberID, "kind", key.Kind, "month", key.Month)
	return stats
}

// aggregate runs the four store queries concurrently. The first failure cancels the rest.
func (uc *AggregateStatisticsUseCase) aggregate(ctx context.Context, key CacheKey) (*Statistics, error) {
	start, end := MonthScope(key.Year, key.Month)
	scope := Scope{MemberID: key.MemberID, Kind: key.Kind, Start: start, End: end}

	var (
		monthly    decimal.Decimal
		weekly     []WeeklyTotal
		daily      []DailyTotal
		categories []RawCategoryTotal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, err := uc.statsRepo.MonthlyTotal(gctx, scope)
		if err != nil {
			return domainerror.NewStoreError("monthly total", err)
		}
		monthly = total
		return nil
	})
	g.Go(func() error {
		totals, err := uc.statsRepo.WeeklyTotals(gctx, scope)
		if err != nil {
			return domainerror.NewStoreError("weekly totals", err)
		}
		weekly = totals
		return nil
	})
	g.Go(func() error {
		totals, err := uc.statsRepo.DailyTotals(gctx, scope)
		if err != nil {
			return domainerror.NewStoreError("daily totals", err)
		}
		daily = totals
		return nil
	})
	g.Go(func() error {
		totals, err := uc.statsRepo.CategoryTotals(gctx, scope)
		if err != nil {
			return domainerror.NewStoreError("category totals", err)
		}
		categories = totals
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if weekly == nil {
		weekly = []WeeklyTotal{}
	}
	if daily == nil {
		daily = []DailyTotal{}
	}

	return &Statistics{
		MemberID:       key.MemberID,
		Kind:           key.Kind,
		Year:           key.Year,
		Month:          key.Month,
		MonthlyTotal:   monthly,
		WeeklyTotals:   weekly,
		DailyTotals:    daily,
		CategoryShares: ComputeCategoryShares(monthly, categories),
	}, nil
}

// ComputeCategoryShares ranks category sums by descending total and computes each
// share of total as a whole percentage rounded half up. Equal sums keep input order.
// A zero total yields an empty slice.
func ComputeCategoryShares(total decimal.Decimal, raw []RawCategoryTotal) []CategoryShare {
	if total.IsZero() {
		return []CategoryShare{}
	}

	sorted := make([]RawCategoryTotal, len(raw))
	copy(sorted, raw)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Total.GreaterThan(sorted[j].Total)
	})

	shares := make([]CategoryShare, len(sorted))
	for i, r := range sorted {
		shares[i] = CategoryShare{
			Category:   r.Category,
			Total:      r.Total,
			Percentage: roundHalfUpPercent(r.Total, total),
			Rank:       i + 1,
		}
	}
	return shares
}

// roundHalfUpPercent returns round(part*100/total) with halves rounded up, exactly.
func roundHalfUpPercent(part, total decimal.Decimal) int64 {
	q, r := part.Mul(hundred).QuoRem(total, 0)
	if r.Mul(decimal.NewFromInt(2)).GreaterThanOrEqual(total) {
		q = q.Add(decimal.NewFromInt(1))
	}
	return q.IntPart()
}
