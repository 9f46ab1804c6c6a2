package persistence

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bitbank/ledger/internal/application/usecase/statistics"
	"github.com/bitbank/ledger/internal/domain/entity"
	"github.com/bitbank/ledger/internal/integration/persistence/model"
)

const (
	// Monday-start week of year, days before the first Monday are week 0 (strftime %W).
	postgresWeekExpr = "CAST(FLOOR((EXTRACT(DOY FROM occurred_at AT TIME ZONE 'UTC') + 7 - EXTRACT(ISODOW FROM occurred_at AT TIME ZONE 'UTC')) / 7) AS INTEGER)"
	postgresDayExpr  = "TO_CHAR(occurred_at AT TIME ZONE 'UTC', 'MM.DD')"
)

// statisticsRepository implements the statistics.StatisticsRepository interface.
// PostgreSQL groups in SQL. SQLite has no arbitrary-precision NUMERIC, so its rows
// are summed here with decimal arithmetic.
type statisticsRepository struct {
	db     *gorm.DB
	foldUp bool
}

// NewStatisticsRepository creates a new statistics repository instance.
func NewStatisticsRepository(db *gorm.DB) statistics.StatisticsRepository {
	return &statisticsRepository{
		db:     db,
		foldUp: db.Dialector.Name() == "sqlite",
	}
}

const scopeFilter = `
		FROM ledger_entries
		WHERE member_id = ?
			AND kind = ?
			AND occurred_at >= ?
			AND occurred_at < ?`

func scopeArgs(scope statistics.Scope) []interface{} {
	return []interface{}{scope.MemberID, string(scope.Kind), scope.Start.UTC(), scope.End.UTC()}
}

// scopeRows loads the entries in scope ordered by occurrence, then category.
func (r *statisticsRepository) scopeRows(ctx context.Context, scope statistics.Scope) ([]model.LedgerEntryModel, error) {
	var rows []model.LedgerEntryModel
	err := r.db.WithContext(ctx).
		Select("occurred_at", "category", "amount").
		Where("member_id = ? AND kind = ? AND occurred_at >= ? AND occurred_at < ?", scopeArgs(scope)...).
		Order("occurred_at ASC, category ASC").
		Find(&rows).Error
	return rows, err
}

// MonthlyTotal returns the sum of amounts in scope.
func (r *statisticsRepository) MonthlyTotal(ctx context.Context, scope statistics.Scope) (decimal.Decimal, error) {
	if r.foldUp {
		rows, err := r.scopeRows(ctx, scope)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to get monthly total: %w", err)
		}
		total := decimal.Zero
		for _, row := range rows {
			total = total.Add(row.Amount)
		}
		return total, nil
	}

	var result struct {
		Total decimal.Decimal `gorm:"column:total"`
	}

	query := `SELECT COALESCE(SUM(amount), 0) as total` + scopeFilter

	err := r.db.WithContext(ctx).
		Raw(query, scopeArgs(scope)...).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get monthly total: %w", err)
	}
	return result.Total, nil
}

// WeeklyTotals returns sums grouped by week of year.
func (r *statisticsRepository) WeeklyTotals(ctx context.Context, scope statistics.Scope) ([]statistics.WeeklyTotal, error) {
	if r.foldUp {
		rows, err := r.scopeRows(ctx, scope)
		if err != nil {
			return nil, fmt.Errorf("failed to get weekly totals: %w", err)
		}
		// Rows are in time order, so weeks arrive ascending.
		var totals []statistics.WeeklyTotal
		for _, row := range rows {
			week := statistics.WeekOfYear(row.OccurredAt)
			if n := len(totals); n > 0 && totals[n-1].Week == week {
				totals[n-1].Total = totals[n-1].Total.Add(row.Amount)
				continue
			}
			totals = append(totals, statistics.WeeklyTotal{Week: week, Total: row.Amount})
		}
		return totals, nil
	}

	var results []struct {
		Week  int             `gorm:"column:week"`
		Total decimal.Decimal `gorm:"column:total"`
	}

	query := `SELECT ` + postgresWeekExpr + ` as week, SUM(amount) as total` + scopeFilter + `
		GROUP BY week
		ORDER BY week`

	err := r.db.WithContext(ctx).
		Raw(query, scopeArgs(scope)...).
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly totals: %w", err)
	}

	totals := make([]statistics.WeeklyTotal, len(results))
	for i, res := range results {
		totals[i] = statistics.WeeklyTotal{Week: res.Week, Total: res.Total}
	}
	return totals, nil
}

// DailyTotals returns sums grouped by calendar day.
func (r *statisticsRepository) DailyTotals(ctx context.Context, scope statistics.Scope) ([]statistics.DailyTotal, error) {
	if r.foldUp {
		rows, err := r.scopeRows(ctx, scope)
		if err != nil {
			return nil, fmt.Errorf("failed to get daily totals: %w", err)
		}
		var totals []statistics.DailyTotal
		for _, row := range rows {
			day := statistics.DayLabel(row.OccurredAt)
			if n := len(totals); n > 0 && totals[n-1].Day == day {
				totals[n-1].Total = totals[n-1].Total.Add(row.Amount)
				continue
			}
			totals = append(totals, statistics.DailyTotal{Day: day, Total: row.Amount})
		}
		return totals, nil
	}

	var results []struct {
		Day   string          `gorm:"column:day"`
		Total decimal.Decimal `gorm:"column:total"`
	}

	query := `SELECT ` + postgresDayExpr + ` as day, SUM(amount) as total` + scopeFilter + `
		GROUP BY day
		ORDER BY day`

	err := r.db.WithContext(ctx).
		Raw(query, scopeArgs(scope)...).
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get daily totals: %w", err)
	}

	totals := make([]statistics.DailyTotal, len(results))
	for i, res := range results {
		totals[i] = statistics.DailyTotal{Day: res.Day, Total: res.Total}
	}
	return totals, nil
}

// CategoryTotals returns sums grouped by category, enumerated by first occurrence.
func (r *statisticsRepository) CategoryTotals(ctx context.Context, scope statistics.Scope) ([]statistics.RawCategoryTotal, error) {
	if r.foldUp {
		rows, err := r.scopeRows(ctx, scope)
		if err != nil {
			return nil, fmt.Errorf("failed to get category totals: %w", err)
		}
		var totals []statistics.RawCategoryTotal
		index := make(map[string]int)
		for _, row := range rows {
			if i, ok := index[row.Category]; ok {
				totals[i].Total = totals[i].Total.Add(row.Amount)
				continue
			}
			index[row.Category] = len(totals)
			totals = append(totals, statistics.RawCategoryTotal{Category: entity.Category(row.Category), Total: row.Amount})
		}
		return totals, nil
	}

	var results []struct {
		Category string          `gorm:"column:category"`
		Total    decimal.Decimal `gorm:"column:total"`
	}

	query := `SELECT category, SUM(amount) as total` + scopeFilter + `
		GROUP BY category
		ORDER BY MIN(occurred_at), category`

	err := r.db.WithContext(ctx).
		Raw(query, scopeArgs(scope)...).
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get category totals: %w", err)
	}

	totals := make([]statistics.RawCategoryTotal, len(results))
	for i, res := range results {
		totals[i] = statistics.RawCategoryTotal{Category: entity.Category(res.Category), Total: res.Total}
	}
	return totals, nil
}
