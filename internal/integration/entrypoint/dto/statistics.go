package dto

import (
	"github.com/bitbank/ledger/internal/application/usecase/statistics"
)

// WeeklyTotalResponse represents the total of one week.
type WeeklyTotalResponse struct {
	Week  int    `json:"week"`
	Total string `json:"total"`
}

// DailyTotalResponse represents the total of one day, labelled MM.DD.
type DailyTotalResponse struct {
	Day   string `json:"day"`
	Total string `json:"total"`
}

// CategoryShareResponse represents one category's share of the monthly total.
type CategoryShareResponse struct {
	Category   string `json:"category"`
	Total      string `json:"total"`
	Percentage int64  `json:"percentage"`
	Rank       int    `json:"rank"`
}

// StatisticsResponse represents the monthly statistics of one kind.
type StatisticsResponse struct {
	MemberID       int64                   `json:"member_id"`
	Kind           string                  `json:"kind"`
	Year           int                     `json:"year"`
	Month          int                     `json:"month"`
	MonthlyTotal   string                  `json:"monthly_total"`
	WeeklyTotals   []WeeklyTotalResponse   `json:"weekly_totals"`
	DailyTotals    []DailyTotalResponse    `json:"daily_totals"`
	CategoryShares []CategoryShareResponse `json:"category_shares"`
}

// ToStatisticsResponse converts the aggregated statistics to a StatisticsResponse DTO.
func ToStatisticsResponse(stats *statistics.Statistics) StatisticsResponse {
	response := StatisticsResponse{
		MemberID:       stats.MemberID,
		Kind:           string(stats.Kind),
		Year:           stats.Year,
		Month:          stats.Month,
		MonthlyTotal:   stats.MonthlyTotal.String(),
		WeeklyTotals:   make([]WeeklyTotalResponse, len(stats.WeeklyTotals)),
		DailyTotals:    make([]DailyTotalResponse, len(stats.DailyTotals)),
		CategoryShares: make([]CategoryShareResponse, len(stats.CategoryShares)),
	}

	for i, w := range stats.WeeklyTotals {
		response.WeeklyTotals[i] = WeeklyTotalResponse{Week: w.Week, Total: w.Total.String()}
	}
	for i, d := range stats.DailyTotals {
		response.DailyTotals[i] = DailyTotalResponse{Day: d.Day, Total: d.Total.String()}
	}
	for i, s := range stats.CategoryShares {
		response.CategoryShares[i] = CategoryShareResponse{
			Category:   string(s.Category),
			Total:      s.Total.String(),
			Percentage: s.Percentage,
			Rank:       s.Rank,
		}
	}

	return response
}
