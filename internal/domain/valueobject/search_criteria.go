// Package valueobject contains immutable value types shared by the ledger use cases.
package valueobject

import (
	"time"

	"github.com/bitbank/ledger/internal/domain/entity"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// SearchDateType names how a search date range was chosen.
type SearchDateType string

const (
	SearchDateTypeCustom      SearchDateType = "CUSTOM"
	SearchDateTypeWeek        SearchDateType = "WEEK"
	SearchDateTypeMonth       SearchDateType = "MONTH"
	SearchDateTypeThreeMonths SearchDateType = "THREE_MONTHS"
	SearchDateTypeSixMonths   SearchDateType = "SIX_MONTHS"
	SearchDateTypeYear        SearchDateType = "YEAR"
)

// IsValid reports whether t is a known search date type.
func (t SearchDateType) IsValid() bool {
	switch t {
	case SearchDateTypeCustom, SearchDateTypeWeek, SearchDateTypeMonth,
		SearchDateTypeThreeMonths, SearchDateTypeSixMonths, SearchDateTypeYear:
		return true
	}
	return false
}

// PresetRange returns the range ending on today's calendar date covered by a preset type.
// CUSTOM has no preset and returns false.
func (t SearchDateType) PresetRange(today time.Time) (DateRange, bool) {
	end := CalendarDate(today)
	var start time.Time
	switch t {
	case SearchDateTypeWeek:
		start = end.AddDate(0, 0, -6)
	case SearchDateTypeMonth:
		start = end.AddDate(0, -1, 1)
	case SearchDateTypeThreeMonths:
		start = end.AddDate(0, -3, 1)
	case SearchDateTypeSixMonths:
		start = end.AddDate(0, -6, 1)
	case SearchDateTypeYear:
		start = end.AddDate(-1, 0, 1)
	default:
		return DateRange{}, false
	}
	return DateRange{Start: start, End: end}, true
}

// CalendarDate truncates t to midnight UTC of its UTC calendar day.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls on a calendar date within the range.
// Time of day is ignored.
func (r DateRange) Contains(t time.Time) bool {
	day := CalendarDate(t)
	return !day.Before(r.Start) && !day.After(r.End)
}

// EndExclusive returns the first instant after the range.
func (r DateRange) EndExclusive() time.Time {
	return r.End.AddDate(0, 0, 1)
}

// SearchCriteria is the normalized, validated set of optional search filters for one member.
type SearchCriteria struct {
	MemberID       int64
	KeywordPattern string
	DateType       SearchDateType
	DateRange      *DateRange
	Categories     map[entity.EntryKind][]entity.Category
	Kinds          []entity.EntryKind
}

// HasKeyword reports whether a keyword filter is present.
func (c *SearchCriteria) HasKeyword() bool {
	return c.KeywordPattern != ""
}

// HasDateRange reports whether a date range filter is present.
func (c *SearchCriteria) HasDateRange() bool {
	return c.DateRange != nil
}

// HasCategories reports whether a category filter is present for the kind.
func (c *SearchCriteria) HasCategories(kind entity.EntryKind) bool {
	return len(c.Categories[kind]) > 0
}

// Predicates returns exactly the predicates present in the criteria for the kind,
// in keyword, date range, category order.
func (c *SearchCriteria) Predicates(kind entity.EntryKind) []Predicate {
	predicates := make([]Predicate, 0, 3)
	if c.HasKeyword() {
		predicates = append(predicates, KeywordPredicate{Pattern: c.KeywordPattern})
	}
	if c.HasDateRange() {
		predicates = append(predicates, DateRangePredicate{Range: *c.DateRange})
	}
	if c.HasCategories(kind) {
		categories := make([]entity.Category, len(c.Categories[kind]))
		copy(categories, c.Categories[kind])
		predicates = append(predicates, CategoryPredicate{Categories: categories})
	}
	return predicates
}

// Variant returns the query variant the criteria select for the kind.
func (c *SearchCriteria) Variant(kind entity.EntryKind) Variant {
	return VariantOf(c.Predicates(kind)...)
}
