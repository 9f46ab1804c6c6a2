// Package search contains the ledger search use cases.
package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/bitbank/ledger/internal/application/adapter"
	"github.com/bitbank/ledger/internal/domain/entity"
	domainerror "github.com/bitbank/ledger/internal/domain/error"
	"github.com/bitbank/ledger/internal/domain/valueobject"
)

// SearchRequest is a raw, unvalidated search request.
type SearchRequest struct {
	MemberID         *int64
	Keyword          string
	SearchDateType   string
	StartDate        string
	EndDate          string
	Kind             string
	IncomeTypes      []string
	ExpenditureTypes []string
	TransferTypes    []string
}

// CriteriaNormalizer validates a SearchRequest and canonicalizes it into SearchCriteria.
type CriteriaNormalizer struct {
	clock adapter.Clock
}

// NewCriteriaNormalizer creates a new CriteriaNormalizer instance.
func NewCriteriaNormalizer(clock adapter.Clock) *CriteriaNormalizer {
	return &CriteriaNormalizer{
		clock: clock,
	}
}

// Normalize validates the request. Every failure is a *domainerror.ValidationError.
func (n *CriteriaNormalizer) Normalize(req SearchRequest) (*valueobject.SearchCriteria, error) {
	if req.MemberID == nil {
		return nil, domainerror.NewValidationError(
			domainerror.ErrCodeMissingMemberID,
			"member_id is required",
			domainerror.ErrMissingMemberID,
		)
	}

	dateType, dateRange, err := n.normalizeDates(req)
	if err != nil {
		return nil, err
	}

	rawCategories := map[entity.EntryKind][]string{
		entity.KindIncome:      req.IncomeTypes,
		entity.KindExpenditure: req.ExpenditureTypes,
		entity.KindTransfer:    req.TransferTypes,
	}
	categories := make(map[entity.EntryKind][]entity.Category, len(entity.AllKinds))
	for _, kind := range entity.AllKinds {
		list, err := normalizeCategories(kind, rawCategories[kind])
		if err != nil {
			return nil, err
		}
		if len(list) > 0 {
			categories[kind] = list
		}
	}

	kinds, err := normalizeKinds(req.Kind)
	if err != nil {
		return nil, err
	}

	criteria := &valueobject.SearchCriteria{
		MemberID:   *req.MemberID,
		DateType:   dateType,
		DateRange:  dateRange,
		Categories: categories,
		Kinds:      kinds,
	}
	if keyword := strings.TrimSpace(req.Keyword); keyword != "" {
		criteria.KeywordPattern = valueobject.WrapKeyword(keyword)
	}

	return criteria, nil
}

// normalizeDates checks the start/end/date-type combination and resolves the range.
func (n *CriteriaNormalizer) normalizeDates(req SearchRequest) (valueobject.SearchDateType, *valueobject.DateRange, error) {
	start := strings.TrimSpace(req.StartDate)
	end := strings.TrimSpace(req.EndDate)
	dateType := valueobject.SearchDateType(strings.ToUpper(strings.TrimSpace(req.SearchDateType)))

	if (start == "") != (end == "") {
		return "", nil, domainerror.NewValidationError(
			domainerror.ErrCodeIncompleteDateRange,
			"start_date and end_date must be provided together",
			domainerror.ErrIncompleteDateRange,
		)
	}

	if dateType == "" {
		if start != "" && end != "" {
			return "", nil, domainerror.NewValidationError(
				domainerror.ErrCodeInconsistentDateType,
				"search_date_type is required when a date range is given",
				domainerror.ErrInconsistentDateType,
			)
		}
		return "", nil, nil
	}

	if !dateType.IsValid() {
		return "", nil, domainerror.NewValidationError(
			domainerror.ErrCodeInvalidDateType,
			"unknown search_date_type",
			domainerror.ErrInvalidDateType,
		)
	}

	if start == "" {
		preset, ok := dateType.PresetRange(n.clock.Now())
		if !ok {
			return dateType, nil, nil
		}
		return dateType, &preset, nil
	}

	startDate, err := time.Parse(valueobject.DateLayout, start)
	if err != nil {
		return "", nil, domainerror.NewValidationError(
			domainerror.ErrCodeInvalidDateFormat,
			"invalid start_date format, expected YYYY-MM-DD",
			domainerror.ErrInvalidDateFormat,
		)
	}
	endDate, err := time.Parse(valueobject.DateLayout, end)
	if err != nil {
		return "", nil, domainerror.NewValidationError(
			domainerror.ErrCodeInvalidDateFormat,
			"invalid end_date format, expected YYYY-MM-DD",
			domainerror.ErrInvalidDateFormat,
		)
	}
	if startDate.After(endDate) {
		return "", nil, domainerror.NewValidationError(
			domainerror.ErrCodeInvalidDateRange,
			"start_date must not be after end_date",
			domainerror.ErrInvalidDateRange,
		)
	}

	return dateType, &valueobject.DateRange{Start: startDate, End: endDate}, nil
}

func normalizeKinds(raw string) ([]entity.EntryKind, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		kinds := make([]entity.EntryKind, len(entity.AllKinds))
		copy(kinds, entity.AllKinds)
		return kinds, nil
	}

	kind := entity.EntryKind(raw)
	if !kind.IsValid() {
		return nil, domainerror.NewValidationError(
			domainerror.ErrCodeInvalidKind,
			"kind must be: income, expenditure, or transfer",
			domainerror.ErrInvalidKind,
		)
	}
	return []entity.EntryKind{kind}, nil
}

// normalizeCategories validates a category list for the kind, dropping duplicates.
// An empty list yields nil so that the category predicate stays absent.
func normalizeCategories(kind entity.EntryKind, raw []string) ([]entity.Category, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	seen := make(map[entity.Category]bool, len(raw))
	categories := make([]entity.Category, 0, len(raw))
	for _, value := range raw {
		category := entity.Category(strings.ToUpper(strings.TrimSpace(value)))
		if !kind.AllowsCategory(category) {
			return nil, domainerror.NewValidationError(
				domainerror.ErrCodeInvalidCategory,
				fmt.Sprintf("category %q is not valid for %s, allowed: %v", value, kind, kind.Categories()),
				domainerror.ErrInvalidCategory,
			)
		}
		if seen[category] {
			continue
		}
		seen[category] = true
		categories = append(categories, category)
	}
	return categories, nil
}
