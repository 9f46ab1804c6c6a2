package valueobject

import (
	"fmt"
	"strings"

	"github.com/bitbank/ledger/internal/domain/entity"
)

// Variant is the bit set of predicates present in a search.
// Bits: keyword=1, date range=2, category=4.
type Variant uint8

const (
	VariantKeyword   Variant = 1 << 0
	VariantDateRange Variant = 1 << 1
	VariantCategory  Variant = 1 << 2
)

// Number returns the 1-based variant number, from 1 (no filter) to 8 (all three).
func (v Variant) Number() int {
	return int(v&(VariantKeyword|VariantDateRange|VariantCategory)) + 1
}

// Has reports whether flag is part of the variant.
func (v Variant) Has(flag Variant) bool {
	return v&flag != 0
}

// String renders the variant as its predicate letters, e.g. "K+D".
func (v Variant) String() string {
	var parts []string
	if v.Has(VariantKeyword) {
		parts = append(parts, "K")
	}
	if v.Has(VariantDateRange) {
		parts = append(parts, "D")
	}
	if v.Has(VariantCategory) {
		parts = append(parts, "T")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// Predicate is one optional search filter. Present predicates are combined with AND.
type Predicate interface {
	// Flag identifies the predicate within a Variant.
	Flag() Variant
	// Matches evaluates the predicate against an entry.
	Matches(entry *entity.LedgerEntry) bool
}

// VariantOf returns the variant formed by the given predicates.
func VariantOf(predicates ...Predicate) Variant {
	var v Variant
	for _, p := range predicates {
		v |= p.Flag()
	}
	return v
}

// MatchesAll reports whether the entry satisfies every predicate.
func MatchesAll(entry *entity.LedgerEntry, predicates ...Predicate) bool {
	for _, p := range predicates {
		if !p.Matches(entry) {
			return false
		}
	}
	return true
}

// LikeEscape is the escape character of keyword patterns.
const LikeEscape = `\`

var (
	likeEscaper   = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	likeUnescaper = strings.NewReplacer(`\\`, `\`, `\%`, `%`, `\_`, `_`)
)

// KeywordPredicate matches entries whose description contains the keyword.
// Pattern is a SQL LIKE pattern such as "%coffee%" whose literal '%', '_' and '\'
// are escaped with LikeEscape. Matching is case-insensitive.
type KeywordPredicate struct {
	Pattern string
}

// WrapKeyword escapes the LIKE wildcards of keyword and wraps it for substring matching.
func WrapKeyword(keyword string) string {
	return "%" + likeEscaper.Replace(keyword) + "%"
}

// Keyword returns the literal keyword carried by the pattern.
func (p KeywordPredicate) Keyword() string {
	inner := strings.TrimSuffix(strings.TrimPrefix(p.Pattern, "%"), "%")
	return likeUnescaper.Replace(inner)
}

// Flag implements Predicate.
func (p KeywordPredicate) Flag() Variant { return VariantKeyword }

// Matches implements Predicate.
func (p KeywordPredicate) Matches(entry *entity.LedgerEntry) bool {
	return strings.Contains(strings.ToLower(entry.Description), strings.ToLower(p.Keyword()))
}

// DateRangePredicate matches entries whose occurrence date lies in the range.
type DateRangePredicate struct {
	Range DateRange
}

// Flag implements Predicate.
func (p DateRangePredicate) Flag() Variant { return VariantDateRange }

// Matches implements Predicate.
func (p DateRangePredicate) Matches(entry *entity.LedgerEntry) bool {
	return p.Range.Contains(entry.OccurredOn())
}

// CategoryPredicate matches entries whose category is in the list.
type CategoryPredicate struct {
	Categories []entity.Category
}

// Flag implements Predicate.
func (p CategoryPredicate) Flag() Variant { return VariantCategory }

// Matches implements Predicate.
func (p CategoryPredicate) Matches(entry *entity.LedgerEntry) bool {
	for _, c := range p.Categories {
		if entry.Category == c {
			return true
		}
	}
	return false
}

// Values returns the categories as plain strings for query binding.
func (p CategoryPredicate) Values() []string {
	values := make([]string, len(p.Categories))
	for i, c := range p.Categories {
		values[i] = string(c)
	}
	return values
}

// String implements fmt.Stringer for log output.
func (p CategoryPredicate) String() string {
	return fmt.Sprintf("category in %v", p.Values())
}
