package search

import (
	"context"
	"log/slog"

	"github.com/bitbank/ledger/internal/application/adapter"
	"github.com/bitbank/ledger/internal/domain/entity"
	domainerror "github.com/bitbank/ledger/internal/domain/error"
	"github.com/bitbank/ledger/internal/domain/valueobject"
)

// QueryVariantResolver maps criteria onto exactly one of the eight filter combinations
// for a kind and runs it against the ledger store.
type QueryVariantResolver struct {
	ledgerRepo adapter.LedgerRepository
}

// NewQueryVariantResolver creates a new QueryVariantResolver instance.
func NewQueryVariantResolver(ledgerRepo adapter.LedgerRepository) *QueryVariantResolver {
	return &QueryVariantResolver{
		ledgerRepo: ledgerRepo,
	}
}

// Resolve returns the member's entries of the kind matching every predicate present in
// the criteria. The result keeps store order; an empty slice is not an error.
func (r *QueryVariantResolver) Resolve(
	ctx context.Context,
	criteria *valueobject.SearchCriteria,
	kind entity.EntryKind,
) ([]*entity.LedgerEntry, error) {
	predicates := criteria.Predicates(kind)
	variant := valueobject.VariantOf(predicates...)

	slog.Debug("Resolving ledger search",
		"memberID", criteria.MemberID,
		"kind", kind,
		"variant", variant.Number(),
		"predicates", variant.String(),
	)

	entries, err := r.ledgerRepo.FindByMember(ctx, criteria.MemberID, kind, predicates...)
	if err != nil {
		return nil, domainerror.NewStoreError("find "+string(kind)+" entries", err)
	}
	if entries == nil {
		entries = []*entity.LedgerEntry{}
	}
	return entries, nil
}
