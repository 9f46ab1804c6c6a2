package search

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/bitbank/ledger/internal/application/usecase/member"
	"github.com/bitbank/ledger/internal/domain/entity"
	"github.com/bitbank/ledger/internal/domain/valueobject"
)

// KindResult holds the entries of one kind that matched a search.
type KindResult struct {
	Kind    entity.EntryKind
	Variant valueobject.Variant
	Entries []*entity.LedgerEntry
}

// SearchEntriesOutput represents the output of a ledger search.
type SearchEntriesOutput struct {
	Criteria *valueobject.SearchCriteria
	Results  []KindResult
}

// Total returns the number of entries across every kind.
func (o *SearchEntriesOutput) Total() int {
	total := 0
	for _, r := range o.Results {
		total += len(r.Entries)
	}
	return total
}

// SearchEntriesUseCase handles searching a member's ledger.
type SearchEntriesUseCase struct {
	normalizer  *CriteriaNormalizer
	checkMember *member.CheckMemberUseCase
	resolver    *QueryVariantResolver
}

// NewSearchEntriesUseCase creates a new SearchEntriesUseCase instance.
func NewSearchEntriesUseCase(
	normalizer *CriteriaNormalizer,
	checkMember *member.CheckMemberUseCase,
	resolver *QueryVariantResolver,
) *SearchEntriesUseCase {
	return &SearchEntriesUseCase{
		normalizer:  normalizer,
		checkMember: checkMember,
		resolver:    resolver,
	}
}

// Execute validates the request, checks the member and resolves each requested kind.
// Kinds are resolved concurrently; results come back in kind order.
func (uc *SearchEntriesUseCase) Execute(ctx context.Context, req SearchRequest) (*SearchEntriesOutput, error) {
	criteria, err := uc.normalizer.Normalize(req)
	if err != nil {
		return nil, err
	}

	if err := uc.checkMember.Execute(ctx, criteria.MemberID); err != nil {
		return nil, err
	}

	results := make([]KindResult, len(criteria.Kinds))
	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range criteria.Kinds {
		i, kind := i, kind
		g.Go(func() error {
			entries, err := uc.resolver.Resolve(gctx, criteria, kind)
			if err != nil {
				return err
			}
			results[i] = KindResult{
				Kind:    kind,
				Variant: criteria.Variant(kind),
				Entries: entries,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &SearchEntriesOutput{
		Criteria: criteria,
		Results:  results,
	}, nil
}
