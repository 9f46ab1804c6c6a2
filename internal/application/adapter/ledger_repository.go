// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/bitbank/ledger/internal/domain/entity"
	"github.com/bitbank/ledger/internal/domain/valueobject"
)

// LedgerRepository defines the store adapter for ledger entries.
// Failures are returned as *domainerror.StoreError.
type LedgerRepository interface {
	// Create persists an entry together with the outbox events it produced, atomically.
	Create(ctx context.Context, entry *entity.LedgerEntry, events ...*entity.OutboxEvent) error

	// FindByMember returns the member's entries of the given kind that satisfy every
	// predicate, in identifier order. No predicates means all entries of the kind.
	FindByMember(
		ctx context.Context,
		memberID int64,
		kind entity.EntryKind,
		predicates ...valueobject.Predicate,
	) ([]*entity.LedgerEntry, error)
}
