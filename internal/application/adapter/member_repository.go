package adapter

import (
	"context"

	"github.com/bitbank/ledger/internal/domain/entity"
)

// MemberRepository defines read access to the members known to the ledger.
type MemberRepository interface {
	// FindByID retrieves an active member by ID.
	FindByID(ctx context.Context, id int64) (*entity.Member, error)

	// ExistsActive reports whether a non-deleted member with the ID exists.
	ExistsActive(ctx context.Context, id int64) (bool, error)
}
