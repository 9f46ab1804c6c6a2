// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/bitbank/ledger/internal/application/adapter"
	"github.com/bitbank/ledger/internal/domain/entity"
	"github.com/bitbank/ledger/internal/domain/valueobject"
	"github.com/bitbank/ledger/internal/integration/persistence/model"
)

// ledgerRepository implements the adapter.LedgerRepository interface.
type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository instance.
func NewLedgerRepository(db *gorm.DB) adapter.LedgerRepository {
	return &ledgerRepository{
		db: db,
	}
}

// Create inserts the entry and its outbox events in a single transaction.
func (r *ledgerRepository) Create(ctx context.Context, entry *entity.LedgerEntry, events ...*entity.OutboxEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.LedgerEntryFromEntity(entry)).Error; err != nil {
			return err
		}
		for _, event := range events {
			if err := tx.Create(model.OutboxEventFromEntity(event)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByMember returns the member's entries of the kind satisfying every predicate,
// in identifier order.
func (r *ledgerRepository) FindByMember(
	ctx context.Context,
	memberID int64,
	kind entity.EntryKind,
	predicates ...valueobject.Predicate,
) ([]*entity.LedgerEntry, error) {
	scopes := make([]func(*gorm.DB) *gorm.DB, 0, len(predicates))
	for _, p := range predicates {
		scope, err := predicateScope(p)
		if err != nil {
			return nil, err
		}
		scopes = append(scopes, scope)
	}

	var models []model.LedgerEntryModel
	result := r.db.WithContext(ctx).
		Where("member_id = ? AND kind = ?", memberID, string(kind)).
		Scopes(scopes...).
		Order("id ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]*entity.LedgerEntry, len(models))
	for i := range models {
		entries[i] = models[i].ToEntity()
	}
	return entries, nil
}

// predicateScope translates one search predicate into a gorm scope.
func predicateScope(p valueobject.Predicate) (func(*gorm.DB) *gorm.DB, error) {
	switch p := p.(type) {
	case valueobject.KeywordPredicate:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("LOWER(description) LIKE LOWER(?) ESCAPE '"+valueobject.LikeEscape+"'", p.Pattern)
		}, nil
	case valueobject.DateRangePredicate:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("occurred_at >= ? AND occurred_at < ?", p.Range.Start, p.Range.EndExclusive())
		}, nil
	case valueobject.CategoryPredicate:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("category IN ?", p.Values())
		}, nil
	default:
		return nil, fmt.Errorf("unsupported search predicate %T", p)
	}
}
