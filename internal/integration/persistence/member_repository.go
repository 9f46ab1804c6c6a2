package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/bitbank/ledger/internal/application/adapter"
	"github.com/bitbank/ledger/internal/domain/entity"
	domainerror "github.com/bitbank/ledger/internal/domain/error"
	"github.com/bitbank/ledger/internal/integration/persistence/model"
)

// memberRepository implements the adapter.MemberRepository interface.
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository instance.
func NewMemberRepository(db *gorm.DB) adapter.MemberRepository {
	return &memberRepository{
		db: db,
	}
}

// FindByID retrieves an active member by ID.
func (r *memberRepository) FindByID(ctx context.Context, id int64) (*entity.Member, error) {
	var memberModel model.MemberModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&memberModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrMemberNotFound
		}
		return nil, result.Error
	}
	return memberModel.ToEntity(), nil
}

// ExistsActive reports whether a member with the ID exists and is not soft-deleted.
func (r *memberRepository) ExistsActive(ctx context.Context, id int64) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.MemberModel{}).
		Where("id = ?", id).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}
