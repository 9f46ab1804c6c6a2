// Package member contains member precondition use cases.
package member

import (
	"context"

	"github.com/bitbank/ledger/internal/application/adapter"
	domainerror "github.com/bitbank/ledger/internal/domain/error"
)

// CheckMemberUseCase verifies that a member exists and is not deleted.
type CheckMemberUseCase struct {
	memberRepo adapter.MemberRepository
}

// NewCheckMemberUseCase creates a new CheckMemberUseCase instance.
func NewCheckMemberUseCase(memberRepo adapter.MemberRepository) *CheckMemberUseCase {
	return &CheckMemberUseCase{
		memberRepo: memberRepo,
	}
}

// Execute returns a MemberError when the member is unknown, or a StoreError when the
// lookup itself fails.
func (uc *CheckMemberUseCase) Execute(ctx context.Context, memberID int64) error {
	exists, err := uc.memberRepo.ExistsActive(ctx, memberID)
	if err != nil {
		return domainerror.NewStoreError("check member", err)
	}
	if !exists {
		return domainerror.NewMemberError(
			domainerror.ErrCodeMemberNotFound,
			"member not found",
			domainerror.ErrMemberNotFound,
		)
	}
	return nil
}
