package member

import (
	"context"
	"errors"
	"testing"

	"github.com/bitbank/ledger/internal/domain/entity"
	domainerror "github.com/bitbank/ledger/internal/domain/error"
)

type stubMemberRepository struct {
	exists bool
	err    error
}

func (s *stubMemberRepository) FindByID(ctx context.Context, id int64) (*entity.Member, error) {
	return nil, errors.New("not used")
}

func (s *stubMemberRepository) ExistsActive(ctx context.Context, id int64) (bool, error) {
	return s.exists, s.err
}

func TestCheckMember(t *testing.T) {
	tests := []struct {
		name      string
		repo      *stubMemberRepository
		wantErr   error
		wantStore bool
	}{
		{name: "active member", repo: &stubMemberRepository{exists: true}},
		{name: "unknown member", repo: &stubMemberRepository{}, wantErr: domainerror.ErrMemberNotFound},
		{name: "store failure", repo: &stubMemberRepository{err: errors.New("timeout")}, wantStore: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewCheckMemberUseCase(tt.repo).Execute(context.Background(), 7)

			switch {
			case tt.wantStore:
				if !errors.Is(err, domainerror.ErrStoreUnavailable) {
					t.Fatalf("expected store error, got %v", err)
				}
			case tt.wantErr != nil:
				var memberErr *domainerror.MemberError
				if !errors.As(err, &memberErr) || memberErr.Code != domainerror.ErrCodeMemberNotFound {
					t.Fatalf("expected member not found, got %v", err)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
			}
		})
	}
}
