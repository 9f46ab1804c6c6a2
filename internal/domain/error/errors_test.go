package error

import (
	"context"
	"errors"
	"testing"
)

func TestValidationErrorWrapsSentinel(t *testing.T) {
	err := NewValidationError(ErrCodeIncompleteDateRange, "incomplete", ErrIncompleteDateRange)

	if !errors.Is(err, ErrIncompleteDateRange) {
		t.Error("expected errors.Is to match the sentinel")
	}
	if err.Error() != "incomplete: "+ErrIncompleteDateRange.Error() {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestNewStoreError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantNil bool
	}{
		{name: "nil error", err: nil, wantNil: true},
		{name: "driver error", err: errors.New("connection refused")},
		{name: "deadline", err: context.DeadlineExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewStoreError("find entries", tt.err)
			if tt.wantNil {
				if err != nil {
					t.Fatalf("expected nil, got %v", err)
				}
				return
			}

			var storeErr *StoreError
			if !errors.As(err, &storeErr) {
				t.Fatalf("expected *StoreError, got %T", err)
			}
			if !errors.Is(err, ErrStoreUnavailable) {
				t.Error("expected errors.Is(err, ErrStoreUnavailable)")
			}
			if !errors.Is(err, tt.err) {
				t.Error("expected the driver error to stay reachable")
			}
			if storeErr.Code() != ErrCodeStoreUnavailable {
				t.Errorf("unexpected code %s", storeErr.Code())
			}
		})
	}
}

func TestNewStoreErrorDoesNotDoubleWrap(t *testing.T) {
	inner := NewStoreError("monthly total", errors.New("boom"))
	outer := NewStoreError("aggregate", inner)

	if outer != inner {
		t.Errorf("expected the existing StoreError to be returned unchanged, got %v", outer)
	}
}
