// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/bitbank/ledger/internal/domain/error"
	"github.com/bitbank/ledger/internal/integration/entrypoint/dto"
	"github.com/bitbank/ledger/internal/integration/entrypoint/middleware"
)

// handleLedgerError maps domain errors to HTTP responses.
func handleLedgerError(ctx *gin.Context, err error) {
	var validationErr *domainerror.ValidationError
	if errors.As(err, &validationErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: validationErr.Message,
			Code:  string(validationErr.Code),
		})
		return
	}

	var memberErr *domainerror.MemberError
	if errors.As(err, &memberErr) {
		ctx.JSON(getStatusCodeForMemberError(memberErr.Code), dto.ErrorResponse{
			Error: memberErr.Message,
			Code:  string(memberErr.Code),
		})
		return
	}

	var storeErr *domainerror.StoreError
	if errors.As(err, &storeErr) {
		slog.ErrorContext(ctx.Request.Context(), "Ledger store failure", "op", storeErr.Op, "error", storeErr.Err)
		ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error: "Ledger store is temporarily unavailable",
			Code:  string(storeErr.Code()),
		})
		return
	}

	// Generic server error
	slog.ErrorContext(ctx.Request.Context(), "Unexpected ledger error", "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
		Code:  string(domainerror.ErrCodeLedgerInternal),
	})
}

// getStatusCodeForMemberError maps member error codes to HTTP status codes.
func getStatusCodeForMemberError(code domainerror.MemberErrorCode) int {
	switch code {
	case domainerror.ErrCodeMemberNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeMemberForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// resolveMemberID binds the requested member to the authenticated one, if any.
// Without authentication the requested value is returned unchanged.
func resolveMemberID(ctx *gin.Context, requested *int64) (*int64, error) {
	authenticated, ok := middleware.GetMemberIDFromContext(ctx)
	if !ok {
		return requested, nil
	}

	if requested == nil {
		return &authenticated, nil
	}
	if *requested != authenticated {
		return nil, domainerror.NewMemberError(
			domainerror.ErrCodeMemberForbidden,
			"cannot access another member's ledger",
			domainerror.ErrMemberForbidden,
		)
	}
	return requested, nil
}
