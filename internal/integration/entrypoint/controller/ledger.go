package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitbank/ledger/internal/application/usecase/ledger"
	"github.com/bitbank/ledger/internal/application/usecase/search"
	domainerror "github.com/bitbank/ledger/internal/domain/error"
	"github.com/bitbank/ledger/internal/integration/entrypoint/dto"
	"github.com/bitbank/ledger/internal/integration/entrypoint/validator"
)

// LedgerController handles ledger entry and search endpoints.
type LedgerController struct {
	recordUseCase *ledger.RecordEntryUseCase
	searchUseCase *search.SearchEntriesUseCase
}

// NewLedgerController creates a new ledger controller instance.
func NewLedgerController(
	recordUseCase *ledger.RecordEntryUseCase,
	searchUseCase *search.SearchEntriesUseCase,
) *LedgerController {
	return &LedgerController{
		recordUseCase: recordUseCase,
		searchUseCase: searchUseCase,
	}
}

// Record handles POST /ledger/entries requests.
func (c *LedgerController) Record(ctx *gin.Context) {
	var req dto.RecordEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(validator.CodeFor(err)),
			Details: err.Error(),
		})
		return
	}

	memberID, err := resolveMemberID(ctx, req.MemberID)
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}
	if memberID == nil {
		handleLedgerError(ctx, domainerror.NewValidationError(
			domainerror.ErrCodeMissingMemberID,
			"member_id is required",
			domainerror.ErrMissingMemberID,
		))
		return
	}

	output, err := c.recordUseCase.Execute(ctx.Request.Context(), ledger.RecordEntryInput{
		MemberID:    *memberID,
		Kind:        req.Kind,
		Amount:      req.Amount,
		OccurredAt:  req.OccurredAt,
		Description: req.Description,
		Category:    req.Category,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(output.Entry))
}

// Search handles POST /ledger/search requests.
func (c *LedgerController) Search(ctx *gin.Context) {
	var req dto.SearchEntriesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeInvalidRequest),
			Details: err.Error(),
		})
		return
	}

	memberID, err := resolveMemberID(ctx, req.MemberID)
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}
	req.MemberID = memberID

	output, err := c.searchUseCase.Execute(ctx.Request.Context(), req.ToSearchRequest())
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSearchEntriesResponse(output))
}
