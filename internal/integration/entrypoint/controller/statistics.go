package controller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bitbank/ledger/internal/application/usecase/statistics"
	"github.com/bitbank/ledger/internal/domain/entity"
	domainerror "github.com/bitbank/ledger/internal/domain/error"
	"github.com/bitbank/ledger/internal/integration/entrypoint/dto"
)

// StatisticsController handles the monthly statistics endpoint.
type StatisticsController struct {
	aggregateUseCase *statistics.AggregateStatisticsUseCase
}

// NewStatisticsController creates a new statistics controller instance.
func NewStatisticsController(aggregateUseCase *statistics.AggregateStatisticsUseCase) *StatisticsController {
	return &StatisticsController{
		aggregateUseCase: aggregateUseCase,
	}
}

// Get handles GET /ledger/statistics/:kind requests.
// The year is always the current one; only the month is selectable.
func (c *StatisticsController) Get(ctx *gin.Context) {
	var requested *int64
	if raw := ctx.Query("member_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			handleLedgerError(ctx, domainerror.NewValidationError(
				domainerror.ErrCodeInvalidRequest,
				"member_id must be an integer",
				err,
			))
			return
		}
		requested = &id
	}

	memberID, err := resolveMemberID(ctx, requested)
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

	// A missing or malformed month stays 0 and is rejected by the use case.
	month, _ := strconv.Atoi(ctx.Query("month"))

	stats, err := c.aggregateUseCase.Execute(ctx.Request.Context(), statistics.AggregateStatisticsInput{
		MemberID: *memberID,
		Kind:     entity.EntryKind(strings.ToLower(ctx.Param("kind"))),
		Month:    month,
	})
	if err != nil {
		handleLedgerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStatisticsResponse(stats))
}
