package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/folaeazy/snap-bill/internal/application/usecase/report"
	"github.com/folaeazy/snap-bill/internal/domain/entity"
	domainerror "github.com/folaeazy/snap-bill/internal/domain/error"
	"github.com/folaeazy/snap-bill/internal/integration/entrypoint/dto"
	"github.com/folaeazy/snap-bill/internal/integration/entrypoint/middleware"
)

// ReportController handles spending report endpoints.
type ReportController struct {
	monthlySummaryUseCase     *report.MonthlySummaryUseCase
	categoryBreakdownUseCase  *report.CategoryBreakdownUseCase
	searchTransactionsUseCase *report.SearchTransactionsUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(
	monthlySummaryUseCase *report.MonthlySummaryUseCase,
	categoryBreakdownUseCase *report.CategoryBreakdownUseCase,
	searchTransactionsUseCase *report.SearchTransactionsUseCase,
) *ReportController {
	return &ReportController{
		monthlySummaryUseCase:     monthlySummaryUseCase,
		categoryBreakdownUseCase:  categoryBreakdownUseCase,
		searchTransactionsUseCase: searchTransactionsUseCase,
	}
}

// MonthlySummary handles GET /reports/monthly requests.
func (c *ReportController) MonthlySummary(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	now := time.Now().UTC()
	year := now.Year()
	month := now.Month()

	if yearStr := ctx.Query("year"); yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid year"})
			return
		}
		year = y
	}
	if monthStr := ctx.Query("month"); monthStr != "" {
		m, err := strconv.Atoi(monthStr)
		if err != nil || m < 1 || m > 12 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid month"})
			return
		}
		month = time.Month(m)
	}

	output, err := c.monthlySummaryUseCase.Execute(ctx.Request.Context(), report.MonthlySummaryInput{
		UserID: userID,
		Year:   year,
		Month:  month,
	})
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MonthlySummaryResponse{
		Year:             output.Year,
		Month:            output.Month,
		TransactionCount: output.TransactionCount,
		DebitTotal:       output.DebitTotal,
		Currency:         output.Currency,
		ByCategory:       toCategoryTotals(output.ByCategory),
	})
}

// CategoryBreakdown handles GET /reports/categories requests.
func (c *ReportController) CategoryBreakdown(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	startDate, err := time.Parse(dateLayout, ctx.Query("start_date"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "start_date is required (YYYY-MM-DD)"})
		return
	}
	endDate, err := time.Parse(dateLayout, ctx.Query("end_date"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "end_date is required (YYYY-MM-DD)"})
		return
	}
	if endDate.Before(startDate) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "end_date must not precede start_date"})
		return
	}

	output, err := c.categoryBreakdownUseCase.Execute(ctx.Request.Context(), report.CategoryBreakdownInput{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CategoryBreakdownResponse{
		StartDate:  output.StartDate,
		EndDate:    output.EndDate,
		DebitTotal: output.DebitTotal,
		Currency:   output.Currency,
		ByCategory: toCategoryTotals(output.ByCategory),
	})
}

// Search handles GET /reports/search requests.
func (c *ReportController) Search(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := report.SearchTransactionsInput{UserID: userID}

	switch typeStr := ctx.Query("type"); typeStr {
	case "":
	case string(entity.TransactionTypeDebit):
		input.DebitsOnly = true
	case string(entity.TransactionTypeCredit):
		input.CreditsOnly = true
	default:
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "type must be DEBIT or CREDIT"})
		return
	}

	startStr, endStr := ctx.Query("start_date"), ctx.Query("end_date")
	if (startStr == "") != (endStr == "") {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "start_date and end_date must be given together"})
		return
	}
	if startStr != "" {
		startDate, err := time.Parse(dateLayout, startStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid start_date (YYYY-MM-DD)"})
			return
		}
		endDate, err := time.Parse(dateLayout, endStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid end_date (YYYY-MM-DD)"})
			return
		}
		input.StartDate = &startDate
		input.EndDate = &endDate
	}

	input.Merchant = ctx.Query("merchant")
	input.Tag = ctx.Query("tag")
	input.Description = ctx.Query("search")

	output, err := c.searchTransactionsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	hits := make([]dto.SearchHitResponse, 0, len(output.Transactions))
	for _, hit := range output.Transactions {
		hits = append(hits, dto.SearchHitResponse{
			ID:          hit.ID,
			Type:        hit.Type,
			Amount:      hit.Amount,
			Currency:    hit.Currency,
			Date:        hit.Date,
			Merchant:    hit.Merchant,
			Category:    hit.Category,
			Tags:        hit.Tags,
			Description: hit.Description,
			Source:      hit.Source,
		})
	}

	ctx.JSON(http.StatusOK, dto.SearchTransactionsResponse{
		Total:        output.Total,
		Transactions: hits,
	})
}

func toCategoryTotals(totals []report.CategoryTotalOutput) []dto.CategoryTotalResponse {
	out := make([]dto.CategoryTotalResponse, 0, len(totals))
	for _, t := range totals {
		out = append(out, dto.CategoryTotalResponse{
			Category: t.Category,
			Amount:   t.Amount,
			Currency: t.Currency,
		})
	}
	return out
}

func (c *ReportController) handleReportError(ctx *gin.Context, err error) {
	var validationErr *domainerror.ValidationError
	if errors.As(err, &validationErr) {
		status := http.StatusBadRequest
		if validationErr.Code == domainerror.ErrCodeMixedCurrency {
			status = http.StatusUnprocessableEntity
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: validationErr.Message,
			Code:  string(validationErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
