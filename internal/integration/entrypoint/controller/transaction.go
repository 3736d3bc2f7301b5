package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/folaeazy/snap-bill/internal/application/usecase/extraction"
	"github.com/folaeazy/snap-bill/internal/application/usecase/transaction"
	"github.com/folaeazy/snap-bill/internal/domain/entity"
	domainerror "github.com/folaeazy/snap-bill/internal/domain/error"
	"github.com/folaeazy/snap-bill/internal/integration/entrypoint/dto"
	"github.com/folaeazy/snap-bill/internal/integration/entrypoint/middleware"
)

const dateLayout = "2006-01-02"

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase   *transaction.ListTransactionsUseCase
	getUseCase    *transaction.GetTransactionUseCase
	createUseCase *transaction.CreateTransactionUseCase
	updateUseCase *transaction.UpdateTransactionUseCase
	deleteUseCase *transaction.DeleteTransactionUseCase
	importUseCase *extraction.ImportParsedExpenseUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	getUseCase *transaction.GetTransactionUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	importUseCase *extraction.ImportParsedExpenseUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		importUseCase: importUseCase,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := transaction.ListTransactionsInput{
		UserID: userID,
	}

	if startDateStr := ctx.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse(dateLayout, startDateStr); err == nil {
			input.StartDate = &startDate
		}
	}
	if endDateStr := ctx.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse(dateLayout, endDateStr); err == nil {
			input.EndDate = &endDate
		}
	}

	if typeStr := ctx.Query("type"); typeStr != "" {
		txnType := entity.TransactionType(typeStr)
		input.Type = &txnType
	}
	if sourceStr := ctx.Query("source"); sourceStr != "" {
		source := entity.TransactionSource(sourceStr)
		input.Source = &source
	}

	input.Currency = ctx.Query("currency")
	input.Category = ctx.Query("category")
	input.Merchant = ctx.Query("merchant")
	input.Tag = ctx.Query("tag")
	input.Search = ctx.Query("search")

	if pageStr := ctx.Query("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil {
			input.Page = page
		}
	}
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			input.Limit = limit
		}
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(output.Transactions),
		Total:        output.Total,
		Page:         output.Page,
		Limit:        output.Limit,
		TotalPages:   output.TotalPages,
	})
}

// Get handles GET /transactions/:id requests.
func (c *TransactionController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), transaction.GetTransactionInput{
		UserID: userID,
		ID:     ctx.Param("id"),
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingRequiredField),
		})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount",
			Code:  string(domainerror.ErrCodeInvalidAmount),
		})
		return
	}

	date, dateOnly, err := parseTransactionDate(req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format",
			Code:  string(domainerror.ErrCodeMissingRequiredField),
		})
		return
	}

	input := transaction.CreateTransactionInput{
		UserID:      userID,
		Type:        entity.TransactionType(req.Type),
		Amount:      amount,
		Currency:    req.Currency,
		Date:        date,
		DateOnly:    dateOnly,
		Merchant:    req.Merchant,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Tags:        req.Tags,
		Description: req.Description,
	}
	if req.Account != nil {
		input.Account = &transaction.BankAccountInput{
			AccountID: req.Account.AccountID,
			Label:     req.Account.Label,
			Last4:     req.Account.Last4,
			Currency:  req.Account.Currency,
		}
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// Import handles POST /transactions/import requests. It accepts one
// structured expense record, e.g. a reviewed extraction or a CSV row.
func (c *TransactionController) Import(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.ImportTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingRequiredField),
		})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount",
			Code:  string(domainerror.ErrCodeInvalidAmount),
		})
		return
	}

	confidence := decimal.Zero
	if req.Confidence != "" {
		confidence, err = decimal.NewFromString(req.Confidence)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid confidence",
				Code:  string(domainerror.ErrCodeInvalidAmount),
			})
			return
		}
	}

	date, _, err := parseTransactionDate(req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format",
			Code:  string(domainerror.ErrCodeMissingRequiredField),
		})
		return
	}

	output, err := c.importUseCase.Execute(ctx.Request.Context(), extraction.ImportParsedExpenseInput{
		UserID:       userID,
		Source:       entity.TransactionSource(req.Source),
		SourceRef:    req.SourceRef,
		Type:         entity.TransactionType(req.Type),
		Amount:       amount,
		Currency:     req.Currency,
		Date:         date,
		MerchantName: req.Merchant,
		CategoryName: req.Category,
		Tags:         req.Tags,
		Description:  req.Description,
		Confidence:   confidence,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ImportTransactionResponse{ID: output.TransactionID})
}

// Update handles PATCH /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingRequiredField),
		})
		return
	}

	input := transaction.UpdateTransactionInput{
		UserID:       userID,
		ID:           ctx.Param("id"),
		Currency:     req.Currency,
		Merchant:     req.Merchant,
		Category:     req.Category,
		SubCategory:  req.SubCategory,
		AddTags:      req.AddTags,
		RemoveTags:   req.RemoveTags,
		ClearAccount: req.ClearAccount,
		Description:  req.Description,
	}

	if req.Type != nil {
		txnType := entity.TransactionType(*req.Type)
		input.Type = &txnType
	}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid amount",
				Code:  string(domainerror.ErrCodeInvalidAmount),
			})
			return
		}
		input.Amount = &amount
	}
	if req.Date != nil {
		date, dateOnly, err := parseTransactionDate(*req.Date)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid date format",
				Code:  string(domainerror.ErrCodeMissingRequiredField),
			})
			return
		}
		input.Date = &date
		input.DateOnly = dateOnly
	}
	if req.Account != nil {
		input.Account = &transaction.BankAccountInput{
			AccountID: req.Account.AccountID,
			Label:     req.Account.Label,
			Last4:     req.Account.Last4,
			Currency:  req.Account.Currency,
		}
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		UserID: userID,
		ID:     ctx.Param("id"),
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// parseTransactionDate accepts a date-only string or a full RFC 3339 timestamp.
func parseTransactionDate(value string) (time.Time, bool, error) {
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, false, nil
}

// handleTransactionError maps domain errors to HTTP responses.
func (c *TransactionController) handleTransactionError(ctx *gin.Context, err error) {
	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		status := http.StatusInternalServerError
		switch txnErr.Code {
		case domainerror.ErrCodeTransactionNotFound:
			status = http.StatusNotFound
		case domainerror.ErrCodeTransactionForbidden:
			status = http.StatusForbidden
		case domainerror.ErrCodeDuplicateTransaction:
			status = http.StatusConflict
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		})
		return
	}

	var validationErr *domainerror.ValidationError
	if errors.As(err, &validationErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: validationErr.Message,
			Code:  string(validationErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
