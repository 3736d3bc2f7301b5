package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/folaeazy/snap-bill/internal/application/usecase/extraction"
	"github.com/folaeazy/snap-bill/internal/domain/entity"
	domainerror "github.com/folaeazy/snap-bill/internal/domain/error"
	"github.com/folaeazy/snap-bill/internal/integration/entrypoint/dto"
	"github.com/folaeazy/snap-bill/internal/integration/entrypoint/middleware"
)

// EmailAccountController handles connected inbox endpoints.
type EmailAccountController struct {
	connectUseCase    *extraction.ConnectEmailAccountUseCase
	listUseCase       *extraction.ListEmailAccountsUseCase
	disconnectUseCase *extraction.DisconnectEmailAccountUseCase
	syncUseCase       *extraction.SyncEmailAccountUseCase
}

// NewEmailAccountController creates a new email account controller instance.
func NewEmailAccountController(
	connectUseCase *extraction.ConnectEmailAccountUseCase,
	listUseCase *extraction.ListEmailAccountsUseCase,
	disconnectUseCase *extraction.DisconnectEmailAccountUseCase,
	syncUseCase *extraction.SyncEmailAccountUseCase,
) *EmailAccountController {
	return &EmailAccountController{
		connectUseCase:    connectUseCase,
		listUseCase:       listUseCase,
		disconnectUseCase: disconnectUseCase,
		syncUseCase:       syncUseCase,
	}
}

// Connect handles POST /email-accounts requests.
func (c *EmailAccountController) Connect(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.ConnectEmailAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	output, err := c.connectUseCase.Execute(ctx.Request.Context(), extraction.ConnectEmailAccountInput{
		UserID:        userID,
		Provider:      entity.EmailProvider(req.Provider),
		ProviderEmail: req.ProviderEmail,
		AccessToken:   req.AccessToken,
		RefreshToken:  req.RefreshToken,
	})
	if err != nil {
		c.handleExtractionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ConnectEmailAccountResponse{
		AccountID: output.AccountID,
	})
}

// List handles GET /email-accounts requests.
func (c *EmailAccountController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), extraction.ListEmailAccountsInput{
		UserID: userID,
	})
	if err != nil {
		c.handleExtractionError(ctx, err)
		return
	}

	accounts := make([]dto.EmailAccountResponse, 0, len(output.Accounts))
	for _, a := range output.Accounts {
		accounts = append(accounts, dto.EmailAccountResponse{
			ID:            a.ID,
			Provider:      a.Provider,
			ProviderEmail: a.ProviderEmail,
			Status:        a.Status,
			LastSyncAt:    a.LastSyncAt,
			LastError:     a.LastError,
			ConnectedAt:   a.ConnectedAt,
		})
	}

	ctx.JSON(http.StatusOK, dto.ListEmailAccountsResponse{Accounts: accounts})
}

// Disconnect handles DELETE /email-accounts/:id requests.
func (c *EmailAccountController) Disconnect(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	accountID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid account ID",
		})
		return
	}

	if err := c.disconnectUseCase.Execute(ctx.Request.Context(), extraction.DisconnectEmailAccountInput{
		UserID:    userID,
		AccountID: accountID,
	}); err != nil {
		c.handleExtractionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Sync handles POST /email-accounts/:id/sync requests.
func (c *EmailAccountController) Sync(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	accountID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid account ID",
		})
		return
	}

	output, err := c.syncUseCase.Execute(ctx.Request.Context(), extraction.SyncEmailAccountInput{
		UserID:    userID,
		AccountID: accountID,
	})
	if err != nil {
		c.handleExtractionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SyncEmailAccountResponse{
		MessagesFetched:      output.MessagesFetched,
		TransactionsImported: output.TransactionsImported,
		DuplicatesSkipped:    output.DuplicatesSkipped,
		InvalidSkipped:       output.InvalidSkipped,
	})
}

// handleExtractionError maps extraction errors to HTTP responses.
func (c *EmailAccountController) handleExtractionError(ctx *gin.Context, err error) {
	var extErr *domainerror.ExtractionError
	if errors.As(err, &extErr) {
		status := http.StatusInternalServerError
		switch extErr.Code {
		case domainerror.ErrCodeEmailAccountNotFound:
			status = http.StatusNotFound
		case domainerror.ErrCodeEmailAccountRevoked, domainerror.ErrCodeUnsupportedProvider:
			status = http.StatusUnprocessableEntity
		case domainerror.ErrCodeGatewayUnavailable, domainerror.ErrCodeGatewayAuth:
			status = http.StatusBadGateway
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: extErr.Message,
			Code:  string(extErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
