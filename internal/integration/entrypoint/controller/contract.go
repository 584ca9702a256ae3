package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestion-irrigation/backend/internal/application/usecase/contract"
	"github.com/gestion-irrigation/backend/internal/domain/entity"
	domainerror "github.com/gestion-irrigation/backend/internal/domain/error"
	"github.com/gestion-irrigation/backend/internal/integration/entrypoint/dto"
	"github.com/gestion-irrigation/backend/internal/integration/entrypoint/middleware"
)

// ContractController handles contract payment endpoints.
type ContractController struct {
	updatePaymentStatusUseCase *contract.UpdatePaymentStatusUseCase
}

// NewContractController creates a new contract controller instance.
func NewContractController(updatePaymentStatusUseCase *contract.UpdatePaymentStatusUseCase) *ContractController {
	return &ContractController{
		updatePaymentStatusUseCase: updatePaymentStatusUseCase,
	}
}

// UpdatePaymentStatus handles PATCH /contracts/:id/payment-status requests.
func (c *ContractController) UpdatePaymentStatus(ctx *gin.Context) {
	callerID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	contractID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid contract ID format",
		})
		return
	}

	var req dto.UpdatePaymentStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidPaymentStatus),
		})
		return
	}

	input := contract.UpdatePaymentStatusInput{
		CallerID:   callerID,
		ContractID: contractID,
		NewStatus:  entity.PaymentStatus(req.PaymentStatus),
	}
	if req.PartialAmount != nil {
		partialAmount := decimal.NewFromFloat(*req.PartialAmount)
		input.PartialAmount = &partialAmount
	}

	output, err := c.updatePaymentStatusUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleContractError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToContractResponse(output.Contract))
}

// handleContractError maps contract and auth errors to HTTP responses.
func (c *ContractController) handleContractError(ctx *gin.Context, err error) {
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		statusCode := http.StatusUnauthorized
		if authErr.Code == domainerror.ErrCodeInsufficientRole {
			statusCode = http.StatusForbidden
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
		return
	}

	var ctrErr *domainerror.ContractError
	if errors.As(err, &ctrErr) {
		statusCode := c.getStatusCodeForContractError(ctrErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: ctrErr.Message,
			Code:  string(ctrErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForContractError maps contract error codes to HTTP status codes.
func (c *ContractController) getStatusCodeForContractError(code domainerror.ContractErrorCode) int {
	switch code {
	case domainerror.ErrCodeContractNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidPaymentStatus,
		domainerror.ErrCodeMissingPartialAmount,
		domainerror.ErrCodePartialAmountOutOfRange:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
