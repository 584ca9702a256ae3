package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestion-irrigation/backend/internal/application/usecase/settlement"
	domainerror "github.com/gestion-irrigation/backend/internal/domain/error"
	"github.com/gestion-irrigation/backend/internal/integration/entrypoint/dto"
)

// SettlementController handles settlement endpoints.
type SettlementController struct {
	createUseCase *settlement.CreateSettlementUseCase
	updateUseCase *settlement.UpdateSettlementUseCase
	deleteUseCase *settlement.DeleteSettlementUseCase
}

// NewSettlementController creates a new settlement controller instance.
func NewSettlementController(
	createUseCase *settlement.CreateSettlementUseCase,
	updateUseCase *settlement.UpdateSettlementUseCase,
	deleteUseCase *settlement.DeleteSettlementUseCase,
) *SettlementController {
	return &SettlementController{
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Create handles POST /settlements requests.
func (c *SettlementController) Create(ctx *gin.Context) {
	var req dto.CreateSettlementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	contractID, err := uuid.Parse(req.ContractID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid contract ID format",
		})
		return
	}

	settledAt, err := time.Parse("2006-01-02", req.SettledAt)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid settled_at format. Use YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeMissingSettlementDate),
		})
		return
	}

	input := settlement.CreateSettlementInput{
		ContractID: contractID,
		Amount:     decimal.NewFromFloat(req.Amount),
		SettledAt:  settledAt,
		Reference:  req.Reference,
		Notes:      req.Notes,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleSettlementError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSettlementResponse(output.Settlement))
}

// Update handles PATCH /settlements/:id requests.
func (c *SettlementController) Update(ctx *gin.Context) {
	settlementID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid settlement ID format",
		})
		return
	}

	var req dto.UpdateSettlementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	input := settlement.UpdateSettlementInput{
		ID:        settlementID,
		Reference: req.Reference,
		Notes:     req.Notes,
	}

	if req.Amount != nil {
		amount := decimal.NewFromFloat(*req.Amount)
		input.Amount = &amount
	}
	if req.SettledAt != nil {
		settledAt, err := time.Parse("2006-01-02", *req.SettledAt)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid settled_at format. Use YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeMissingSettlementDate),
			})
			return
		}
		input.SettledAt = &settledAt
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleSettlementError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettlementResponse(output.Settlement))
}

// Delete handles DELETE /settlements/:id requests.
func (c *SettlementController) Delete(ctx *gin.Context) {
	settlementID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid settlement ID format",
		})
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), settlement.DeleteSettlementInput{ID: settlementID}); err != nil {
		c.handleSettlementError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleSettlementError maps settlement errors to HTTP responses.
func (c *SettlementController) handleSettlementError(ctx *gin.Context, err error) {
	var stlErr *domainerror.SettlementError
	if errors.As(err, &stlErr) {
		statusCode := c.getStatusCodeForSettlementError(stlErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: stlErr.Message,
			Code:  string(stlErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForSettlementError maps settlement error codes to HTTP status codes.
func (c *SettlementController) getStatusCodeForSettlementError(code domainerror.SettlementErrorCode) int {
	switch code {
	case domainerror.ErrCodeSettlementNotFound,
		domainerror.ErrCodeSettlementContractNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidSettlementAmount,
		domainerror.ErrCodeMissingSettlementDate:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
